package resolver

import (
	"sort"
	"time"
)

// Source identifies which layer supplied a resolved value.
type Source int

const (
	SourceDefault Source = iota
	SourceConfigFile
	SourceEnvironment
	SourceCommandLine
)

func (s Source) String() string {
	switch s {
	case SourceConfigFile:
		return "config file"
	case SourceEnvironment:
		return "environment"
	case SourceCommandLine:
		return "command line"
	default:
		return "default"
	}
}

// MarshalYAML renders the source by name.
func (s Source) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Config is the fully resolved configuration: one value per destination.
// It is built fresh by every Resolve call and never shared.
type Config struct {
	values  map[string]any
	sources map[string]Source
}

func newConfig(size int) *Config {
	return &Config{
		values:  make(map[string]any, size),
		sources: make(map[string]Source, size),
	}
}

func (c *Config) set(name string, value any, src Source) {
	c.values[name] = value
	c.sources[name] = src
}

// Value returns the resolved value of name and whether it exists.
func (c *Config) Value(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Source returns where the value of name came from.
func (c *Config) Source(name string) Source {
	return c.sources[name]
}

// Names returns every destination in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the resolved values.
func (c *Config) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Sources returns a copy of the per-destination sources.
func (c *Config) Sources() map[string]Source {
	out := make(map[string]Source, len(c.sources))
	for k, v := range c.sources {
		out[k] = v
	}
	return out
}

// MarshalYAML renders the resolved values as a mapping.
func (c *Config) MarshalYAML() (any, error) {
	return c.values, nil
}

// String returns the value of name if it is a string.
func (c *Config) String(name string) string {
	return valueAs[string](c, name)
}

// Int returns the value of name if it is an int.
func (c *Config) Int(name string) int {
	return valueAs[int](c, name)
}

// Ints returns the value of name if it is a list of ints.
func (c *Config) Ints(name string) []int {
	return valueAs[[]int](c, name)
}

// Strings returns the value of name if it is a list of strings.
func (c *Config) Strings(name string) []string {
	return valueAs[[]string](c, name)
}

// Float returns the value of name if it is a float64.
func (c *Config) Float(name string) float64 {
	return valueAs[float64](c, name)
}

// Bool returns the value of name if it is a bool.
func (c *Config) Bool(name string) bool {
	return valueAs[bool](c, name)
}

// Duration returns the value of name if it is a time.Duration.
func (c *Config) Duration(name string) time.Duration {
	return valueAs[time.Duration](c, name)
}

func valueAs[T any](c *Config, name string) T {
	v, _ := c.values[name].(T)
	return v
}
