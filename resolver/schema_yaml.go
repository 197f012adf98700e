package resolver

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// yamlSchema represents the YAML schema declaration file structure.
type yamlSchema struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Args        []yamlArg   `yaml:"args"`
	Groups      []yamlGroup `yaml:"groups"`
}

type yamlGroup struct {
	Name    string    `yaml:"name"`
	Section string    `yaml:"section"`
	Args    []yamlArg `yaml:"args"`
}

type yamlArg struct {
	Name       string `yaml:"name"`
	Flag       string `yaml:"flag"`
	Short      string `yaml:"short"`
	Positional bool   `yaml:"positional"`
	Required   bool   `yaml:"required"`
	Multiple   bool   `yaml:"multiple"`
	Type       Kind   `yaml:"type"`
	Const      any    `yaml:"const"`
	Default    any    `yaml:"default"`
	Help       string `yaml:"help"`
	Group      string `yaml:"group"`
}

// UnmarshalYAML reads a kind by name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	kind, err := ParseKind(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = kind
	return nil
}

// MarshalYAML writes a kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// LoadSchema reads a YAML schema declaration from path.
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("read schema: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema decodes a YAML schema declaration. Defaults and constants keep
// the types YAML gives them. The result is not validated until New.
func ParseSchema(data []byte) (Schema, error) {
	var raw yamlSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Schema{}, fmt.Errorf("parse schema YAML: %w", err)
	}

	schema := Schema{
		Name:        raw.Name,
		Description: raw.Description,
	}
	for _, a := range raw.Args {
		spec, err := a.spec()
		if err != nil {
			return Schema{}, err
		}
		schema.Args = append(schema.Args, spec)
	}
	for _, g := range raw.Groups {
		group := ArgumentGroup{Name: g.Name, Section: g.Section}
		for _, a := range g.Args {
			spec, err := a.spec()
			if err != nil {
				return Schema{}, err
			}
			group.Args = append(group.Args, spec)
		}
		schema.Groups = append(schema.Groups, group)
	}
	return schema, nil
}

func (a yamlArg) spec() (ArgumentSpec, error) {
	spec := ArgumentSpec{
		Name:       a.Name,
		Flag:       a.Flag,
		Positional: a.Positional,
		Required:   a.Required,
		Multiple:   a.Multiple,
		Kind:       a.Type,
		Const:      a.Const,
		Default:    a.Default,
		Help:       a.Help,
		Group:      a.Group,
	}
	if a.Short != "" {
		r, size := utf8.DecodeRuneInString(a.Short)
		if size != len(a.Short) {
			return ArgumentSpec{}, fmt.Errorf("%s: short flag %q must be a single character", a.Name, a.Short)
		}
		spec.Short = r
	}
	return spec, nil
}
