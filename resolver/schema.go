package resolver

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/ini.v1"
)

// Kind selects how raw string values are coerced for a destination.
// KindConst is the store-const action: the flag takes no value and the
// destination resolves to ArgumentSpec.Const whenever it is triggered.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDuration
	KindBytes
	KindConst
)

var kindNames = [...]string{
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDuration: "duration",
	KindBytes:    "bytes",
	KindConst:    "const",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a kind name ("int", "string", ...) to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

func (k Kind) valid() bool {
	return k >= KindString && k <= KindConst
}

// switchFlag reports whether the flag is given without a value token.
func (k Kind) switchFlag() bool {
	return k == KindBool || k == KindConst
}

// ArgumentSpec declares one destination.
type ArgumentSpec struct {
	// Name is the destination key. It is also the config file key and,
	// upper-cased, the environment variable suffix.
	Name string
	// Flag is the long flag name without dashes. Defaults to Name.
	Flag  string
	Short rune
	// Positional arguments are matched by position and have no flag.
	Positional bool
	Required   bool
	// Multiple collects every occurrence into a slice.
	Multiple bool
	Kind     Kind
	Const    any
	// Default is used verbatim when no source supplies a value. Nil means unset.
	Default any
	Help    string
	// Group is the owning ArgumentGroup. A top-level spec naming a declared
	// group joins that group.
	Group string
}

// ArgumentGroup is a named set of arguments read from one config file section.
type ArgumentGroup struct {
	Name string
	// Section is the config file section. Defaults to Name.
	Section string
	Args    []ArgumentSpec
}

func (g ArgumentGroup) section() string {
	if g.Section != "" {
		return g.Section
	}
	return g.Name
}

// Schema is the full set of declared arguments.
type Schema struct {
	Name        string
	Description string
	Args        []ArgumentSpec
	Groups      []ArgumentGroup
}

// kingpin registers these flags on every application.
var reservedFlags = map[string]struct{}{
	"help":                   {},
	"help-long":              {},
	"help-man":               {},
	"completion-bash":        {},
	"completion-script-bash": {},
	"completion-script-zsh":  {},
}

// boundSpec is an ArgumentSpec after validation, with its flag and section fixed.
type boundSpec struct {
	ArgumentSpec
	flag    string
	section string
}

type binder struct {
	errs     error
	specs    []*boundSpec
	owners   map[string]string
	flags    map[string]string
	shorts   map[rune]string
	sections map[string]string
}

func (s Schema) bind() ([]*boundSpec, error) {
	b := &binder{
		owners:   make(map[string]string),
		flags:    make(map[string]string),
		shorts:   make(map[rune]string),
		sections: make(map[string]string),
	}

	groups := make(map[string]int, len(s.Groups))
	for i, g := range s.Groups {
		if g.Name == "" {
			b.fail("group %d has no name", i)
			continue
		}
		if _, ok := groups[g.Name]; ok {
			b.fail("group %q declared twice", g.Name)
			continue
		}
		groups[g.Name] = i

		section := g.section()
		if section == ini.DefaultSection {
			b.fail("group %q cannot use the default section %q", g.Name, section)
		}
		if prev, ok := b.sections[section]; ok {
			b.fail("section %q used by groups %q and %q", section, prev, g.Name)
			continue
		}
		b.sections[section] = g.Name
	}

	for _, spec := range s.Args {
		if spec.Group == "" {
			b.add(spec, "top level", "")
			continue
		}
		i, ok := groups[spec.Group]
		if !ok {
			b.fail("%s: unknown group %q", spec.Name, spec.Group)
			continue
		}
		b.add(spec, fmt.Sprintf("group %q", spec.Group), s.Groups[i].section())
	}
	for _, g := range s.Groups {
		if g.Name == "" {
			continue
		}
		for _, spec := range g.Args {
			if spec.Group != "" && spec.Group != g.Name {
				b.fail("%s: declared in group %q but names group %q", spec.Name, g.Name, spec.Group)
				continue
			}
			spec.Group = g.Name
			b.add(spec, fmt.Sprintf("group %q", g.Name), g.section())
		}
	}

	b.checkPositionals()

	if b.errs != nil {
		return nil, &SchemaError{Err: b.errs}
	}
	return b.specs, nil
}

func (b *binder) fail(format string, args ...any) {
	b.errs = multierr.Append(b.errs, fmt.Errorf(format, args...))
}

func (b *binder) add(spec ArgumentSpec, owner, section string) {
	if spec.Name == "" {
		b.fail("argument in %s has no destination name", owner)
		return
	}
	if prev, ok := b.owners[spec.Name]; ok {
		b.fail("%s: declared in %s and %s", spec.Name, prev, owner)
		return
	}
	b.owners[spec.Name] = owner

	if !spec.Kind.valid() {
		b.fail("%s: invalid kind %d", spec.Name, int(spec.Kind))
		return
	}
	if spec.Kind == KindConst && (spec.Positional || spec.Multiple) {
		b.fail("%s: const arguments must be single flags", spec.Name)
		return
	}

	bound := &boundSpec{ArgumentSpec: spec, section: section}
	if spec.Positional {
		if spec.Flag != "" || spec.Short != 0 {
			b.fail("%s: positional arguments cannot declare flags", spec.Name)
			return
		}
		b.specs = append(b.specs, bound)
		return
	}

	if spec.Required {
		b.fail("%s: only positional arguments can be required", spec.Name)
		return
	}
	bound.flag = strings.TrimLeft(spec.Flag, "-")
	if bound.flag == "" {
		bound.flag = spec.Name
	}
	if _, ok := reservedFlags[bound.flag]; ok {
		b.fail("%s: flag --%s is reserved", spec.Name, bound.flag)
		return
	}
	if prev, ok := b.flags[bound.flag]; ok {
		b.fail("%s: flag --%s already used by %s", spec.Name, bound.flag, prev)
		return
	}
	b.flags[bound.flag] = spec.Name
	if spec.Short != 0 {
		if prev, ok := b.shorts[spec.Short]; ok {
			b.fail("%s: short flag -%c already used by %s", spec.Name, spec.Short, prev)
			return
		}
		b.shorts[spec.Short] = spec.Name
	}
	b.specs = append(b.specs, bound)
}

// checkPositionals enforces the ordering the argument parser relies on.
func (b *binder) checkPositionals() {
	var optional, multiple string
	for _, spec := range b.specs {
		if !spec.Positional {
			continue
		}
		if multiple != "" {
			b.fail("%s: positional argument follows multiple positional %s", spec.Name, multiple)
		}
		if spec.Required && optional != "" {
			b.fail("%s: required positional argument follows optional %s", spec.Name, optional)
		}
		if !spec.Required && optional == "" {
			optional = spec.Name
		}
		if spec.Multiple {
			multiple = spec.Name
		}
	}
}
