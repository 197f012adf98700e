package resolver

import (
	"io"
	"strings"

	"github.com/alecthomas/kingpin/v2"
)

const defaultAppName = "resolve"

// kingpin splices in the contents of any "@file" token by default. Values
// must reach the resolver verbatim and the config file is the only file read.
func init() {
	kingpin.EnableFileExpansion = false
}

// tokenValue records the raw tokens kingpin binds to one destination.
// No defaults are registered with kingpin, so an empty tokenValue means the
// destination was absent from argv.
type tokenValue struct {
	tokens     []string
	switchFlag bool
	cumulative bool
}

func (v *tokenValue) Set(s string) error {
	v.tokens = append(v.tokens, s)
	return nil
}

func (v *tokenValue) String() string {
	return strings.Join(v.tokens, ",")
}

// IsBoolFlag makes kingpin treat the flag as a value-less switch.
func (v *tokenValue) IsBoolFlag() bool { return v.switchFlag }

// IsCumulative lets a flag repeat and a positional consume the remainder.
func (v *tokenValue) IsCumulative() bool { return v.cumulative }

// parseCommandLine parses argv against the specs and returns the raw tokens
// of every destination that argv supplied.
func parseCommandLine(name, help string, specs []*boundSpec, argv []string) (map[string][]string, error) {
	if name == "" {
		name = defaultAppName
	}

	var helped bool
	app := kingpin.New(name, help)
	app.Terminate(func(int) { helped = true })
	app.UsageWriter(io.Discard)
	app.ErrorWriter(io.Discard)

	values := make(map[string]*tokenValue, len(specs))
	for _, spec := range specs {
		v := &tokenValue{
			switchFlag: !spec.Positional && spec.Kind.switchFlag(),
			cumulative: spec.Multiple,
		}
		values[spec.Name] = v

		if spec.Positional {
			arg := app.Arg(spec.Name, spec.Help)
			if spec.Required {
				arg.Required()
			}
			arg.SetValue(v)
			continue
		}

		flag := app.Flag(spec.flag, spec.Help)
		if spec.Short != 0 {
			flag.Short(spec.Short)
		}
		flag.SetValue(v)
	}

	_, err := app.Parse(argv)
	if helped {
		return nil, &UsageError{Err: ErrHelpRequested}
	}
	if err != nil {
		return nil, &UsageError{Err: err}
	}

	supplied := make(map[string][]string, len(values))
	for dest, v := range values {
		if len(v.tokens) > 0 {
			supplied[dest] = v.tokens
		}
	}
	return supplied, nil
}

// switchedOn reports whether the last occurrence of a switch enabled it.
// A negated switch (--no-flag) records "false".
func switchedOn(tokens []string) bool {
	return tokens[len(tokens)-1] != "false"
}
