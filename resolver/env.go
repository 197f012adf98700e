package resolver

import (
	"os"
	"strings"
)

// EnvName builds the environment variable consulted for a destination:
// PREFIX_NAME, upper-cased, with dashes turned into underscores.
func EnvName(prefix, name string) string {
	return prefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Environ converts KEY=VALUE pairs into an environment snapshot. Pairs
// without '=' are skipped.
func Environ(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// OSEnv snapshots the process environment.
func OSEnv() map[string]string {
	return Environ(os.Environ())
}
