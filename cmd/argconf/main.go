package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/argconf/internal/logging"
	"github.com/eugenenazirov/argconf/resolver"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	if err := run(os.Args[1:], resolver.OSEnv(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "argconf: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// run resolves a YAML schema against the trailing arguments, env and an INI
// file, then writes the resolved values as YAML to out.
func run(argv []string, env map[string]string, out io.Writer) error {
	app := kingpin.New("argconf", "Resolve declared arguments against argv, environment and an INI config file")
	schemaPath := app.Flag("schema", "Path to YAML schema declaration").Required().String()
	configPath := app.Flag("config", "Path to INI configuration file").Required().String()
	envPrefix := app.Flag("env-prefix", "Environment variable prefix").Required().String()
	logLevel := app.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")
	showSources := app.Flag("sources", "Also print where each value came from").Bool()
	args := app.Arg("args", "Arguments resolved against the schema (pass after --)").Strings()

	if _, err := app.Parse(argv); err != nil {
		return &resolver.UsageError{Err: err}
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	schema, err := resolver.LoadSchema(*schemaPath)
	if err != nil {
		return err
	}

	r, err := resolver.New(schema, resolver.WithLogger(logger))
	if err != nil {
		return err
	}

	cfg, err := r.Resolve(resolver.Input{
		ConfigPath: *configPath,
		EnvPrefix:  *envPrefix,
		Env:        env,
		Args:       *args,
	})
	if err != nil {
		logger.Error("resolution failed", zap.Error(err))
		return err
	}

	doc := map[string]any{"values": cfg}
	if *showSources {
		doc["sources"] = cfg.Sources()
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return enc.Close()
}

func exitCode(err error) int {
	var usageErr *resolver.UsageError
	if errors.As(err, &usageErr) {
		return exitUsage
	}
	return exitFailure
}
