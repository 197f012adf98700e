package resolver

import (
	"fmt"
	"maps"

	"go.uber.org/zap"
)

// Input holds everything one resolution reads besides the schema.
type Input struct {
	// Defaults pre-seeds default values outside the schema. They have the
	// same, lowest, precedence as declared defaults and are used verbatim.
	Defaults map[string]any
	// ConfigPath is the INI file to read. It must exist.
	ConfigPath string
	// EnvPrefix forms the variable names PREFIX_NAME. Required.
	EnvPrefix string
	// Env is the environment snapshot consulted. Use OSEnv for the process environment.
	Env map[string]string
	// Args are the command-line tokens without the program name.
	Args []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to report resolution. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver resolves a validated Schema. It holds no per-call state and is
// safe for concurrent use.
type Resolver struct {
	schema Schema
	specs  []*boundSpec
	logger *zap.Logger
}

// New validates schema and returns a Resolver for it.
func New(schema Schema, opts ...Option) (*Resolver, error) {
	specs, err := schema.bind()
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		schema: schema,
		specs:  specs,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve is New followed by Resolver.Resolve.
func Resolve(schema Schema, defaults map[string]any, configPath, envPrefix string, env map[string]string, argv []string) (*Config, error) {
	r, err := New(schema)
	if err != nil {
		return nil, err
	}
	return r.Resolve(Input{
		Defaults:   defaults,
		ConfigPath: configPath,
		EnvPrefix:  envPrefix,
		Env:        env,
		Args:       argv,
	})
}

// Resolve produces one value per destination with precedence
// command line > environment > config file > default.
func (r *Resolver) Resolve(in Input) (*Config, error) {
	if in.EnvPrefix == "" {
		return nil, ErrEmptyEnvPrefix
	}

	supplied, err := parseCommandLine(r.schema.Name, r.schema.Description, r.specs, in.Args)
	if err != nil {
		return nil, err
	}

	file, err := readConfigFile(in.ConfigPath)
	if err != nil {
		return nil, err
	}

	defaults := r.defaults(in.Defaults)

	cfg := newConfig(len(defaults))
	for _, spec := range r.specs {
		value, src, err := r.resolveOne(spec, supplied, in, file, defaults)
		if err != nil {
			return nil, err
		}
		cfg.set(spec.Name, value, src)
		r.logger.Debug("destination resolved",
			zap.String("destination", spec.Name),
			zap.Stringer("source", src),
		)
	}

	// Override-only keys pass through untouched.
	for name, value := range defaults {
		if _, ok := cfg.values[name]; !ok {
			cfg.set(name, value, SourceDefault)
		}
	}

	for _, spec := range r.specs {
		if _, ok := cfg.values[spec.Name]; !ok {
			return nil, fmt.Errorf("destination %q left unresolved", spec.Name)
		}
	}

	r.logger.Info("configuration resolved",
		zap.String("config_path", in.ConfigPath),
		zap.String("env_prefix", in.EnvPrefix),
		zap.Int("destinations", len(r.specs)),
	)
	return cfg, nil
}

func (r *Resolver) resolveOne(spec *boundSpec, supplied map[string][]string, in Input, file *configFile, defaults map[string]any) (any, Source, error) {
	if tokens, ok := supplied[spec.Name]; ok {
		if spec.Kind == KindConst && !switchedOn(tokens) {
			return defaults[spec.Name], SourceCommandLine, nil
		}
		value, err := spec.coerce(SourceCommandLine, tokens)
		if err != nil {
			return nil, SourceCommandLine, &UsageError{Err: err}
		}
		return value, SourceCommandLine, nil
	}

	if raw, ok := in.Env[EnvName(in.EnvPrefix, spec.Name)]; ok {
		value, err := spec.coerce(SourceEnvironment, []string{raw})
		return value, SourceEnvironment, err
	}

	if raw, ok := file.lookup(spec.section, spec.Name); ok {
		value, err := spec.coerce(SourceConfigFile, []string{raw})
		return value, SourceConfigFile, err
	}

	return defaults[spec.Name], SourceDefault, nil
}

// defaults lays caller overrides over the declared defaults. Each override
// replaces its key whole; nothing reachable from the schema is written.
func (r *Resolver) defaults(overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(r.specs)+len(overrides))
	for _, spec := range r.specs {
		merged[spec.Name] = spec.Default
	}
	maps.Copy(merged, overrides)
	return merged
}
