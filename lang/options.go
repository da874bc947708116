package lang

import (
	"github.com/ardnew/monkey/lang/eval"
	"github.com/ardnew/monkey/lang/parser"
	"github.com/ardnew/monkey/log"
)

// config carries the effective settings for the parse and eval pipeline.
type config struct {
	logger       log.Logger
	env          *eval.Environment
	maxNesting   int // parser expression nesting bound
	maxCallDepth int // evaluator call nesting bound
}

// defaultConfig returns the settings used when no options are given.
func defaultConfig() config {
	return config{
		maxNesting:   parser.DefaultMaxDepth,
		maxCallDepth: eval.DefaultMaxDepth,
	}
}

// applyOptions resolves the effective configuration from defaults and the
// given options.
func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Option configures the parse and eval pipeline.
type Option func(*config)

// WithLogger sets the structured logger used for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithMaxNesting bounds expression nesting in the parser. Exceeding the
// bound records a diagnostic instead of exhausting the call stack.
func WithMaxNesting(depth int) Option {
	return func(cfg *config) {
		cfg.maxNesting = depth
	}
}

// WithMaxCallDepth bounds function call nesting in the evaluator. Exceeding
// the bound yields a runtime error value instead of exhausting the call
// stack.
func WithMaxCallDepth(depth int) Option {
	return func(cfg *config) {
		cfg.maxCallDepth = depth
	}
}

// WithEnvironment seeds a Session with an existing environment instead of a
// fresh empty one. Parse-only entry points ignore it.
func WithEnvironment(env *eval.Environment) Option {
	return func(cfg *config) {
		cfg.env = env
	}
}
