package profile

// Config carries the profiler parameters resolved from the command line:
// the profiling mode, the output directory, and whether to silence the
// profiler's own logging.
//
// The zero value selects no mode, so [Config.Start] is a no-op.
type Config struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option configures one Config field.
type Option func(*Config)

// New returns a Config with opts applied to the zero value.
func New(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithMode selects the profiling mode. Names outside [Modes] select
// nothing.
func WithMode(mode string) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithDir sets the directory profile files are written to.
func WithDir(dir string) Option {
	return func(c *Config) {
		c.Dir = dir
	}
}

// WithQuiet controls whether the profiler logs its own start and stop.
func WithQuiet(quiet bool) Option {
	return func(c *Config) {
		c.Quiet = quiet
	}
}

// Start launches the profiler described by c and returns its stop handle.
//
// Without the pprof build tag, or when no mode is selected, the handle is
// a no-op. Start and Stop are always safe to call.
func (c Config) Start() interface{ Stop() } {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c.Mode, c.Dir, c.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}
