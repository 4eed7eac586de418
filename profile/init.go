package profile

// Config yields the pprof parameters to profile with. A config whose mode is
// empty disables profiling entirely.
type Config func() (mode, path string, quiet bool)

// Start initializes the profiler and returns an interface for stopping it.
//
// When the pprof build tag is absent, or the configured mode is empty or
// unknown, the returned implementation is a no-op. Both Start and Stop are
// always safely callable.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// set derives a Config with its parameters rewritten by f.
func (c Config) set(
	f func(mode, path string, quiet bool) (string, string, bool),
) Config {
	return func() (string, string, bool) { return f(c()) }
}

// WithMode returns a functional option selecting the profiler mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		return c.set(func(_, path string, quiet bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// WithPath returns a functional option selecting the output directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		return c.set(func(mode, _ string, quiet bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// WithQuiet returns a functional option suppressing profiler chatter.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		return c.set(func(mode, path string, _ bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

type ignore struct{}

func (ignore) Stop() {}
