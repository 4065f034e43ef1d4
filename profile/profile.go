package profile

import "slices"

// Profiler describes one profiling session.
type Profiler struct {
	// Mode selects what is profiled; see [Modes]. Empty disables profiling.
	Mode string
	// Dir receives the profile output. Empty uses the working directory.
	Dir string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Option configures a [Profiler].
type Option func(*Profiler)

// Make returns a Profiler with opts applied.
func Make(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) Option {
	return func(p *Profiler) { p.Mode = mode }
}

// WithDir returns a functional option for setting a profiler's output
// directory.
func WithDir(dir string) Option {
	return func(p *Profiler) { p.Dir = dir }
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) Option {
	return func(p *Profiler) { p.Quiet = quiet }
}

// Enabled reports whether Start would actually profile: the mode is set
// and supported by this build.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && slices.Contains(Modes(), p.Mode)
}

// Start begins profiling and returns a handle for stopping it.
// When the Profiler is not [Profiler.Enabled], Start returns a no-op.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
