package lang

import (
	"runtime"

	"github.com/ardnew/callcheck/log"
)

// config holds the settings shared by [Binder] and the document checker.
type config struct {
	logger log.Logger // zero value discards everything
	jobs   int
}

// Option configures a [Binder].
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithJobs bounds the number of calls checked concurrently by
// [Binder.Check]. Values below one select runtime.GOMAXPROCS(0).
func WithJobs(n int) Option {
	return func(c *config) {
		c.jobs = n
	}
}

// applyDefaults sets default option values.
func applyDefaults(c *config) {
	c.jobs = runtime.GOMAXPROCS(0)
}

// applyOptions applies functional options to a config.
func applyOptions(c *config, opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}

	if c.jobs < 1 {
		c.jobs = runtime.GOMAXPROCS(0)
	}
}
