package log

import (
	"io"
)

// Option configures a [Logger] at creation time.
type Option func(*config)

// apply returns a copy of cfg with opts applied in order.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithDefaults returns a functional option that resets every setting to its
// default and directs output to w.
// The default configuration is [DefaultTimeLayout], [DefaultLevel],
// [DefaultFormat], [DefaultPretty], and caller info disabled.
func WithDefaults(w io.Writer) Option {
	return func(c *config) {
		*c = config{
			formatTime: makeFormatTimeFunc(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}

		WithOutput(w)(c)
	}
}

// WithOutput returns a functional option that sets the output [io.Writer]
// for log messages.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel returns a functional option that sets the minimum log level.
// Messages below this level are discarded.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat returns a functional option that sets the output format
// for log messages.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout returns a functional option that sets the layout used to
// format log timestamps.
//
// The layout string can be one of the named layouts from the [time] package
// (for example, "RFC3339" or "RFC3339Nano"). Otherwise, it is passed verbatim
// to [time.Time.Format] and must follow its layout rules.
//
// If an empty string (after trimming whitespace) is provided, timestamps are
// disabled and no time is included in log output.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return func(c *config) { c.formatTime = format }
}

// WithCaller returns a functional option that controls whether caller
// information is included in log output.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty returns a functional option that controls whether log output
// is colorized for terminals.
// For text format: unquoted values, gray keys and colored values.
// For JSON format: one field per line with the same coloring.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}
