package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/callcheck/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// Kong calls it while parsing --log-format, early enough to affect messages
// logged during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"json"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp layout (named or Go layout; \"none\" disables)."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies the final logger configuration.
func (f *logConfig) start(ctx context.Context) {
	log.Config(f.options()...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

func (f *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing.
//
// Level and format are also applied by their TextUnmarshalers during
// parsing, but boolean flags and the time layout are not, so every
// logger flag is applied here. Scanning stops at "--".
func (f *logConfig) scan(args []string) {
	const (
		logPrefix   = "--log-"
		noLogPrefix = "--no-log-"
	)

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		flag, value, assigned := strings.Cut(args[i], "=")

		var (
			name   string
			negate bool
		)

		switch {
		case strings.HasPrefix(flag, noLogPrefix):
			name, negate = strings.TrimPrefix(flag, noLogPrefix), true
		case strings.HasPrefix(flag, logPrefix):
			name = strings.TrimPrefix(flag, logPrefix)
		default:
			continue
		}

		switch name {
		case "level", "format", "time-layout":
			if negate {
				continue
			}

			// Non-boolean flag: consume next arg as value if not assigned.
			if !assigned && i+1 < len(args) && args[i+1] != "" &&
				!strings.HasPrefix(args[i+1], "-") {
				value = args[i+1]
				i++
			}

			f.set(name, value)

		case "caller", "pretty":
			// Boolean flag: only parse value if explicitly assigned with "=".
			enable := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			f.set(name, strconv.FormatBool(enable != negate))
		}
	}
}

// set assigns the logger flag with the given name (without prefix) and
// applies it to the default logger.
func (f *logConfig) set(name, value string) {
	switch name {
	case "level":
		_ = f.Level.UnmarshalText([]byte(value))

	case "format":
		_ = f.Format.UnmarshalText([]byte(value))

	case "time-layout":
		f.TimeLayout = value
		log.Config(log.WithTimeLayout(value))

	case "caller":
		f.Caller = value == "true"
		log.Config(log.WithCaller(f.Caller))

	case "pretty":
		f.Pretty = value == "true"
		log.Config(log.WithPretty(f.Pretty))
	}
}
