// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is configured once at creation time with functional options.
// Reconfiguring derives a new Logger with [Logger.Wrap]; the zero Logger
// discards everything.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
//	logger.Info("checked", slog.String("file", "page.typ"), slog.Int("diagnostics", 2))
//
// Attributes added with [Logger.With] are included in every message of the
// returned Logger.
//
// # Levels
//
// In addition to the four [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] and is reported as "TRACE" rather than "DEBUG-4".
//
// # Pretty Output
//
// With [WithPretty] enabled (the default), records are colorized with
// [github.com/charmbracelet/lipgloss]. The text layout writes one
// key=value record per line; the JSON layout writes one field per line.
// Colors are dropped when the output is not a terminal.
//
// # Default Logger
//
// The package-level functions ([Info], [Warn], ...) log through a default
// Logger writing to standard output, adjusted with [Config]. Context-unaware
// functions use [DefaultContextProvider], which returns [context.TODO].
package log
