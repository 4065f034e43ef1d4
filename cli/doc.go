// Package cli contains the command line interface for callcheck.
//
// # Usage
//
//	callcheck [flags] check [FILE|-]... [--format text|pretty|json|yaml|msgpack] [--jobs N]
//	callcheck [flags] funcs [PATTERN] [--format text|yaml|json] [--interactive]
//	callcheck [flags] init [--force]
//
// check is the default command; with no files it reads one call document
// from stdin. It exits non-zero when any diagnostic was reported.
//
// # Signature Libraries
//
// Functions beyond the builtins are declared in YAML, TOML or JSON library
// files. Directories given with --lib are searched first, followed by those
// listed in the CALLCHECK_PATH environment variable.
//
// # Configuration File
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/callcheck/config.yaml). The init command
// writes the current flag values there. See [resolve] for the format.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, kitchen, none, ...)
//   - --log-caller: include caller information
//   - --[no-]log-pretty: colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default in the user cache
//     directory)
package cli
