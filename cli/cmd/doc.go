// Package cmd implements the callcheck subcommands: check, funcs and init.
//
// Commands receive everything they share through their [context.Context]:
// the parsed [kong.Context] ([WithContext]), the signature registry
// ([WithRegistry]) and the standard streams ([WithInput], [WithOutput]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
