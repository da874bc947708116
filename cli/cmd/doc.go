// Package cmd implements the monkey subcommands: repl, eval, fmt, and init.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file.
	ConfigIdentifier = "config"

	// ScriptPathIdentifier is the kong variable identifier containing the
	// delimited list of directories searched to resolve bare script names.
	ScriptPathIdentifier = "scriptpath"
)
