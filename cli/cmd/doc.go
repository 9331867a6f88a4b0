// Package cmd implements the ntro subcommands.
//
// Each command is a kong command struct whose Run method receives the
// context prepared by the cli package. [WithContext] stores the parsed
// [kong.Context] in it so commands can reach the application variables.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
