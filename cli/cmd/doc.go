// Package cmd implements the enconf subcommands.
//
// Every command reads the source documents named by the global --source flag,
// in order, from the context prepared by package cli.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the CLI configuration file.
	ConfigIdentifier = "config"
)
