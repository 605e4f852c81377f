// Package cli implements the devboot command-line interface.
//
// Running "devboot" with no arguments starts the interactive session from
// the workflow package. Two subcommands sit beside it:
//
//	devboot version [--short]  - Print build information
//	devboot init [--force]     - Write a default config file
//
// Global flags (--config, --verbose) are defined on the root command.
//
// Execute is the only place that turns an error into an exit status.
// Advisory errors are reported inside the session and never get here, so
// any error Execute sees exits 1.
package cli
