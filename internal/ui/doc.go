// Package ui provides terminal output for devboot's interactive session.
//
// Everything is line oriented and styled with Lip Gloss. When stdout is not
// a terminal, Lip Gloss drops the colors and the spinner skips its animation,
// so output stays readable when piped or captured in tests.
//
// # Components
//
//	Spinner       - Animated status for captured commands (gpg --export)
//	PhaseDisplay  - Step lines around commands that own the terminal (pkg, ssh-add, gpg --full-generate-key)
//	Banner, Menu  - Session header and the numbered operation menu
//	Success, Warn - One-line status messages
//
// # Symbols
//
//	SymbolSuccess  (checkmark)  - Step completed
//	SymbolFail     (X)          - Step failed
//	SymbolProgress (half-fill)  - Step in progress
//	SymbolComplete (filled)     - Step done
//	SymbolSkipped  (slashed)    - Step skipped, advisory warning
//
// # Spinner Usage
//
//	s := pd.Spinner("Exporting GPG public key")
//	err := s.Run(func() error { return keyring.ExportPublic(id, path) }, errors.IsAdvisory)
//
// Never leave a spinner running across a Runner.Run call: the interactive
// command owns the terminal until it exits.
package ui
