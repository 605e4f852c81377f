package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Step completed
	SymbolFail     = "✗" // Step failed
	SymbolPending  = "○" // Step not yet started
	SymbolProgress = "◐" // Step in progress
	SymbolComplete = "●" // Step done (alternative to success)
	SymbolSkipped  = "⊘" // Step skipped or advisory warning
	SymbolArrow    = "›" // Menu cursor / prompt marker
)
