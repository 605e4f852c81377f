// Package doctor inspects the current environment and reports what is
// missing or misconfigured. Each failing result names the menu operation
// that would fix it.
package doctor

import (
	"fmt"

	"github.com/rileyhilliard/devboot/internal/menu"
)

// Categories in report order.
const (
	CategoryTools  = "TOOLS"
	CategoryConfig = "CONFIG"
	CategorySSH    = "SSH"
	CategoryGPG    = "GPG"
	CategoryGit    = "GIT"
)

// Categories lists every category in the order reports show them.
var Categories = []string{CategoryTools, CategoryConfig, CategorySSH, CategoryGPG, CategoryGit}

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string
	Status     CheckStatus
	Message    string
	Suggestion string

	// Remedy is the menu operation that addresses a failing check, or 0.
	Remedy menu.Choice
}

// Check is one diagnostic.
type Check interface {
	Name() string
	Category() string
	Run() CheckResult
}

// RunAll executes checks in order.
func RunAll(checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		results[i] = check.Run()
	}
	return results
}

// GroupByCategory returns result indices keyed by their check's category.
func GroupByCategory(checks []Check) map[string][]int {
	grouped := make(map[string][]int)
	for i, check := range checks {
		cat := check.Category()
		grouped[cat] = append(grouped[cat], i)
	}
	return grouped
}

// CountByStatus counts results by status.
func CountByStatus(results []CheckResult) map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func HasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasIssues returns true if any result has a fail or warn status.
func HasIssues(results []CheckResult) bool {
	for _, r := range results {
		if r.Status != StatusPass {
			return true
		}
	}
	return false
}

// Remedies lists the distinct menu operations suggested by non-passing
// results, in menu order.
func Remedies(results []CheckResult) []menu.Choice {
	wanted := make(map[menu.Choice]bool)
	for _, r := range results {
		if r.Status != StatusPass && r.Remedy.Valid() {
			wanted[r.Remedy] = true
		}
	}

	var out []menu.Choice
	for _, c := range menu.Choices {
		if wanted[c] {
			out = append(out, c)
		}
	}
	return out
}

// Summary returns a summary string of the check results.
func Summary(results []CheckResult) string {
	counts := CountByStatus(results)
	total := counts[StatusWarn] + counts[StatusFail]
	if total == 0 {
		return "Everything looks good"
	}
	return fmt.Sprintf("%d issue%s found", total, pluralize(total))
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
