// Package pkgmgr refreshes the package index and installs packages through
// the system package manager (pkg on Termux). Both operations run with the
// terminal attached so the user sees download progress and mirror prompts.
package pkgmgr

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
)

// Manager wraps a package-manager binary.
type Manager struct {
	runner exec.Runner
	binary string
	base   []string
}

// New creates a manager for binary that always installs base.
func New(runner exec.Runner, binary string, base []string) *Manager {
	return &Manager{
		runner: runner,
		binary: binary,
		base:   base,
	}
}

// Update refreshes the package index.
func (m *Manager) Update() error {
	if err := m.runner.Run(m.binary, "update", "-y"); err != nil {
		return errors.WrapWithCode(err, errors.ErrPackage,
			"Package index update failed",
			fmt.Sprintf("Check your network connection, or pick another mirror with termux-change-repo, then rerun '%s update'", m.binary))
	}
	return nil
}

// Install installs the base packages plus extras in one invocation.
func (m *Manager) Install(extras []string) error {
	pkgs := Merge(m.base, extras)

	args := append([]string{"install", "-y"}, pkgs...)
	if err := m.runner.Run(m.binary, args...); err != nil {
		return errors.WrapWithCode(err, errors.ErrPackage,
			fmt.Sprintf("Failed to install packages: %s", strings.Join(pkgs, " ")),
			"Check the package names, then run the install manually to see the full error")
	}
	return nil
}

// Packages returns everything Install would install for extras.
func (m *Manager) Packages(extras []string) []string {
	return Merge(m.base, extras)
}

// ParseExtras splits user input on whitespace and commas.
// defaults come first and are always present; duplicates are dropped.
func ParseExtras(input string, defaults []string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return Merge(defaults, fields)
}

// Merge concatenates lists, keeping first occurrences and dropping blanks.
func Merge(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, name := range list {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
