// Package menu presents the numbered operation menu and reads a choice.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/devboot/internal/prompt"
	"github.com/rileyhilliard/devboot/internal/ui"
)

// Choice is a menu selection, 1 through 7.
type Choice int

const (
	BackupSSH Choice = iota + 1
	BackupGPG
	RestoreSSH
	RestoreGPG
	Install
	FullSetup
	Exit
)

// Choices lists every valid selection in menu order.
var Choices = []Choice{BackupSSH, BackupGPG, RestoreSSH, RestoreGPG, Install, FullSetup, Exit}

var labels = map[Choice]string{
	BackupSSH:  "Backup SSH key",
	BackupGPG:  "Backup GPG key",
	RestoreSSH: "Restore SSH key",
	RestoreGPG: "Restore GPG key and git signing",
	Install:    "Update and install packages",
	FullSetup:  "Full setup",
	Exit:       "Exit",
}

// String returns the workflow name.
func (c Choice) String() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return fmt.Sprintf("Choice(%d)", int(c))
}

// Valid reports whether c is one of the seven menu entries.
func (c Choice) Valid() bool {
	return c >= BackupSSH && c <= Exit
}

// ParseChoice accepts "1".."7" with surrounding whitespace.
func ParseChoice(s string) (Choice, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	c := Choice(n)
	if !c.Valid() {
		return 0, false
	}
	return c, true
}

// State is where the session loop is.
type State int

const (
	ShowMenu State = iota
	Dispatching
	Done
)

func (s State) String() string {
	switch s {
	case ShowMenu:
		return "show-menu"
	case Dispatching:
		return "dispatching"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Menu renders the operation list and reads selections.
type Menu struct {
	p     prompt.Prompter
	state State
}

// New creates a menu reading through p.
func New(p prompt.Prompter) *Menu {
	return &Menu{p: p, state: ShowMenu}
}

// State returns the current loop state.
func (m *Menu) State() State {
	return m.state
}

// Render returns the menu text.
func Render() string {
	items := make([]ui.MenuItem, len(Choices))
	for i, c := range Choices {
		items[i] = ui.MenuItem{Key: strconv.Itoa(int(c)), Label: c.String()}
	}
	return ui.RenderMenu("Select an operation", items)
}

// Next shows the menu and reads a choice. Invalid input is reported and the
// menu shown again, with no limit. Exit moves the menu to Done; any other
// choice moves it to Dispatching.
func (m *Menu) Next() (Choice, error) {
	m.state = ShowMenu
	for {
		m.p.Print(strings.TrimRight(Render(), "\n"))

		answer, err := m.p.Input(prompt.Question{Title: "Choice", Placeholder: "1-7"})
		if err != nil {
			return 0, err
		}

		if c, ok := ParseChoice(answer); ok {
			if c == Exit {
				m.state = Done
			} else {
				m.state = Dispatching
			}
			return c, nil
		}
		m.p.Print(fmt.Sprintf("%s Invalid choice %q, enter a number from 1 to 7", ui.SymbolSkipped, strings.TrimSpace(answer)))
	}
}

// Finish returns the menu to ShowMenu after a dispatch, or Done when the
// user is finished.
func (m *Menu) Finish(again bool) {
	if again {
		m.state = ShowMenu
		return
	}
	m.state = Done
}
