package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Huh is a Prompter backed by charmbracelet/huh forms.
// Validation runs inside the form, so Input never returns *InvalidError.
type Huh struct {
	out io.Writer
}

// NewHuh creates a huh-backed prompter. Print output goes to out.
func NewHuh(out io.Writer) *Huh {
	return &Huh{out: out}
}

// Input shows a single-field form.
func (h *Huh) Input(q Question) (string, error) {
	value := q.Default

	field := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Placeholder(q.Placeholder).
		Value(&value)
	if q.Validate != nil {
		field = field.Validate(func(s string) error {
			return q.Validate(strings.TrimSpace(s))
		})
	}

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return "", formError(err)
	}
	return strings.TrimSpace(value), nil
}

// Confirm shows a yes/no form.
func (h *Huh) Confirm(title string, def bool) (bool, error) {
	value := def

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return false, formError(err)
	}
	return value, nil
}

// Print writes msg on its own line.
func (h *Huh) Print(msg string) {
	fmt.Fprintln(h.out, msg)
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

var _ Prompter = (*Huh)(nil)
