// Package prompt collects interactive input for devboot.
//
// Two Prompter implementations exist. Huh renders charmbracelet/huh forms
// and is used on a real terminal. Line reads plain lines and is used when
// stdin is piped (scripted runs, tests). Validation loops go through Until,
// which keeps asking until the answer is valid, the attempt budget runs
// out, or the user cancels.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt or stdin closes.
var ErrCancelled = errors.New("input cancelled")

// ErrTooManyAttempts is returned by Until when a bounded loop is exhausted.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// Question describes a single free-text prompt.
type Question struct {
	Title       string
	Description string
	Placeholder string
	Default     string // Used when the answer is empty
	Validate    func(string) error
}

// InvalidError reports an answer that failed Question.Validate.
type InvalidError struct {
	Value  string
	Reason error
}

func (e *InvalidError) Error() string {
	return e.Reason.Error()
}

func (e *InvalidError) Unwrap() error {
	return e.Reason
}

// Prompter asks the user things.
type Prompter interface {
	// Input asks a free-text question. A validation failure comes back as
	// *InvalidError; implementations that validate inline never return one.
	Input(q Question) (string, error)

	// Confirm asks a yes/no question.
	Confirm(title string, def bool) (bool, error)

	// Print shows a line of text between prompts.
	Print(msg string)
}

// New picks the huh prompter when in is a terminal, the line prompter otherwise.
func New(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && IsTerminal(f) {
		return NewHuh(out)
	}
	return NewLine(in, out)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Until asks q until it gets a valid answer.
// maxAttempts <= 0 means no limit.
func Until(p Prompter, q Question, maxAttempts int) (string, error) {
	for attempt := 1; ; attempt++ {
		value, err := p.Input(q)
		if err == nil {
			return value, nil
		}

		var invalid *InvalidError
		if !errors.As(err, &invalid) {
			return "", err
		}

		p.Print(fmt.Sprintf("✗ %s", invalid.Error()))
		if maxAttempts > 0 && attempt >= maxAttempts {
			return "", ErrTooManyAttempts
		}
	}
}
