package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Line is a Prompter that reads newline-terminated answers.
type Line struct {
	r   *bufio.Reader
	out io.Writer
}

// NewLine creates a line prompter reading from in and writing prompts to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{
		r:   bufio.NewReader(in),
		out: out,
	}
}

// Input prints the question and reads one line.
func (l *Line) Input(q Question) (string, error) {
	title := q.Title
	if q.Default != "" {
		title += " [" + q.Default + "]"
	}
	if q.Description != "" {
		fmt.Fprintln(l.out, q.Description)
	}
	fmt.Fprintf(l.out, "%s: ", title)

	value, err := l.readLine()
	if err != nil {
		return "", err
	}
	if value == "" {
		value = q.Default
	}

	if q.Validate != nil {
		if verr := q.Validate(value); verr != nil {
			return "", &InvalidError{Value: value, Reason: verr}
		}
	}
	return value, nil
}

// Confirm asks a y/n question, re-asking until it gets an answer it understands.
func (l *Line) Confirm(title string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(l.out, "%s %s: ", title, hint)
		answer, err := l.readLine()
		if err != nil {
			return false, err
		}

		if yes, ok := ParseYesNo(answer, def); ok {
			return yes, nil
		}
		fmt.Fprintln(l.out, "Please answer y or n.")
	}
}

// Print writes msg on its own line.
func (l *Line) Print(msg string) {
	fmt.Fprintln(l.out, msg)
}

func (l *Line) readLine() (string, error) {
	s, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if s == "" {
				return "", ErrCancelled
			}
			// Last line without a trailing newline
			return strings.TrimSpace(s), nil
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// ParseYesNo interprets a yes/no answer. Empty means def.
// The second result is false when the answer is not recognised.
func ParseYesNo(answer string, def bool) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

var _ Prompter = (*Line)(nil)
