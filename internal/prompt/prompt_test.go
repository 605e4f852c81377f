package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func TestLineInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		q       Question
		want    string
		wantErr error
		invalid bool
	}{
		{
			name:  "plain answer trimmed",
			input: "  alice  \n",
			q:     Question{Title: "Username"},
			want:  "alice",
		},
		{
			name:  "empty answer uses default",
			input: "\n",
			q:     Question{Title: "Username", Default: "bob"},
			want:  "bob",
		},
		{
			name:  "last line without newline",
			input: "carol",
			q:     Question{Title: "Username"},
			want:  "carol",
		},
		{
			name:    "eof cancels",
			input:   "",
			q:       Question{Title: "Username"},
			wantErr: ErrCancelled,
		},
		{
			name:    "validation failure",
			input:   "\n",
			q:       Question{Title: "Username", Validate: notEmpty},
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLine(strings.NewReader(tt.input), &out)

			got, err := p.Input(tt.q)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.invalid:
				var invalid *InvalidError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, "value is required", invalid.Error())
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLineInput_RendersTitleAndDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("\n"), &out)

	_, err := p.Input(Question{Title: "Email", Description: "Used for git", Default: "a@b.co"})

	require.NoError(t, err)
	assert.Equal(t, "Used for git\nEmail [a@b.co]: ", out.String())
}

func TestLineConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"YES uppercase", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default no", "\n", false, false},
		{"empty takes default yes", "\n", true, true},
		{"garbage then yes", "maybe\nyes\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLine(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Continue?", tt.def)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineConfirm_HintAndReask(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("what\nn\n"), &out)

	_, err := p.Confirm("Overwrite?", false)

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out.String(), "Overwrite? [y/N]: "))
	assert.Contains(t, out.String(), "Please answer y or n.")
}

func TestLineConfirm_EOF(t *testing.T) {
	p := NewLine(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Confirm("Continue?", false)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestUntil_Unbounded(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("\n\n\nfinally\n"), &out)

	got, err := Until(p, Question{Title: "Name", Validate: notEmpty}, 0)

	require.NoError(t, err)
	assert.Equal(t, "finally", got)
	assert.Equal(t, 3, strings.Count(out.String(), "✗ value is required"))
}

func TestUntil_Bounded(t *testing.T) {
	p := NewLine(strings.NewReader("\n\n\nfinally\n"), &bytes.Buffer{})

	_, err := Until(p, Question{Title: "Name", Validate: notEmpty}, 2)

	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestUntil_Cancelled(t *testing.T) {
	p := NewLine(strings.NewReader("\n"), &bytes.Buffer{})

	_, err := Until(p, Question{Title: "Name", Validate: notEmpty}, 0)

	assert.ErrorIs(t, err, ErrCancelled)
}

func TestParseYesNo(t *testing.T) {
	yes, ok := ParseYesNo(" Yes ", false)
	assert.True(t, ok)
	assert.True(t, yes)

	_, ok = ParseYesNo("yep", false)
	assert.False(t, ok)
}

func TestNew_NonTerminalUsesLine(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})
	_, ok := p.(*Line)
	assert.True(t, ok)
}
