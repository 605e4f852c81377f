package identity

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rileyhilliard/devboot/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "alice", true},
		{"with digits and hyphen", "alice-99", true},
		{"single char", "a", true},
		{"exactly 39 chars", strings.Repeat("a", 39), true},
		{"leading hyphen allowed by pattern", "-alice", true},
		{"empty", "", false},
		{"40 chars", strings.Repeat("a", 40), false},
		{"underscore", "alice_99", false},
		{"space", "alice 99", false},
		{"dot", "alice.99", false},
		{"unicode", "älice", false},
		{"trailing newline", "alice\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			// Same answer every time
			assert.Equal(t, err == nil, ValidateUsername(tt.input) == nil)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "alice@example.com", true},
		{"plus and dots", "alice.b+git@mail.example.co", true},
		{"percent and hyphen", "a%b-c@ex-ample.org", true},
		{"empty", "", false},
		{"no at", "alice.example.com", false},
		{"no domain dot", "alice@example", false},
		{"single letter tld", "alice@example.c", false},
		{"two ats", "alice@@example.com", false},
		{"space", "alice @example.com", false},
		{"missing local part", "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIdentityValidateAndString(t *testing.T) {
	id := Identity{Username: "alice-99", Email: "alice@example.com"}
	assert.NoError(t, id.Validate())
	assert.Equal(t, "alice-99 <alice@example.com>", id.String())

	assert.Error(t, Identity{Username: "bad name", Email: "alice@example.com"}.Validate())
	assert.Error(t, Identity{Username: "alice", Email: "nope"}.Validate())
}

func TestCollect_RepromptsUntilValid(t *testing.T) {
	input := strings.Join([]string{
		"not valid!",
		"alice-99",
		"alice-at-example",
		"alice@example.com",
	}, "\n") + "\n"
	var out bytes.Buffer
	p := prompt.NewLine(strings.NewReader(input), &out)

	id, err := Collect(p, Identity{})

	require.NoError(t, err)
	assert.Equal(t, Identity{Username: "alice-99", Email: "alice@example.com"}, id)
	assert.Equal(t, 2, strings.Count(out.String(), "✗ "))
}

func TestCollect_UsesValidDefaults(t *testing.T) {
	p := prompt.NewLine(strings.NewReader("\n\n"), &bytes.Buffer{})

	id, err := Collect(p, Identity{Username: "bob", Email: "bob@example.org"})

	require.NoError(t, err)
	assert.Equal(t, Identity{Username: "bob", Email: "bob@example.org"}, id)
}

func TestCollect_IgnoresInvalidDefaults(t *testing.T) {
	p := prompt.NewLine(strings.NewReader("\ncarol\n\ncarol@example.net\n"), &bytes.Buffer{})

	id, err := Collect(p, Identity{Username: "not valid", Email: "broken"})

	require.NoError(t, err)
	assert.Equal(t, "carol", id.Username)
	assert.Equal(t, "carol@example.net", id.Email)
}

func TestCollect_Cancelled(t *testing.T) {
	p := prompt.NewLine(strings.NewReader("alice\n"), &bytes.Buffer{})

	_, err := Collect(p, Identity{})

	assert.ErrorIs(t, err, prompt.ErrCancelled)
}
