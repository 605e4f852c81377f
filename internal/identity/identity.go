// Package identity holds the username/email pair used for git authorship
// and for locating the user's GPG key.
package identity

import (
	"fmt"
	"regexp"

	"github.com/rileyhilliard/devboot/internal/prompt"
)

var (
	// Same rules GitHub applies to usernames: alphanumerics and hyphens, 1-39 chars.
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,39}$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// Identity is collected once per run and never modified afterwards.
type Identity struct {
	Username string
	Email    string
}

// String renders the identity the way git shows authors.
func (id Identity) String() string {
	return fmt.Sprintf("%s <%s>", id.Username, id.Email)
}

// ValidateUsername checks s against the allowed username pattern.
func ValidateUsername(s string) error {
	if !usernamePattern.MatchString(s) {
		return fmt.Errorf("username must be 1-39 letters, digits, or hyphens")
	}
	return nil
}

// ValidateEmail checks s against a basic email pattern.
func ValidateEmail(s string) error {
	if !emailPattern.MatchString(s) {
		return fmt.Errorf("%q doesn't look like an email address", s)
	}
	return nil
}

// Validate checks both fields.
func (id Identity) Validate() error {
	if err := ValidateUsername(id.Username); err != nil {
		return err
	}
	return ValidateEmail(id.Email)
}

// Collect asks for a username and an email, re-asking until each is valid.
// defaults pre-fill the answers (from config); invalid defaults are ignored.
// The only error is prompt.ErrCancelled (or a read failure).
func Collect(p prompt.Prompter, defaults Identity) (Identity, error) {
	username, err := prompt.Until(p, prompt.Question{
		Title:       "GitHub username",
		Placeholder: "octocat",
		Default:     validOrEmpty(defaults.Username, ValidateUsername),
		Validate:    ValidateUsername,
	}, 0)
	if err != nil {
		return Identity{}, err
	}

	email, err := prompt.Until(p, prompt.Question{
		Title:       "Email address",
		Placeholder: "you@example.com",
		Default:     validOrEmpty(defaults.Email, ValidateEmail),
		Validate:    ValidateEmail,
	}, 0)
	if err != nil {
		return Identity{}, err
	}

	return Identity{Username: username, Email: email}, nil
}

func validOrEmpty(s string, validate func(string) error) string {
	if s == "" || validate(s) != nil {
		return ""
	}
	return s
}
