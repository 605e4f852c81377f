package doctor

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/gitconfig"
	"github.com/rileyhilliard/devboot/internal/gpg"
	"github.com/rileyhilliard/devboot/internal/menu"
	"github.com/rileyhilliard/devboot/internal/paths"
)

// GitIdentityCheck verifies user.name and user.email are set globally.
type GitIdentityCheck struct {
	Git *gitconfig.Configurer
}

func (c *GitIdentityCheck) Name() string     { return "git_identity" }
func (c *GitIdentityCheck) Category() string { return CategoryGit }

func (c *GitIdentityCheck) Run() CheckResult {
	name, err := c.Git.Get("user.name")
	if err != nil {
		return gitFailure(c.Name(), err)
	}
	email, err := c.Git.Get("user.email")
	if err != nil {
		return gitFailure(c.Name(), err)
	}
	if name == "" || email == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Git identity is not set",
			Suggestion: "Full setup sets user.name and user.email",
			Remedy:     menu.FullSetup,
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Git identity: %s <%s>", name, email),
	}
}

// SigningCheck verifies commits are signed with a key that is in the keyring.
type SigningCheck struct {
	Git *gitconfig.Configurer
	GPG *gpg.Manager
}

func (c *SigningCheck) Name() string     { return "git_signing" }
func (c *SigningCheck) Category() string { return CategoryGit }

func (c *SigningCheck) Run() CheckResult {
	keyID, err := c.Git.Get("user.signingkey")
	if err != nil {
		return gitFailure(c.Name(), err)
	}
	if keyID == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "No signing key configured",
			Remedy:  menu.RestoreGPG,
		}
	}

	keys, err := c.GPG.SecretKeys()
	if err != nil || !hasKey(keys, keyID) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Signing key %s is not in the keyring", keyID),
			Suggestion: "Restore the GPG backup or pick another key",
			Remedy:     menu.RestoreGPG,
		}
	}

	gpgsign, err := c.Git.Get("commit.gpgsign")
	if err != nil {
		return gitFailure(c.Name(), err)
	}
	if gpgsign != "true" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Signing key %s is set but commit.gpgsign is off", keyID),
			Suggestion: "Run: git config --global commit.gpgsign true",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Commits signed with %s", keyID),
	}
}

// gitFailure reports a git config read that failed outright, so an
// uninstalled git is never mistaken for an unset value.
func gitFailure(name string, err error) CheckResult {
	result := CheckResult{
		Name:    name,
		Status:  StatusFail,
		Message: err.Error(),
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		result.Message = e.Message
		result.Suggestion = e.Suggestion
	}
	if errors.IsCode(err, errors.ErrExec) {
		result.Remedy = menu.Install
	}
	return result
}

// hasKey matches keyID against long key IDs and fingerprints. Short IDs
// and long IDs are suffixes of the fingerprint.
func hasKey(keys []gpg.SecretKey, keyID string) bool {
	id := gpg.NormalizeKeyID(keyID)
	for _, k := range keys {
		if strings.HasSuffix(strings.ToUpper(k.Fingerprint), id) || strings.HasSuffix(strings.ToUpper(k.KeyID), id) {
			return true
		}
	}
	return false
}

// GPGTTYCheck verifies the shell rc exports GPG_TTY.
type GPGTTYCheck struct {
	Paths paths.Paths
}

func (c *GPGTTYCheck) Name() string     { return "gpg_tty" }
func (c *GPGTTYCheck) Category() string { return CategoryGit }

func (c *GPGTTYCheck) Run() CheckResult {
	has, err := gitconfig.HasExportLine(c.Paths.ShellRC, paths.GPGTTYExportLine)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("Cannot read %s", c.Paths.ShellRC),
		}
	}
	if !has {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s does not export GPG_TTY", c.Paths.ShellRC),
			Suggestion: fmt.Sprintf("Add: %s", paths.GPGTTYExportLine),
			Remedy:     menu.FullSetup,
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("GPG_TTY exported in %s", c.Paths.ShellRC),
	}
}
