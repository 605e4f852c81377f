// Package gitconfig writes the global git settings devboot owns:
// user.name, user.email, user.signingkey and commit.gpgsign.
package gitconfig

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"os"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/identity"
	"github.com/rileyhilliard/devboot/internal/logger"
)

// Configurer sets global git configuration through the git binary.
type Configurer struct {
	runner exec.Runner
	log    logger.Logger
}

// New creates a git configurer.
func New(runner exec.Runner, log logger.Logger) *Configurer {
	if log == nil {
		log = logger.Noop()
	}
	return &Configurer{runner: runner, log: log}
}

func (c *Configurer) set(key, value string) error {
	if _, err := c.runner.Output("git", "config", "--global", key, value); err != nil {
		if nf := exec.NotInstalled(err, "git"); nf != nil {
			return nf
		}
		return errors.WrapWithCode(err, errors.ErrGit,
			"Failed to set git "+key,
			"Ensure git is installed: pkg install git")
	}
	c.log.Debug("git config --global %s %s", key, value)
	return nil
}

// SetIdentity sets user.name and user.email.
func (c *Configurer) SetIdentity(id identity.Identity) error {
	if err := c.set("user.name", id.Username); err != nil {
		return err
	}
	return c.set("user.email", id.Email)
}

// SetSigningKey makes keyID the commit signing key and turns signing on.
func (c *Configurer) SetSigningKey(keyID string) error {
	if err := c.set("user.signingkey", keyID); err != nil {
		return err
	}
	return c.set("commit.gpgsign", "true")
}

// Get reads a global git setting. An unset key returns "" and no error;
// git exits 1 for those. A missing git binary is an ErrExec error.
func (c *Configurer) Get(key string) (string, error) {
	out, err := c.runner.Output("git", "config", "--global", "--get", key)
	if err != nil {
		if nf := exec.NotInstalled(err, "git"); nf != nil {
			return "", nf
		}
		var ce *exec.CommandError
		if stderrors.As(err, &ce) && ce.ExitCode != 1 {
			return "", errors.WrapWithCode(err, errors.ErrGit,
				"Failed to read git "+key,
				"Check ~/.gitconfig for syntax errors")
		}
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

// EnsureExportLine appends line to the shell rc file at rcPath unless an
// identical line is already present. The file is created if missing.
// Reports whether the file was changed.
func EnsureExportLine(rcPath, line string) (bool, error) {
	existing, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.WrapWithCode(err, errors.ErrGit,
			"Failed to read "+rcPath,
			"Add this line yourself: "+line)
	}

	if hasLine(existing, line) {
		return false, nil
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, errors.WrapWithCode(err, errors.ErrGit,
			"Failed to open "+rcPath,
			"Add this line yourself: "+line)
	}
	defer f.Close()

	var b strings.Builder
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		b.WriteString("\n")
	}
	b.WriteString(line)
	b.WriteString("\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrGit,
			"Failed to write "+rcPath,
			"Add this line yourself: "+line)
	}
	return true, nil
}

// HasExportLine reports whether rcPath already contains line.
// A missing file counts as not containing it.
func HasExportLine(rcPath, line string) (bool, error) {
	content, err := os.ReadFile(rcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return hasLine(content, line), nil
}

func hasLine(content []byte, line string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == line {
			return true
		}
	}
	return false
}
