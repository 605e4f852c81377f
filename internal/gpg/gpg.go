// Package gpg drives the gpg binary for key generation, export, backup and
// restore. Key material never passes through devboot except as the
// ASCII-armored files gpg itself writes.
package gpg

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/logger"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/util"
)

const (
	binary = "gpg"

	PublicMode = 0644
	SecretMode = 0600
)

var keyIDPattern = regexp.MustCompile(`^(0[xX])?[0-9A-Fa-f]{8,40}$`)

// ValidateKeyID checks that s looks like a gpg key ID or fingerprint:
// 8 to 40 hex characters with an optional 0x prefix.
func ValidateKeyID(s string) error {
	if !keyIDPattern.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("key ID must be 8 to 40 hex characters, got %q", strings.TrimSpace(s))
	}
	return nil
}

// NormalizeKeyID trims whitespace and the optional 0x prefix.
func NormalizeKeyID(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	return strings.ToUpper(s)
}

// SecretKey is one secret key from the colon listing.
type SecretKey struct {
	KeyID       string
	Fingerprint string
	UIDs        []string
}

// Manager runs gpg operations for one home directory.
type Manager struct {
	runner exec.Runner
	paths  paths.Paths
	log    logger.Logger
}

// New creates a GPG manager.
func New(runner exec.Runner, p paths.Paths, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Noop()
	}
	return &Manager{runner: runner, paths: p, log: log}
}

// SecretKeys lists secret keys in keyring order, which gpg reports
// oldest first.
func (m *Manager) SecretKeys() ([]SecretKey, error) {
	out, err := m.runner.Output(binary, "--list-secret-keys", "--with-colons")
	if err != nil {
		if nf := exec.NotInstalled(err, "gnupg"); nf != nil {
			return nil, nf
		}
		return nil, errors.WrapWithCode(err, errors.ErrGPG,
			"Failed to list GPG secret keys",
			"Ensure gnupg is installed: pkg install gnupg")
	}
	return ParseSecretKeys(out), nil
}

// ParseSecretKeys reads sec, fpr and uid records from
// gpg --with-colons output. Subkey records are ignored.
func ParseSecretKeys(out []byte) []SecretKey {
	var keys []SecretKey
	var current *SecretKey
	inSubkey := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		if len(fields) < 2 {
			continue
		}

		switch fields[0] {
		case "sec":
			if current != nil {
				keys = append(keys, *current)
			}
			current = &SecretKey{}
			inSubkey = false
			if len(fields) > 4 {
				current.KeyID = fields[4]
			}
		case "ssb":
			inSubkey = true
		case "fpr":
			if current != nil && !inSubkey && current.Fingerprint == "" && len(fields) > 9 {
				current.Fingerprint = fields[9]
			}
		case "uid":
			if current != nil && len(fields) > 9 {
				current.UIDs = append(current.UIDs, fields[9])
			}
		}
	}
	if current != nil {
		keys = append(keys, *current)
	}
	return keys
}

// HasSecretKeys reports whether the keyring holds any secret key.
func (m *Manager) HasSecretKeys() (bool, error) {
	keys, err := m.SecretKeys()
	return len(keys) > 0, err
}

// HasSecretKeyFor reports whether a secret key has a uid containing <email>.
func (m *Manager) HasSecretKeyFor(email string) (bool, error) {
	keys, err := m.SecretKeys()
	if err != nil {
		return false, err
	}
	needle := "<" + strings.ToLower(email) + ">"
	for _, k := range keys {
		for _, uid := range k.UIDs {
			if strings.Contains(strings.ToLower(uid), needle) {
				return true, nil
			}
		}
	}
	return false, nil
}

// SecretKeyIDs returns the long key IDs of all secret keys, newest last.
func (m *Manager) SecretKeyIDs() ([]string, error) {
	keys, err := m.SecretKeys()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.KeyID != "" {
			ids = append(ids, k.KeyID)
		}
	}
	return ids, nil
}

// LatestKeyID returns the most recently listed secret key ID, or "".
func (m *Manager) LatestKeyID() string {
	ids, err := m.SecretKeyIDs()
	if err != nil || len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

// Generate hands the terminal to gpg --full-generate-key.
// Only the exit status is observed.
func (m *Manager) Generate() error {
	if err := m.runner.Run(binary, "--full-generate-key"); err != nil {
		if nf := exec.NotInstalled(err, "gnupg"); nf != nil {
			return nf
		}
		return errors.WrapWithCode(err, errors.ErrGPG,
			"GPG key generation failed",
			"Run gpg --full-generate-key manually to see the full error")
	}
	return nil
}

// ListSecretKeys prints the human-readable listing to the terminal so the
// user can copy a key ID from it.
func (m *Manager) ListSecretKeys() error {
	if err := m.runner.Run(binary, "--list-secret-keys", "--keyid-format=long"); err != nil {
		return errors.WrapWithCode(err, errors.ErrGPG,
			"Failed to list GPG secret keys",
			"Ensure gnupg is installed: pkg install gnupg")
	}
	return nil
}

// ArmoredPublicKey returns the ASCII-armored public key for keyID.
func (m *Manager) ArmoredPublicKey(keyID string) ([]byte, error) {
	out, err := m.runner.Output(binary, "--armor", "--export", NormalizeKeyID(keyID))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrGPG,
			"Failed to export GPG public key "+keyID,
			"Check the key ID with: gpg --list-secret-keys --keyid-format=long")
	}
	if len(bytes.TrimSpace(out)) == 0 {
		// gpg exits 0 with a warning when nothing matches.
		return nil, errors.New(errors.ErrGPG,
			"No public key found for "+keyID,
			"Check the key ID with: gpg --list-secret-keys --keyid-format=long")
	}
	return out, nil
}

// ExportPublic writes the armored public key for keyID to path.
func (m *Manager) ExportPublic(keyID, path string) error {
	armored, err := m.ArmoredPublicKey(keyID)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(path, armored, PublicMode); err != nil {
		return errors.WrapWithCode(err, errors.ErrGPG,
			"Failed to write "+path,
			"Check that the directory is writable")
	}
	m.log.Debug("exported %s to %s", keyID, path)
	return nil
}
