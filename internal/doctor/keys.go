package doctor

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/devboot/internal/gpg"
	"github.com/rileyhilliard/devboot/internal/menu"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/sshkey"
	"github.com/rileyhilliard/devboot/internal/util"
)

// SSHKeyCheck verifies ~/.ssh/id_rsa exists, parses, and is private.
type SSHKeyCheck struct {
	SSH   *sshkey.Manager
	Paths paths.Paths
}

func (c *SSHKeyCheck) Name() string     { return "ssh_key" }
func (c *SSHKeyCheck) Category() string { return CategorySSH }

func (c *SSHKeyCheck) Run() CheckResult {
	if !c.SSH.Exists() {
		result := CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("No SSH key at %s", c.Paths.SSHKey),
			Suggestion: "Generate one with full setup",
			Remedy:     menu.FullSetup,
		}
		if util.FileExists(c.Paths.SSHBackupKey) {
			result.Suggestion = fmt.Sprintf("A backup exists at %s", c.Paths.SSHBackupKey)
			result.Remedy = menu.RestoreSSH
		}
		return result
	}

	info, err := c.SSH.Inspect()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot read public key %s", c.Paths.SSHPub),
			Suggestion: "Regenerate the key with full setup",
			Remedy:     menu.FullSetup,
		}
	}

	st, err := os.Stat(c.Paths.SSHKey)
	if err == nil && st.Mode().Perm() != sshkey.PrivateMode {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s has mode %04o, expected %04o", c.Paths.SSHKey, st.Mode().Perm(), sshkey.PrivateMode),
			Suggestion: fmt.Sprintf("Run: chmod %o %s", sshkey.PrivateMode, c.Paths.SSHKey),
		}
	}

	msg := fmt.Sprintf("%s key %s", info.Type, info.Fingerprint)
	if info.Bits > 0 {
		msg = fmt.Sprintf("%s %d-bit key %s", info.Type, info.Bits, info.Fingerprint)
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
}

// SSHBackupCheck reports whether a home-directory backup of the key exists.
type SSHBackupCheck struct {
	Paths paths.Paths
}

func (c *SSHBackupCheck) Name() string     { return "ssh_backup" }
func (c *SSHBackupCheck) Category() string { return CategorySSH }

func (c *SSHBackupCheck) Run() CheckResult {
	if util.FileExists(c.Paths.SSHBackupKey) && util.FileExists(c.Paths.SSHBackupPub) {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("Backup at %s", c.Paths.SSHBackupKey),
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusWarn,
		Message: "No SSH key backup in the home directory",
		Remedy:  menu.BackupSSH,
	}
}

// GPGKeyCheck verifies the keyring holds at least one secret key.
type GPGKeyCheck struct {
	GPG   *gpg.Manager
	Paths paths.Paths
}

func (c *GPGKeyCheck) Name() string     { return "gpg_key" }
func (c *GPGKeyCheck) Category() string { return CategoryGPG }

func (c *GPGKeyCheck) Run() CheckResult {
	ids, err := c.GPG.SecretKeyIDs()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot list GPG secret keys",
			Suggestion: "Ensure gnupg is installed: pkg install gnupg",
			Remedy:     menu.Install,
		}
	}

	if len(ids) == 0 {
		result := CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No GPG secret keys",
			Suggestion: "Generate one with full setup",
			Remedy:     menu.FullSetup,
		}
		if util.FileExists(c.Paths.GPGSecretBackup) {
			result.Suggestion = fmt.Sprintf("A backup exists at %s", c.Paths.GPGSecretBackup)
			result.Remedy = menu.RestoreGPG
		}
		return result
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d secret key%s, latest %s", len(ids), pluralize(len(ids)), ids[len(ids)-1]),
	}
}
