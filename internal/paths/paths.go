// Package paths defines every file devboot reads or writes.
// The locations are fixed relative to the home directory and are not
// configurable; backups and restores must agree on the same names.
package paths

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/devboot/internal/errors"
)

// Fixed file names.
const (
	SSHKeyName       = "id_rsa"
	GPGPublicBackup  = "gpg-public.asc"
	GPGSecretBackup  = "gpg-secret.asc"
	GPGOwnertrust    = "gpg-ownertrust.txt"
	GPGExportName    = "devboot-gpg-public.asc"
	ShellRCName      = ".bashrc"
	GPGTTYExportLine = "export GPG_TTY=$(tty)"
	sshDirName       = ".ssh"
	sshConfigName    = "config"
	publicKeySuffix  = ".pub"
)

// Paths holds the resolved locations for one home directory.
type Paths struct {
	Home string

	SSHDir    string // ~/.ssh
	SSHKey    string // ~/.ssh/id_rsa
	SSHPub    string // ~/.ssh/id_rsa.pub
	SSHConfig string // ~/.ssh/config

	SSHBackupKey string // ~/id_rsa
	SSHBackupPub string // ~/id_rsa.pub

	GPGPublicBackup string // ~/gpg-public.asc
	GPGSecretBackup string // ~/gpg-secret.asc
	GPGTrustBackup  string // ~/gpg-ownertrust.txt
	GPGExport       string // $TMPDIR/devboot-gpg-public.asc

	ShellRC string // ~/.bashrc
}

// New resolves all paths under home, with the GPG export placed in tmpDir.
func New(home, tmpDir string) Paths {
	sshDir := filepath.Join(home, sshDirName)
	return Paths{
		Home: home,

		SSHDir:    sshDir,
		SSHKey:    filepath.Join(sshDir, SSHKeyName),
		SSHPub:    filepath.Join(sshDir, SSHKeyName+publicKeySuffix),
		SSHConfig: filepath.Join(sshDir, sshConfigName),

		SSHBackupKey: filepath.Join(home, SSHKeyName),
		SSHBackupPub: filepath.Join(home, SSHKeyName+publicKeySuffix),

		GPGPublicBackup: filepath.Join(home, GPGPublicBackup),
		GPGSecretBackup: filepath.Join(home, GPGSecretBackup),
		GPGTrustBackup:  filepath.Join(home, GPGOwnertrust),
		GPGExport:       filepath.Join(tmpDir, GPGExportName),

		ShellRC: filepath.Join(home, ShellRCName),
	}
}

// Default resolves paths for the current user.
func Default() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to determine home directory",
			"Set the HOME environment variable")
	}
	return New(home, os.TempDir()), nil
}
