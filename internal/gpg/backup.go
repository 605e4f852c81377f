package gpg

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/util"
)

// BackupFile is one file written by Backup.
type BackupFile struct {
	Path string
	Size int64
}

// String renders "path (size)".
func (f BackupFile) String() string {
	return fmt.Sprintf("%s (%s)", f.Path, humanize.Bytes(uint64(f.Size)))
}

// Backup exports the public key, secret key and ownertrust for email into
// the home directory. Without a secret key for email it is advisory and
// writes nothing.
func (m *Manager) Backup(email string) ([]BackupFile, error) {
	ok, err := m.HasSecretKeyFor(email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Advise(errors.ErrGPG,
			"No GPG secret key found for "+email,
			"Generate one with full setup (option 6) first")
	}

	steps := []struct {
		args []string
		path string
		mode os.FileMode
	}{
		{[]string{"--armor", "--export", email}, m.paths.GPGPublicBackup, PublicMode},
		{[]string{"--armor", "--export-secret-keys", email}, m.paths.GPGSecretBackup, SecretMode},
		{[]string{"--export-ownertrust"}, m.paths.GPGTrustBackup, SecretMode},
	}

	// Export everything before writing so a failure leaves no partial bundle.
	exported := make([][]byte, len(steps))
	for i, s := range steps {
		out, err := m.runner.Output(binary, s.args...)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrGPG,
				"Failed to export GPG keys for "+email,
				"Run gpg "+strings.Join(s.args, " ")+" manually to see the full error")
		}
		exported[i] = out
	}

	files := make([]BackupFile, 0, len(steps))
	for i, s := range steps {
		if err := util.WriteFileAtomic(s.path, exported[i], s.mode); err != nil {
			return files, errors.WrapWithCode(err, errors.ErrGPG,
				"Failed to write "+s.path,
				"Check free space in your home directory")
		}
		files = append(files, BackupFile{Path: s.path, Size: int64(len(exported[i]))})
	}
	return files, nil
}

// Restore imports whichever backup files exist and returns how many were
// imported. An import failure is fatal.
func (m *Manager) Restore() (int, error) {
	imports := []struct {
		path string
		flag string
	}{
		{m.paths.GPGPublicBackup, "--import"},
		{m.paths.GPGSecretBackup, "--import"},
		{m.paths.GPGTrustBackup, "--import-ownertrust"},
	}

	count := 0
	for _, im := range imports {
		if !util.FileExists(im.path) {
			m.log.Debug("skipping missing %s", im.path)
			continue
		}
		// Run, not Output: importing a secret key may ask for its passphrase.
		if err := m.runner.Run(binary, im.flag, im.path); err != nil {
			return count, errors.WrapWithCode(err, errors.ErrGPG,
				"Failed to import "+im.path,
				"Run gpg "+im.flag+" "+im.path+" manually to see the full error")
		}
		count++
	}
	return count, nil
}
