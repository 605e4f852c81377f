package workflow

import (
	"fmt"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/ui"
)

// BackupSSH copies ~/.ssh/id_rsa and id_rsa.pub into the home directory.
func (s *Session) BackupSSH() error {
	files, err := s.SSH.Backup()
	if err != nil {
		return err
	}
	for _, f := range files {
		ui.Success(s.Out, "Backed up %s", f)
	}
	return nil
}

// RestoreSSH moves the home-directory backup back into ~/.ssh.
func (s *Session) RestoreSSH() error {
	files, err := s.SSH.Restore()
	if err != nil {
		return err
	}
	for _, f := range files {
		ui.Success(s.Out, "Restored %s", f)
	}
	ui.Success(s.Out, "Key added to ssh-agent")
	return nil
}

// generateSSH creates the SSH key, asking first if one exists.
// Declining is advisory and leaves the existing files untouched.
func (s *Session) generateSSH() error {
	if s.SSH.Exists() {
		overwrite, err := s.Prompter.Confirm(
			fmt.Sprintf("An SSH key already exists at %s. Overwrite it?", s.Paths.SSHKey), false)
		if err != nil {
			return inputError(err)
		}
		if !overwrite {
			return errors.Advise(errors.ErrSSH,
				"Kept existing SSH key at "+s.Paths.SSHKey,
				"")
		}
	}

	var done string
	err := s.interactive("Generating SSH key", "SSH key generated", func() error {
		info, err := s.SSH.Generate(s.Identity.Email)
		if err != nil {
			return err
		}
		done = fmt.Sprintf("%d-bit %s %s", info.Bits, info.Type, info.Fingerprint)
		return nil
	})
	if err != nil {
		return err
	}
	s.display.RenderSubStatus(ui.SymbolComplete, s.Paths.SSHKey, done)
	return nil
}
