package workflow

import (
	"os"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/gitconfig"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/ui"
)

// FullSetup prepares a fresh environment: packages, SSH key, GPG key, git
// identity and signing. It finishes by printing both public keys.
//
// Advisory outcomes inside a step (keeping an existing SSH key) skip only
// that step. Fatal errors stop the run.
func (s *Session) FullSetup() error {
	if err := s.collectExtras(); err != nil {
		return err
	}
	if err := s.updateAndInstall(); err != nil {
		return err
	}

	if err := s.generateSSH(); err != nil {
		if !errors.IsAdvisory(err) {
			return err
		}
		s.display.RenderSkipped("SSH key", "kept existing key")
	}

	keyID, err := s.generateGPG()
	if err != nil {
		return err
	}

	if err := s.configureGit(keyID); err != nil {
		return err
	}

	s.display.Divider()
	return s.showPublicKeys()
}

// configureGit sets identity and signing, then makes sure the shell exports
// GPG_TTY so gpg can ask for passphrases when git signs.
func (s *Session) configureGit(keyID string) error {
	if err := s.Git.SetIdentity(s.Identity); err != nil {
		return err
	}
	ui.Success(s.Out, "Git identity set to %s", s.Identity)

	if err := s.Git.SetSigningKey(keyID); err != nil {
		return err
	}
	ui.Success(s.Out, "Git will sign commits with %s", keyID)

	changed, err := gitconfig.EnsureExportLine(s.Paths.ShellRC, paths.GPGTTYExportLine)
	if err != nil {
		return err
	}
	if changed {
		ui.Success(s.Out, "Added %q to %s", paths.GPGTTYExportLine, s.Paths.ShellRC)
	}
	return nil
}

func (s *Session) showPublicKeys() error {
	pub, err := s.SSH.PublicKey()
	if err != nil {
		return err
	}
	ui.Block(s.Out, "SSH public key ("+s.Paths.SSHPub+")", pub)

	if hosts, err := s.SSH.HostsUsingKey(); err != nil {
		s.Log.Warn("could not read %s: %v", s.Paths.SSHConfig, err)
	} else if len(hosts) > 0 {
		ui.Info(s.Out, "Hosts in %s using this key: %s", s.Paths.SSHConfig, strings.Join(hosts, ", "))
	}

	armored, err := os.ReadFile(s.Paths.GPGExport)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrGPG,
			"Failed to read exported GPG public key",
			"Export it again with: gpg --armor --export <key id>")
	}
	ui.Block(s.Out, "GPG public key ("+s.Paths.GPGExport+")", string(armored))

	ui.Info(s.Out, "Add both keys to your GitHub account under Settings > SSH and GPG keys.")
	return nil
}
