package workflow

import (
	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/gpg"
	"github.com/rileyhilliard/devboot/internal/prompt"
	"github.com/rileyhilliard/devboot/internal/ui"
)

// BackupGPG exports the key matching the session email into three files
// in the home directory.
func (s *Session) BackupGPG() error {
	files, err := s.GPG.Backup(s.Identity.Email)
	if err != nil {
		return err
	}
	for _, f := range files {
		ui.Success(s.Out, "Wrote %s", f)
	}
	ui.Info(s.Out, "%s contains your private key. Keep it somewhere safe.", s.Paths.GPGSecretBackup)
	return nil
}

// RestoreGPG imports whatever backup files exist, then asks which key to
// sign commits with.
func (s *Session) RestoreGPG() error {
	n, err := s.GPG.Restore()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Advise(errors.ErrGPG,
			"No GPG backup files found in "+s.Paths.Home,
			"Expected gpg-public.asc, gpg-secret.asc or gpg-ownertrust.txt")
	}
	ui.Success(s.Out, "Imported %d GPG backup file(s)", n)

	keyID, err := s.chooseKeyID()
	if err != nil {
		return err
	}
	if err := s.Git.SetSigningKey(keyID); err != nil {
		return err
	}
	ui.Success(s.Out, "Git will sign commits with %s", keyID)
	return nil
}

// generateGPG runs gpg's interactive key generation, asking first when
// secret keys already exist, and returns the key ID the user picked.
// Declining generation still lets the user pick an existing key.
func (s *Session) generateGPG() (string, error) {
	has, err := s.GPG.HasSecretKeys()
	if err != nil {
		return "", err
	}

	generate := true
	if has {
		generate, err = s.Prompter.Confirm("GPG secret keys already exist. Generate a new one anyway?", false)
		if err != nil {
			return "", inputError(err)
		}
	}

	if generate {
		if err := s.interactive("Generating GPG key", "GPG key generated", s.GPG.Generate); err != nil {
			return "", err
		}
	} else {
		s.display.RenderSkipped("GPG key generation", "using an existing key")
	}

	keyID, err := s.chooseKeyID()
	if err != nil {
		return "", err
	}

	spinner := s.display.Spinner("Exporting GPG public key to " + s.Paths.GPGExport)
	if err := spinner.Run(func() error { return s.GPG.ExportPublic(keyID, s.Paths.GPGExport) }, errors.IsAdvisory); err != nil {
		return "", err
	}
	return keyID, nil
}

// chooseKeyID shows the secret key listing and asks for a key ID. The most
// recent key is offered as the default.
func (s *Session) chooseKeyID() (string, error) {
	if err := s.GPG.ListSecretKeys(); err != nil {
		return "", err
	}

	latest := s.GPG.LatestKeyID()
	answer, err := prompt.Until(s.Prompter, prompt.Question{
		Title:       "GPG key ID",
		Description: "Copy the ID after the key type, e.g. rsa4096/3AA5C34371567BD2",
		Placeholder: latest,
		Default:     latest,
		Validate:    gpg.ValidateKeyID,
	}, 0)
	if err != nil {
		return "", inputError(err)
	}
	return gpg.NormalizeKeyID(answer), nil
}
