package workflow

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/devboot/internal/pkgmgr"
	"github.com/rileyhilliard/devboot/internal/prompt"
)

// Install refreshes the package index and installs the base packages plus
// the session's extras.
func (s *Session) Install() error {
	if err := s.collectExtras(); err != nil {
		return err
	}
	return s.updateAndInstall()
}

func (s *Session) updateAndInstall() error {
	pm := s.Config.PackageManager

	err := s.interactive(fmt.Sprintf("Updating package index (%s update)", pm), "Package index updated", s.Packages.Update)
	if err != nil {
		return err
	}

	pkgs := s.Packages.Packages(s.Extras)
	return s.interactive(
		fmt.Sprintf("Installing %s", strings.Join(pkgs, " ")),
		fmt.Sprintf("Installed %d packages", len(pkgs)),
		func() error { return s.Packages.Install(s.Extras) },
	)
}

// collectExtras asks for additional packages once per session. The
// configured extras are always kept.
func (s *Session) collectExtras() error {
	if s.Extras != nil {
		return nil
	}

	defaults := s.Config.ExtraPackages
	answer, err := prompt.Until(s.Prompter, prompt.Question{
		Title:       "Extra packages",
		Description: fmt.Sprintf("Always installed: %s", strings.Join(pkgmgr.Merge(s.Config.Packages, defaults), " ")),
		Placeholder: "vim tmux",
		Validate:    validateExtras,
	}, 0)
	if err != nil {
		return inputError(err)
	}

	s.Extras = pkgmgr.ParseExtras(answer, defaults)
	if s.Extras == nil {
		s.Extras = []string{}
	}
	s.Log.Debug("extra packages: %v", s.Extras)
	return nil
}

// validateExtras rejects names pkg would parse as options. Splitting already
// removed whitespace and blanks.
func validateExtras(input string) error {
	for _, name := range pkgmgr.ParseExtras(input, nil) {
		if strings.HasPrefix(name, "-") {
			return fmt.Errorf("%q looks like a flag, package names can't start with '-'", name)
		}
	}
	return nil
}
