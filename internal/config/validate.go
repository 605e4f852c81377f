package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/identity"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but devboot only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade devboot or lower the version field")
	}

	if strings.TrimSpace(cfg.PackageManager) == "" {
		return errors.New(errors.ErrConfig,
			"package_manager is empty",
			"Set package_manager: pkg (or remove the key to use the default)")
	}

	for _, list := range [][]string{cfg.Packages, cfg.ExtraPackages} {
		for _, name := range list {
			if err := ValidatePackageName(name); err != nil {
				return err
			}
		}
	}

	if cfg.Identity.Username != "" {
		if err := identity.ValidateUsername(cfg.Identity.Username); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("identity.username %q is invalid", cfg.Identity.Username),
				"Fix or remove identity.username in the config file")
		}
	}
	if cfg.Identity.Email != "" {
		if err := identity.ValidateEmail(cfg.Identity.Email); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("identity.email %q is invalid", cfg.Identity.Email),
				"Fix or remove identity.email in the config file")
		}
	}

	return nil
}

// ValidatePackageName rejects names that would be parsed as flags or split by the shell.
func ValidatePackageName(name string) error {
	if name == "" {
		return errors.New(errors.ErrConfig,
			"Empty package name",
			"Remove the empty entry from the package list")
	}
	if strings.HasPrefix(name, "-") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Package name %q looks like a flag", name),
			"Package names can't start with '-'")
	}
	if strings.ContainsAny(name, " \t\n") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Package name %q contains whitespace", name),
			"List each package as its own entry")
	}
	return nil
}
