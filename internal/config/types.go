package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents ~/.config/devboot/config.yaml.
// Key and backup locations are deliberately absent: they are fixed paths
// derived from the home directory (see internal/paths).
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// PackageManager is the binary used for update/install (pkg on Termux).
	PackageManager string `yaml:"package_manager" mapstructure:"package_manager"`

	// Packages are always installed.
	Packages []string `yaml:"packages" mapstructure:"packages"`

	// ExtraPackages are offered as the default extras; the user can add more.
	ExtraPackages []string `yaml:"extra_packages" mapstructure:"extra_packages"`

	// Identity pre-fills the username/email prompts.
	Identity IdentityDefaults `yaml:"identity" mapstructure:"identity"`
}

// IdentityDefaults pre-fill the identity prompts. Both are optional.
type IdentityDefaults struct {
	Username string `yaml:"username" mapstructure:"username"`
	Email    string `yaml:"email" mapstructure:"email"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		PackageManager: "pkg",
		Packages:       []string{"git", "openssh", "gnupg"},
		ExtraPackages:  []string{"termux-api"},
	}
}
