package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the config file, relative to home.
	GlobalConfigDir = ".config/devboot"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
)

// DefaultPath returns ~/.config/devboot/config.yaml, or "" if home is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Run 'devboot init' to create one, or drop --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file is valid YAML: "+path)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	return cfg, nil
}

// Find resolves which config file to use.
// An explicit path must exist. Otherwise the default location is used if present.
// Returns "" when there is no config file, which means built-in defaults.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	path := DefaultPath()
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

// LoadOrDefault finds, loads, and validates the config.
// Returns the path it loaded from ("" for defaults).
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		return DefaultConfig(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setDefaults mirrors DefaultConfig so keys absent from the file keep their defaults.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("package_manager", def.PackageManager)
	v.SetDefault("packages", def.Packages)
	v.SetDefault("extra_packages", def.ExtraPackages)
}
