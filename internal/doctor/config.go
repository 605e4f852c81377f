package doctor

import (
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/devboot/internal/config"
	"github.com/rileyhilliard/devboot/internal/errors"
)

// ConfigCheck verifies the config file loads and validates.
// Having no config file is fine.
type ConfigCheck struct {
	ConfigPath string // Explicit path, or empty for the default location
}

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return CategoryConfig }

func (c *ConfigCheck) Run() CheckResult {
	_, path, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		result := CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: err.Error(),
		}
		var e *errors.Error
		if stderrors.As(err, &e) {
			result.Message = e.Message
			result.Suggestion = e.Suggestion
		}
		return result
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusPass,
			Message:    "No config file, using built-in defaults",
			Suggestion: "Run 'devboot init' to create one",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", path),
	}
}
