package doctor

import (
	"fmt"
	osexec "os/exec"

	"github.com/rileyhilliard/devboot/internal/config"
	"github.com/rileyhilliard/devboot/internal/menu"
)

// LookupFunc finds a binary on PATH.
type LookupFunc func(name string) (string, error)

// ToolCheck verifies that a binary devboot shells out to is installed.
type ToolCheck struct {
	Binary  string
	Package string // package that provides Binary, "" if not installable
	Lookup  LookupFunc
}

func (c *ToolCheck) Name() string     { return "tool_" + c.Binary }
func (c *ToolCheck) Category() string { return CategoryTools }

func (c *ToolCheck) Run() CheckResult {
	lookup := c.Lookup
	if lookup == nil {
		lookup = osexec.LookPath
	}

	path, err := lookup(c.Binary)
	if err == nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s (%s)", c.Binary, path),
		}
	}

	if c.Package == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s not found", c.Binary),
			Suggestion: "devboot expects Termux; check package_manager in your config",
		}
	}
	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    fmt.Sprintf("%s not found", c.Binary),
		Suggestion: fmt.Sprintf("Provided by the %s package", c.Package),
		Remedy:     menu.Install,
	}
}

// ToolChecks covers the package manager plus every binary the workflows run.
func ToolChecks(cfg *config.Config, lookup LookupFunc) []Check {
	tools := []struct{ binary, pkg string }{
		{cfg.PackageManager, ""},
		{"git", "git"},
		{"ssh-keygen", "openssh"},
		{"ssh-agent", "openssh"},
		{"ssh-add", "openssh"},
		{"gpg", "gnupg"},
	}

	checks := make([]Check, 0, len(tools))
	for _, t := range tools {
		checks = append(checks, &ToolCheck{Binary: t.binary, Package: t.pkg, Lookup: lookup})
	}
	return checks
}
