package doctor

import (
	"github.com/rileyhilliard/devboot/internal/config"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/gitconfig"
	"github.com/rileyhilliard/devboot/internal/gpg"
	"github.com/rileyhilliard/devboot/internal/logger"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/sshkey"
)

// Env is what the checks inspect.
type Env struct {
	Config     *config.Config // nil means built-in defaults
	ConfigPath string
	Paths      paths.Paths
	Runner     exec.Runner
	Lookup     LookupFunc // nil means exec.LookPath
	Log        logger.Logger
}

// NewChecks builds the full check list in report order.
func NewChecks(env Env) []Check {
	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ssh := sshkey.New(env.Runner, env.Paths, env.Log)
	keyring := gpg.New(env.Runner, env.Paths, env.Log)
	git := gitconfig.New(env.Runner, env.Log)

	checks := ToolChecks(cfg, env.Lookup)
	checks = append(checks,
		&ConfigCheck{ConfigPath: env.ConfigPath},
		&SSHKeyCheck{SSH: ssh, Paths: env.Paths},
		&SSHBackupCheck{Paths: env.Paths},
		&GPGKeyCheck{GPG: keyring, Paths: env.Paths},
		&GitIdentityCheck{Git: git},
		&SigningCheck{Git: git, GPG: keyring},
		&GPGTTYCheck{Paths: env.Paths},
	)
	return checks
}
