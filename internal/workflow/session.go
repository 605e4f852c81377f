// Package workflow runs the interactive devboot session: collect the
// identity, show the menu, run the chosen operation, repeat on request.
//
// Every operation receives the Session explicitly. Errors coming back from
// an operation are either advisory (reported, session continues) or fatal
// (returned to the caller, which exits 1).
package workflow

import (
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/devboot/internal/config"
	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/gitconfig"
	"github.com/rileyhilliard/devboot/internal/gpg"
	"github.com/rileyhilliard/devboot/internal/identity"
	"github.com/rileyhilliard/devboot/internal/logger"
	"github.com/rileyhilliard/devboot/internal/menu"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/pkgmgr"
	"github.com/rileyhilliard/devboot/internal/prompt"
	"github.com/rileyhilliard/devboot/internal/sshkey"
	"github.com/rileyhilliard/devboot/internal/ui"
)

// Options configures a new Session.
type Options struct {
	Config     *config.Config
	ConfigPath string // "" when running on built-in defaults
	Paths      paths.Paths
	Prompter   prompt.Prompter
	Runner     exec.Runner
	Out        io.Writer
	Log        logger.Logger
	Version    string
}

// Session is the context handed to every workflow.
// Identity and Extras are set once and not changed afterwards.
type Session struct {
	Identity identity.Identity
	Extras   []string

	Config     *config.Config
	ConfigPath string
	Paths      paths.Paths
	Prompter   prompt.Prompter
	Runner     exec.Runner

	Packages *pkgmgr.Manager
	SSH      *sshkey.Manager
	GPG      *gpg.Manager
	Git      *gitconfig.Configurer

	Out     io.Writer
	Log     logger.Logger
	Version string

	display *ui.PhaseDisplay
}

// New wires the managers for one session.
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = logger.Noop()
	}

	return &Session{
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Paths:      opts.Paths,
		Prompter:   opts.Prompter,
		Runner:     opts.Runner,
		Packages:   pkgmgr.New(opts.Runner, cfg.PackageManager, cfg.Packages),
		SSH:        sshkey.New(opts.Runner, opts.Paths, log),
		GPG:        gpg.New(opts.Runner, opts.Paths, log),
		Git:        gitconfig.New(opts.Runner, log),
		Out:        opts.Out,
		Log:        log,
		Version:    opts.Version,
		display:    ui.NewPhaseDisplay(opts.Out),
	}
}

// Run drives the session until the user exits or a fatal error occurs.
// A nil return means a normal exit.
func (s *Session) Run() error {
	ui.PrintBanner(s.Out, ui.BannerInfo{Version: s.Version, Tagline: "Termux developer environment setup"})

	if err := s.collectIdentity(); err != nil {
		return err
	}

	m := menu.New(s.Prompter)
	for {
		choice, err := m.Next()
		if err != nil {
			return inputError(err)
		}
		if choice == menu.Exit {
			return nil
		}

		s.display.Divider()
		s.Log.Debug("dispatching %s", choice)
		if err := s.handle(choice, s.Dispatch(choice)); err != nil {
			return err
		}

		again, err := s.Prompter.Confirm("Perform another operation?", false)
		if err != nil {
			return inputError(err)
		}
		m.Finish(again)
		if !again {
			return nil
		}
	}
}

// Dispatch runs the workflow for choice. Every menu choice maps to exactly
// one workflow; Exit is a no-op.
func (s *Session) Dispatch(choice menu.Choice) error {
	switch choice {
	case menu.BackupSSH:
		return s.BackupSSH()
	case menu.BackupGPG:
		return s.BackupGPG()
	case menu.RestoreSSH:
		return s.RestoreSSH()
	case menu.RestoreGPG:
		return s.RestoreGPG()
	case menu.Install:
		return s.Install()
	case menu.FullSetup:
		return s.FullSetup()
	case menu.Exit:
		return nil
	default:
		return errors.New(errors.ErrInput,
			fmt.Sprintf("Unknown menu choice %d", int(choice)),
			"Pick a number from 1 to 7")
	}
}

// handle is the session's single decision point for workflow results.
// Advisory errors are shown and swallowed; anything else is returned.
func (s *Session) handle(choice menu.Choice, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAdvisory(err) {
		s.Log.Debug("%s: advisory: %v", choice, err)
		ui.ErrorBlock(s.Out, err.Error(), true)
		return nil
	}
	return err
}

func (s *Session) collectIdentity() error {
	defaults := identity.Identity{
		Username: s.Config.Identity.Username,
		Email:    s.Config.Identity.Email,
	}

	id, err := identity.Collect(s.Prompter, defaults)
	if err != nil {
		return inputError(err)
	}
	s.Identity = id
	s.Log.Debug("identity: %s", id)

	if s.ConfigPath == "" || id == defaults {
		return nil
	}

	save, err := s.Prompter.Confirm(fmt.Sprintf("Save %s as the default identity in %s?", id, s.ConfigPath), false)
	if err != nil {
		return inputError(err)
	}
	if !save {
		return nil
	}

	if err := config.SaveIdentity(s.ConfigPath, config.IdentityDefaults{Username: id.Username, Email: id.Email}); err != nil {
		// Saving is a convenience; the session carries on without it.
		ui.Warn(s.Out, "Could not save identity: %v", err)
		return nil
	}
	ui.Success(s.Out, "Saved identity to %s", s.ConfigPath)
	return nil
}

// interactive runs fn, which owns the terminal, between a start line and a
// result line. No spinner: the child process draws its own output.
func (s *Session) interactive(name, done string, fn func() error) error {
	s.display.RenderStart(name)
	start := time.Now()
	if err := fn(); err != nil {
		s.display.RenderFailed(name, time.Since(start))
		return err
	}
	s.display.RenderSuccess(done, time.Since(start))
	return nil
}

// inputError turns prompt failures into a structured fatal error.
func inputError(err error) error {
	if stderrors.Is(err, prompt.ErrCancelled) {
		return errors.WrapWithCode(err, errors.ErrInput,
			"Input cancelled",
			"Run devboot again when you're ready")
	}
	if stderrors.Is(err, prompt.ErrTooManyAttempts) {
		return errors.WrapWithCode(err, errors.ErrInput,
			"Too many invalid answers",
			"")
	}
	return errors.WrapWithCode(err, errors.ErrInput,
		"Failed to read input",
		"")
}
