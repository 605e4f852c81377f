package cli

import (
	"bufio"
	stderrors "errors"
	"io"
	"os"

	"github.com/rileyhilliard/devboot/internal/config"
	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/logger"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/prompt"
	"github.com/rileyhilliard/devboot/internal/ui"
	"github.com/rileyhilliard/devboot/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "devboot",
	Short: "Set up a Termux developer environment",
	Long: `devboot walks through setting up a fresh Termux install: packages,
an SSH key, a GPG signing key and git identity. It can also back up and
restore those keys through files in your home directory.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(sessionOptions{
			ConfigPath: cfgFile,
			In:         cmd.InOrStdin(),
			Out:        cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/devboot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show the commands devboot runs")
}

// Execute runs the root command and exits 1 on any error that reaches it.
func Execute() {
	if code := execute(rootCmd, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func execute(cmd *cobra.Command, stderr io.Writer) int {
	return exitCode(cmd.Execute(), stderr)
}

// exitCode prints err and maps it to the process exit status.
// Advisory errors are handled inside the session, so anything here is fatal.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		ui.ErrorBlock(w, e.Error(), e.Advisory)
	} else {
		ui.Fail(w, "%v", err)
	}
	return 1
}

// sessionOptions carries what the root command hands to a session.
// Runner and Paths are nil in production and set by tests.
type sessionOptions struct {
	ConfigPath string
	In         io.Reader
	Out        io.Writer
	Runner     exec.Runner
	Paths      *paths.Paths
}

func runSession(opts sessionOptions) error {
	log := logger.NewEnvLogger("[devboot]")

	cfg, cfgPath, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		log.Debug("loaded config from %s", cfgPath)
	}

	var p paths.Paths
	if opts.Paths != nil {
		p = *opts.Paths
	} else if p, err = paths.Default(); err != nil {
		return err
	}

	in := sharedInput(opts.In)
	runner := opts.Runner
	if runner == nil {
		runner = localRunner(in, opts.Out, log)
	}

	session := workflow.New(workflow.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Paths:      p,
		Prompter:   prompt.New(in, opts.Out),
		Runner:     runner,
		Out:        opts.Out,
		Log:        log,
		Version:    formatVersion(version),
	})
	return session.Run()
}

// sharedInput returns the reader both the prompter and child processes read
// from. Terminals pass through untouched. Anything else is buffered once here
// so the line prompter's read-ahead stays visible to pkg, gpg and ssh-add.
func sharedInput(in io.Reader) io.Reader {
	if f, ok := in.(*os.File); ok && prompt.IsTerminal(f) {
		return f
	}
	return bufio.NewReader(in)
}

func localRunner(in io.Reader, out io.Writer, log logger.Logger) *exec.Local {
	local := exec.NewLocal(log)
	local.Stdin = in
	local.Stdout = out
	return local
}
