package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/devboot/internal/config"
	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/prompt"
	"github.com/rileyhilliard/devboot/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path     string // "" means the default location
	Force    bool   // Overwrite an existing config without asking
	Prompter prompt.Prompter
	Out      io.Writer
}

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Write a config file with the built-in package list and defaults to
~/.config/devboot/config.yaml, or to the path given with --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Path:     cfgFile,
			Force:    initForce,
			Prompter: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
			Out:      cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

// Init writes the default config file.
func Init(opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Could not determine where to write the config file",
			"Set HOME or pass --config <path>")
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		overwrite, err := opts.Prompter.Confirm(fmt.Sprintf("Config file %s already exists. Overwrite?", path), false)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrInput,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	if err := config.Write(path, config.DefaultConfig()); err != nil {
		return err
	}

	ui.Success(opts.Out, "Created %s", path)
	ui.Info(opts.Out, "Edit it to change the package list or pre-fill your username and email.")
	return nil
}
