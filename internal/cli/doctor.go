package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/devboot/internal/config"
	"github.com/rileyhilliard/devboot/internal/doctor"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/logger"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check what devboot has set up",
	Long: `Check for the tools devboot runs, the config file, the SSH key and
its backup, GPG secret keys, and git identity and signing. Problems point
at the menu operation that fixes them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(doctorOptions{
			ConfigPath: cfgFile,
			Out:        cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorOptions mirrors sessionOptions; Runner, Paths and Lookup are for tests.
type doctorOptions struct {
	ConfigPath string
	Out        io.Writer
	Runner     exec.Runner
	Paths      *paths.Paths
	Lookup     doctor.LookupFunc
}

func doctorCommand(opts doctorOptions) error {
	log := logger.NewEnvLogger("[devboot]")

	// A broken config is reported by the config check; the rest run on defaults.
	cfg, _, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		log.Debug("config: %v", err)
		cfg = nil
	}

	var p paths.Paths
	if opts.Paths != nil {
		p = *opts.Paths
	} else if p, err = paths.Default(); err != nil {
		return err
	}

	runner := opts.Runner
	if runner == nil {
		runner = exec.NewLocal(log)
	}

	checks := doctor.NewChecks(doctor.Env{
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Paths:      p,
		Runner:     runner,
		Lookup:     opts.Lookup,
		Log:        log,
	})
	renderDoctor(opts.Out, checks, doctor.RunAll(checks))
	return nil
}

func renderDoctor(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)

	fmt.Fprintln(w, headerStyle.Render("devboot diagnostic report"))
	fmt.Fprintln(w)

	grouped := doctor.GroupByCategory(checks)
	for _, category := range doctor.Categories {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(category))
		for _, idx := range indices {
			renderCheckResult(w, results[idx])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", ui.DividerWidth))

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
		return
	}
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))

	remedies := doctor.Remedies(results)
	if len(remedies) == 0 {
		return
	}
	items := make([]ui.MenuItem, len(remedies))
	for i, c := range remedies {
		items[i] = ui.MenuItem{Key: strconv.Itoa(int(c)), Label: c.String()}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, ui.RenderMenu("Run devboot and choose:", items))
}

func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	var symbol string
	var style lipgloss.Style
	switch result.Status {
	case doctor.StatusPass:
		symbol, style = ui.SymbolComplete, lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	case doctor.StatusWarn:
		symbol, style = ui.SymbolSkipped, lipgloss.NewStyle().Foreground(ui.ColorWarning)
	default:
		symbol, style = ui.SymbolFail, lipgloss.NewStyle().Foreground(ui.ColorError)
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)
	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		fmt.Fprintf(w, "    %s\n", mutedStyle.Render(result.Suggestion))
	}
}
