package exec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rileyhilliard/devboot/internal/logger"
)

// Runner invokes external tools. The session only ever talks to
// pkg, ssh-keygen, ssh-agent, ssh-add, gpg, and git through it.
type Runner interface {
	// Run executes the command with the terminal attached. Interactive
	// tools (package installs, gpg --full-generate-key) own the terminal
	// until they exit; only the exit status comes back.
	Run(name string, args ...string) error

	// Output executes the command and returns its stdout. Stderr is
	// captured and carried in the returned *CommandError on failure.
	Output(name string, args ...string) ([]byte, error)
}

// CommandError describes a failed external command.
type CommandError struct {
	Command  string
	ExitCode int    // -1 when the command could not be started
	Stderr   string // Only populated by Output
	Cause    error
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", e.Command, e.Cause)
	}
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// Local runs commands on this machine.
type Local struct {
	// Stdin must be the same reader the prompter uses. Non-file readers
	// are copied to the child, which may consume answers meant for later prompts.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    logger.Logger
}

// NewLocal creates a runner wired to the process's standard streams.
func NewLocal(log logger.Logger) *Local {
	if log == nil {
		log = logger.Noop()
	}
	return &Local{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
	}
}

// Run executes name with args, streaming through the runner's stdio.
func (l *Local) Run(name string, args ...string) error {
	line := CommandLine(name, args...)
	l.Log.Debug("run: %s", line)

	command := exec.Command(name, args...)
	command.Stdin = l.Stdin
	command.Stdout = l.Stdout
	command.Stderr = l.Stderr

	return commandError(line, command.Run(), "")
}

// Output executes name with args and returns what it wrote to stdout.
func (l *Local) Output(name string, args ...string) ([]byte, error) {
	line := CommandLine(name, args...)
	l.Log.Debug("output: %s", line)

	var stdout, stderr bytes.Buffer
	command := exec.Command(name, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	runErr := command.Run()
	return stdout.Bytes(), commandError(line, runErr, strings.TrimSpace(stderr.String()))
}

func commandError(line string, runErr error, stderr string) error {
	if runErr == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return &CommandError{
			Command:  line,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
			Cause:    runErr,
		}
	}

	// Never started: missing binary, bad permissions, etc.
	return &CommandError{
		Command:  line,
		ExitCode: -1,
		Stderr:   stderr,
		Cause:    runErr,
	}
}

// CommandLine renders a command for logs and error messages.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// IsNotFound reports whether err means the binary is not installed.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
