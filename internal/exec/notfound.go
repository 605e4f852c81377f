package exec

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
)

// commandNotFoundPatterns extract the missing command name from shell
// output. They only apply with exit code 127.
var commandNotFoundPatterns = []*regexp.Regexp{
	// Termux's command-not-found handler
	regexp.MustCompile(`(?i)No command '?([^'\s]+)'? found`),
	regexp.MustCompile(`(?i)bash: (\S+): command not found`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
	regexp.MustCompile(`(?i)(\S+): not found`),
}

// IsCommandNotFound checks if the error output indicates a missing command.
// Returns the command name (if extractable) and whether it's a command-not-found error.
func IsCommandNotFound(stderr string, exitCode int) (string, bool) {
	if exitCode != 127 {
		return "", false
	}
	for _, pattern := range commandNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(stderr); len(matches) > 1 {
			return matches[1], true
		}
	}
	return "", true
}

// MissingCommand reports whether err means the command never ran because
// its binary is absent, and which binary that was.
func MissingCommand(err error) (string, bool) {
	var ce *CommandError
	if !stderrors.As(err, &ce) {
		return "", false
	}

	name := ce.Command
	if fields := strings.Fields(ce.Command); len(fields) > 0 {
		name = fields[0]
	}

	if IsNotFound(ce.Cause) {
		return name, true
	}
	if cmd, ok := IsCommandNotFound(ce.Stderr, ce.ExitCode); ok {
		if cmd == "" {
			cmd = name
		}
		return cmd, true
	}
	return "", false
}

// NotInstalled returns a structured error naming the package to install
// when err is a missing binary, and nil otherwise.
func NotInstalled(err error, pkg string) error {
	name, ok := MissingCommand(err)
	if !ok {
		return nil
	}
	return errors.WrapWithCode(err, errors.ErrExec,
		fmt.Sprintf("'%s' is not installed", name),
		fmt.Sprintf("Install it with: pkg install %s (or run Update and install packages)", pkg))
}
