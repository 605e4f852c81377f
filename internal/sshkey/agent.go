package sshkey

import (
	"os"
	"regexp"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/logger"
)

const (
	envAuthSock = "SSH_AUTH_SOCK"
	envAgentPID = "SSH_AGENT_PID"
)

// agentVarPattern matches the Bourne-shell lines ssh-agent -s prints:
//
//	SSH_AUTH_SOCK=/data/.../agent.123; export SSH_AUTH_SOCK;
var agentVarPattern = regexp.MustCompile(`(SSH_AUTH_SOCK|SSH_AGENT_PID)=([^;\s]+);`)

// Agent registers keys with ssh-agent, starting one if none is reachable.
type Agent struct {
	runner exec.Runner
	log    logger.Logger

	// Environment access, replaceable in tests.
	Getenv func(string) string
	Setenv func(string, string) error
}

// NewAgent creates an agent helper bound to the process environment.
func NewAgent(runner exec.Runner, log logger.Logger) *Agent {
	return &Agent{
		runner: runner,
		log:    log,
		Getenv: os.Getenv,
		Setenv: os.Setenv,
	}
}

// Ensure makes sure SSH_AUTH_SOCK points at an agent.
// If it is unset, ssh-agent is started and its variables are exported
// into this process so later ssh-add calls find it.
func (a *Agent) Ensure() error {
	if a.Getenv(envAuthSock) != "" {
		return nil
	}

	out, err := a.runner.Output("ssh-agent", "-s")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to start ssh-agent",
			"Ensure openssh is installed: pkg install openssh")
	}

	vars := ParseAgentEnv(out)
	if vars[envAuthSock] == "" {
		return errors.New(errors.ErrSSH,
			"ssh-agent started but did not report SSH_AUTH_SOCK",
			"Start it yourself with: eval $(ssh-agent -s)")
	}

	for _, key := range []string{envAuthSock, envAgentPID} {
		if val, ok := vars[key]; ok {
			if err := a.Setenv(key, val); err != nil {
				return errors.WrapWithCode(err, errors.ErrSSH,
					"Failed to export "+key,
					"")
			}
		}
	}
	a.log.Debug("started ssh-agent pid=%s sock=%s", vars[envAgentPID], vars[envAuthSock])
	return nil
}

// Add registers keyPath with the agent. ssh-add runs interactively in case
// the key has a passphrase.
func (a *Agent) Add(keyPath string) error {
	if err := a.Ensure(); err != nil {
		return err
	}

	if err := a.runner.Run("ssh-add", keyPath); err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to add key to ssh-agent",
			"Try manually: ssh-add "+keyPath)
	}
	return nil
}

// ParseAgentEnv extracts SSH_AUTH_SOCK and SSH_AGENT_PID from ssh-agent -s output.
func ParseAgentEnv(out []byte) map[string]string {
	vars := make(map[string]string)
	for _, m := range agentVarPattern.FindAllSubmatch(out, -1) {
		vars[string(m[1])] = string(m[2])
	}
	return vars
}
