package cli

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/logger"
	extesting "github.com/rileyhilliard/devboot/internal/exec/testing"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantOutput string
	}{
		{name: "nil", err: nil, wantCode: 0, wantOutput: ""},
		{
			name:       "structured",
			err:        errors.New(errors.ErrPackage, "Package install failed", "Check your network"),
			wantCode:   1,
			wantOutput: "✗ Package install failed",
		},
		{
			name:       "plain",
			err:        stderrors.New("boom"),
			wantCode:   1,
			wantOutput: "✗ boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.wantCode, exitCode(tt.err, &buf))
			if tt.wantOutput == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.wantOutput)
			}
		})
	}
}

func testSession(t *testing.T, input string) (sessionOptions, *extesting.FakeRunner, *bytes.Buffer) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := paths.New(home, t.TempDir())
	runner := extesting.NewFakeRunner()
	out := &bytes.Buffer{}
	return sessionOptions{
		In:     strings.NewReader(input),
		Out:    out,
		Runner: runner,
		Paths:  &p,
	}, runner, out
}

func TestRunSessionExit(t *testing.T) {
	opts, runner, out := testSession(t, "alice-99\nalice@example.com\n7\n")

	require.NoError(t, runSession(opts))

	assert.Empty(t, runner.Calls)
	assert.Contains(t, out.String(), "Select an operation")
}

func TestRunSessionLoadsConfig(t *testing.T) {
	opts, runner, out := testSession(t, "\n\n5\n\nn\n")
	path := filepath.Join(t.TempDir(), "devboot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`package_manager: apt
packages: [git]
extra_packages: [termux-api]
identity:
  username: alice-99
  email: alice@example.com
`), 0644))
	opts.ConfigPath = path

	require.NoError(t, runSession(opts))

	assert.Equal(t, []string{"apt update -y", "apt install -y git termux-api"}, runner.Lines())
	assert.Contains(t, out.String(), "alice-99")
}

func TestRunSessionConfigErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("packages: [\"-rf\"]\n"), 0644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.yaml")},
		{name: "invalid package name", path: invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, runner, _ := testSession(t, "")
			opts.ConfigPath = tt.path

			err := runSession(opts)

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Empty(t, runner.Calls)
		})
	}
}

func TestRunSessionCancelled(t *testing.T) {
	opts, _, _ := testSession(t, "alice-99\n")

	err := runSession(opts)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInput))
	assert.ErrorIs(t, err, prompt.ErrCancelled)
}

func TestSharedInputKeepsUnreadAnswersForTools(t *testing.T) {
	in := sharedInput(strings.NewReader("alice-99\ny\npassphrase\n"))
	out := &bytes.Buffer{}
	runner := localRunner(in, out, logger.Noop())
	p := prompt.New(in, out)

	assert.Same(t, in, runner.Stdin)
	assert.Same(t, out, runner.Stdout)

	name, err := p.Input(prompt.Question{Title: "Username"})
	require.NoError(t, err)
	assert.Equal(t, "alice-99", name)

	rest, err := io.ReadAll(runner.Stdin)
	require.NoError(t, err)
	assert.Equal(t, "y\npassphrase\n", string(rest))
}

func TestSharedInputBuffersNonTerminalFiles(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	// A regular file is not a terminal, so it gets buffered like a pipe.
	_, buffered := sharedInput(f).(*bufio.Reader)
	assert.True(t, buffered)
}

func TestRootCommand(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		versionShort = false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
	})

	t.Run("version short", func(t *testing.T) {
		orig := version
		defer func() { version = orig }()
		version = "1.4.0"

		var out, stderr bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"version", "--short"})

		assert.Equal(t, 0, execute(rootCmd, &stderr))
		assert.Equal(t, "1.4.0\n", out.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("missing config exits 1", func(t *testing.T) {
		var out, stderr bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetIn(strings.NewReader(""))
		rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})

		assert.Equal(t, 1, execute(rootCmd, &stderr))
		assert.Contains(t, stderr.String(), "Specified config file not found")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		var stderr bytes.Buffer
		rootCmd.SetArgs([]string{"extra"})

		assert.Equal(t, 1, execute(rootCmd, &stderr))
	})
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"config", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.NotNil(t, initCmd.Flags().Lookup("force"))
}
