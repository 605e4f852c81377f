package gitconfig

import (
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
	extesting "github.com/rileyhilliard/devboot/internal/exec/testing"
	"github.com/rileyhilliard/devboot/internal/identity"
	"github.com/rileyhilliard/devboot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportLine = "export GPG_TTY=$(tty)"

func TestSetIdentity(t *testing.T) {
	runner := extesting.NewFakeRunner()
	c := New(runner, logger.Noop())

	require.NoError(t, c.SetIdentity(identity.Identity{Username: "alice-99", Email: "alice@example.com"}))

	assert.Equal(t, []string{
		"git config --global user.name alice-99",
		"git config --global user.email alice@example.com",
	}, runner.Lines())
}

func TestSetIdentity_FailureIsFatal(t *testing.T) {
	runner := extesting.NewFakeRunner().
		On("git config", extesting.Response{Err: fmt.Errorf("exit status 255")})
	c := New(runner, logger.Noop())

	err := c.SetIdentity(identity.Identity{Username: "a", Email: "a@b.co"})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrGit))
	assert.False(t, errors.IsAdvisory(err))
	assert.Len(t, runner.Calls, 1, "stops at the first failure")
}

func TestSetSigningKey(t *testing.T) {
	runner := extesting.NewFakeRunner()
	c := New(runner, logger.Noop())

	require.NoError(t, c.SetSigningKey("EEEE5555FFFF6666"))

	assert.Equal(t, []string{
		"git config --global user.signingkey EEEE5555FFFF6666",
		"git config --global commit.gpgsign true",
	}, runner.Lines())
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		resp     extesting.Response
		want     string
		wantCode string
	}{
		{
			name: "set",
			resp: extesting.Response{Output: []byte("alice@example.com\n")},
			want: "alice@example.com",
		},
		{
			name: "unset",
			resp: extesting.Response{Err: &exec.CommandError{Command: "git config", ExitCode: 1}},
		},
		{
			name: "git not installed",
			resp: extesting.Response{Err: &exec.CommandError{
				Command:  "git config --global --get user.email",
				ExitCode: -1,
				Cause:    &osexec.Error{Name: "git", Err: osexec.ErrNotFound},
			}},
			wantCode: errors.ErrExec,
		},
		{
			name:     "broken gitconfig",
			resp:     extesting.Response{Err: &exec.CommandError{Command: "git config", ExitCode: 3, Stderr: "fatal: bad config line 1"}},
			wantCode: errors.ErrGit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := extesting.NewFakeRunner().On("git config --global --get user.email", tt.resp)
			c := New(runner, logger.Noop())

			got, err := c.Get("user.email")
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnsureExportLine(t *testing.T) {
	tests := []struct {
		name        string
		existing    *string
		wantChanged bool
		want        string
	}{
		{
			name:        "missing file is created",
			wantChanged: true,
			want:        exportLine + "\n",
		},
		{
			name:        "appends after existing content",
			existing:    strPtr("alias ll='ls -l'\n"),
			wantChanged: true,
			want:        "alias ll='ls -l'\n" + exportLine + "\n",
		},
		{
			name:        "adds newline when file lacks one",
			existing:    strPtr("alias ll='ls -l'"),
			wantChanged: true,
			want:        "alias ll='ls -l'\n" + exportLine + "\n",
		},
		{
			name:        "already present",
			existing:    strPtr("# gpg\n  " + exportLine + "\nalias x=y\n"),
			wantChanged: false,
			want:        "# gpg\n  " + exportLine + "\nalias x=y\n",
		},
		{
			name:        "commented out line does not count",
			existing:    strPtr("# " + exportLine + "\n"),
			wantChanged: true,
			want:        "# " + exportLine + "\n" + exportLine + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := filepath.Join(t.TempDir(), ".bashrc")
			if tt.existing != nil {
				require.NoError(t, os.WriteFile(rc, []byte(*tt.existing), 0644))
			}

			changed, err := EnsureExportLine(rc, exportLine)

			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			data, err := os.ReadFile(rc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEnsureExportLine_Idempotent(t *testing.T) {
	rc := filepath.Join(t.TempDir(), ".bashrc")

	for i := 0; i < 3; i++ {
		_, err := EnsureExportLine(rc, exportLine)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(rc)
	require.NoError(t, err)
	assert.Equal(t, exportLine+"\n", string(data))
}

func TestHasExportLine(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, ".bashrc")

	has, err := HasExportLine(rc, exportLine)
	require.NoError(t, err)
	assert.False(t, has, "missing file")

	require.NoError(t, os.WriteFile(rc, []byte("alias ll='ls -l'\n  "+exportLine+"\n"), 0644))
	has, err = HasExportLine(rc, exportLine)
	require.NoError(t, err)
	assert.True(t, has)
}

func strPtr(s string) *string { return &s }
