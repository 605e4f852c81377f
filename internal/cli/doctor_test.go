package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	extesting "github.com/rileyhilliard/devboot/internal/exec/testing"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorCommand_FreshInstall(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := paths.New(home, t.TempDir())
	var out bytes.Buffer

	err := doctorCommand(doctorOptions{
		Out:    &out,
		Runner: extesting.NewFakeRunner(),
		Paths:  &p,
		Lookup: func(name string) (string, error) {
			if name == "gpg" {
				return "", stderrors.New("not found")
			}
			return "/data/data/com.termux/files/usr/bin/" + name, nil
		},
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "devboot diagnostic report\n\nTOOLS\n")
	assert.Contains(t, got, "  ● git (/data/data/com.termux/files/usr/bin/git)\n")
	assert.Contains(t, got, "  ✗ gpg not found\n    Provided by the gnupg package\n")
	assert.Contains(t, got, "  ✗ No SSH key at "+p.SSHKey+"\n")
	assert.Contains(t, got, "  ⊘ No SSH key backup in the home directory\n")
	assert.Contains(t, got, "Run devboot and choose:\n  1  Backup SSH key\n  4  Restore GPG key and git signing\n  5  Update and install packages\n  6  Full setup\n")
}

func TestDoctorCommand_BrokenConfigStillRuns(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := paths.New(home, t.TempDir())
	var out bytes.Buffer

	err := doctorCommand(doctorOptions{
		ConfigPath: p.Home + "/missing.yaml",
		Out:        &out,
		Runner:     extesting.NewFakeRunner(),
		Paths:      &p,
		Lookup:     func(name string) (string, error) { return "/usr/bin/" + name, nil },
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "CONFIG\n  ✗ Specified config file not found: "+p.Home+"/missing.yaml\n")
	assert.Contains(t, out.String(), "  ● pkg (/usr/bin/pkg)\n")
}
