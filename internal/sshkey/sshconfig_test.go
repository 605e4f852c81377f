package sshkey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostsUsingKey(t *testing.T) {
	home := "/data/home"

	tests := []struct {
		name   string
		config string
		want   []string
	}{
		{
			name: "tilde and absolute paths both match",
			config: `Host github.com
  User git
  IdentityFile ~/.ssh/id_rsa

Host gitlab
  HostName gitlab.com
  IdentityFile /data/home/.ssh/id_rsa

Host work
  IdentityFile ~/.ssh/id_ed25519_work
`,
			want: []string{"github.com", "gitlab"},
		},
		{
			name: "wildcards skipped",
			config: `Host *.internal
  IdentityFile ~/.ssh/id_rsa
`,
			want: nil,
		},
		{
			name: "match blocks ignored",
			config: `Host codeberg.org
  IdentityFile ~/.ssh/id_rsa

Match host foo exec "true"
  IdentityFile ~/.ssh/id_rsa
`,
			want: []string{"codeberg.org"},
		},
		{
			name:   "no identity files",
			config: "Host plain\n  User me\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config")
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0600))

			got, err := HostsUsingKey(path, filepath.Join(home, ".ssh", "id_rsa"), home)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHostsUsingKey_MissingConfig(t *testing.T) {
	got, err := HostsUsingKey(filepath.Join(t.TempDir(), "config"), "/h/.ssh/id_rsa", "/h")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestManagerHostsUsingKey(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.paths.SSHDir, 0700))
	require.NoError(t, os.WriteFile(f.paths.SSHConfig, []byte("Host github.com\n  IdentityFile ~/.ssh/id_rsa\n"), 0600))

	got, err := f.mgr.HostsUsingKey()

	require.NoError(t, err)
	assert.Equal(t, []string{"github.com"}, got)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h", expandHome("~", "/h"))
	assert.Equal(t, "/h/.ssh/k", expandHome("~/.ssh/k", "/h"))
	assert.Equal(t, "/abs/k", expandHome("/abs/k", "/h"))
}
