package sshkey

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// HostsUsingKey lists ~/.ssh/config host aliases whose IdentityFile is the managed key.
func (m *Manager) HostsUsingKey() ([]string, error) {
	return HostsUsingKey(m.paths.SSHConfig, m.paths.SSHKey, m.paths.Home)
}

// HostsUsingKey parses configPath and returns the concrete aliases (no wildcards)
// whose IdentityFile resolves to keyPath. A missing config file yields no hosts.
func HostsUsingKey(configPath, keyPath, home string) ([]string, error) {
	content, err := preprocessSSHConfig(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	want := filepath.Clean(keyPath)
	var hosts []string
	seen := make(map[string]bool)

	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()

			if strings.ContainsAny(alias, "*?!") || seen[alias] {
				continue
			}
			seen[alias] = true

			identity, _ := cfg.Get(alias, "IdentityFile")
			if identity == "" {
				continue
			}
			if filepath.Clean(expandHome(identity, home)) == want {
				hosts = append(hosts, alias)
			}
		}
	}

	sort.Strings(hosts)
	return hosts, nil
}

// preprocessSSHConfig drops everything from the first Match directive on;
// ssh_config cannot parse Match blocks.
func preprocessSSHConfig(configPath string) ([]byte, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	for _, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "match ") {
			break
		}
		result = append(result, line)
	}
	return []byte(strings.Join(result, "\n")), nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
