package sshkey

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/exec"
	"github.com/rileyhilliard/devboot/internal/logger"
	"github.com/rileyhilliard/devboot/internal/paths"
	"github.com/rileyhilliard/devboot/internal/util"
	"golang.org/x/crypto/ssh"
)

// Key generation policy: RSA 4096 with an empty passphrase.
const (
	KeyType = "rsa"
	KeyBits = 4096
)

// Permission policy applied after generate and restore.
const (
	DirMode     os.FileMode = 0700
	PrivateMode os.FileMode = 0600
	PublicMode  os.FileMode = 0644
)

// KeyInfo contains information about the managed SSH key.
type KeyInfo struct {
	Path        string // Full path to private key
	PublicPath  string // Path to public key
	Type        string // ssh-rsa, ssh-ed25519, ...
	Bits        int    // Modulus size for RSA keys, 0 otherwise
	Fingerprint string // SHA256:...
	Comment     string
}

// BackupFile describes one file written by Backup or Restore.
type BackupFile struct {
	From string
	To   string
	Size int64
}

// String renders "from -> to (size)".
func (f BackupFile) String() string {
	return fmt.Sprintf("%s -> %s (%s)", f.From, f.To, humanize.Bytes(uint64(f.Size)))
}

// Manager owns the single SSH keypair at ~/.ssh/id_rsa.
type Manager struct {
	runner exec.Runner
	paths  paths.Paths
	log    logger.Logger
	agent  *Agent
}

// New creates a key manager.
func New(runner exec.Runner, p paths.Paths, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Noop()
	}
	return &Manager{
		runner: runner,
		paths:  p,
		log:    log,
		agent:  NewAgent(runner, log),
	}
}

// Agent exposes the agent used for registration.
func (m *Manager) Agent() *Agent {
	return m.agent
}

// Exists returns true if the private key is present.
func (m *Manager) Exists() bool {
	return util.FileExists(m.paths.SSHKey)
}

// stagingSuffix names the keypair ssh-keygen writes before it replaces
// the live one.
const stagingSuffix = ".devboot-new"

// Generate creates a new keypair, replacing any existing one.
// Callers ask the user before calling this when Exists() is true.
// ssh-keygen writes next to the live key; the pair is only swapped in once
// it parses, so a failed run leaves the old key untouched.
// The new key is registered with the agent before returning.
func (m *Manager) Generate(comment string) (*KeyInfo, error) {
	if err := os.MkdirAll(m.paths.SSHDir, DirMode); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Failed to create SSH directory: %s", m.paths.SSHDir),
			"Check permissions on home directory")
	}

	stageKey := m.paths.SSHKey + stagingSuffix
	stagePub := stageKey + ".pub"
	// Leftovers from an interrupted run would make ssh-keygen prompt.
	if err := removeFiles(stageKey, stagePub); err != nil {
		return nil, err
	}
	defer func() { _ = removeFiles(stageKey, stagePub) }()

	args := []string{
		"-t", KeyType,
		"-b", fmt.Sprintf("%d", KeyBits),
		"-N", "",
		"-C", comment,
		"-f", stageKey,
	}
	if _, err := m.runner.Output("ssh-keygen", args...); err != nil {
		if nf := exec.NotInstalled(err, "openssh"); nf != nil {
			return nil, nf
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to generate SSH key",
			"Ensure ssh-keygen is installed: pkg install openssh")
	}

	if !util.FileExists(stageKey) {
		return nil, errors.New(errors.ErrSSH,
			"Key generation completed but key file not found",
			"Check disk space and permissions")
	}

	if _, err := inspectPublic(stagePub); err != nil {
		return nil, err
	}

	for _, pair := range [][2]string{{stageKey, m.paths.SSHKey}, {stagePub, m.paths.SSHPub}} {
		if err := os.Rename(pair[0], pair[1]); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("Failed to replace %s", pair[1]),
				fmt.Sprintf("Move it manually: mv %s %s", pair[0], pair[1]))
		}
	}

	info, err := m.Inspect()
	if err != nil {
		return nil, err
	}

	if err := m.ApplyPermissions(); err != nil {
		return nil, err
	}

	if err := m.agent.Add(m.paths.SSHKey); err != nil {
		return nil, err
	}

	m.log.Debug("generated %s %d-bit key %s", info.Type, info.Bits, info.Fingerprint)
	return info, nil
}

func removeFiles(files ...string) error {
	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("Failed to remove %s", path),
				"Delete it manually and try again")
		}
	}
	return nil
}

// Inspect parses the public key and returns its details.
func (m *Manager) Inspect() (*KeyInfo, error) {
	info, err := inspectPublic(m.paths.SSHPub)
	if err != nil {
		return nil, err
	}
	info.Path = m.paths.SSHKey
	return info, nil
}

func inspectPublic(pubPath string) (*KeyInfo, error) {
	data, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Failed to read public key: %s", pubPath),
			"Check that the file exists and is readable")
	}

	pub, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Public key is not valid: %s", pubPath),
			"Regenerate the key")
	}

	info := &KeyInfo{
		PublicPath:  pubPath,
		Type:        pub.Type(),
		Fingerprint: ssh.FingerprintSHA256(pub),
		Comment:     comment,
	}
	if cpk, ok := pub.(ssh.CryptoPublicKey); ok {
		if rsaKey, ok := cpk.CryptoPublicKey().(*rsa.PublicKey); ok {
			info.Bits = rsaKey.N.BitLen()
		}
	}
	return info, nil
}

// ApplyPermissions enforces 700 on ~/.ssh, 600 on the private key, 644 on the public key.
func (m *Manager) ApplyPermissions() error {
	targets := []struct {
		path     string
		mode     os.FileMode
		optional bool
	}{
		{m.paths.SSHDir, DirMode, false},
		{m.paths.SSHKey, PrivateMode, false},
		{m.paths.SSHPub, PublicMode, true},
	}

	for _, target := range targets {
		if err := os.Chmod(target.path, target.mode); err != nil {
			if target.optional && os.IsNotExist(err) {
				continue
			}
			return errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("Failed to set permissions on %s", target.path),
				fmt.Sprintf("Run: chmod %o %s", target.mode, target.path))
		}
	}
	return nil
}

// PublicKey returns the trimmed public key text.
func (m *Manager) PublicKey() (string, error) {
	data, err := os.ReadFile(m.paths.SSHPub)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Failed to read public key: %s", m.paths.SSHPub),
			"Check that the file exists and is readable")
	}
	return strings.TrimSpace(string(data)), nil
}

// Backup copies the keypair into the home directory.
// A missing private key is advisory: nothing is written.
func (m *Manager) Backup() ([]BackupFile, error) {
	if !m.Exists() {
		return nil, errors.Advise(errors.ErrSSH,
			fmt.Sprintf("No SSH key at %s, nothing to back up", m.paths.SSHKey),
			"Generate one first with the full setup")
	}

	pairs := [][2]string{
		{m.paths.SSHKey, m.paths.SSHBackupKey},
		{m.paths.SSHPub, m.paths.SSHBackupPub},
	}

	var written []BackupFile
	for _, pair := range pairs {
		from, to := pair[0], pair[1]
		if !util.FileExists(from) {
			m.log.Warn("%s is missing, skipping", from)
			continue
		}
		n, err := util.CopyFile(from, to)
		if err != nil {
			return written, errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("Failed to back up %s", from),
				"Check free space and permissions in your home directory")
		}
		written = append(written, BackupFile{From: from, To: to, Size: n})
	}
	return written, nil
}

// Restore moves the backup files into ~/.ssh, fixes permissions, and
// registers the key with the agent. A missing backup is advisory.
func (m *Manager) Restore() ([]BackupFile, error) {
	if !util.FileExists(m.paths.SSHBackupKey) {
		return nil, errors.Advise(errors.ErrSSH,
			fmt.Sprintf("No SSH backup at %s, nothing to restore", m.paths.SSHBackupKey),
			"Copy your id_rsa and id_rsa.pub into the home directory first")
	}

	if err := checkPrivateKey(m.paths.SSHBackupKey); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.paths.SSHDir, DirMode); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Failed to create SSH directory: %s", m.paths.SSHDir),
			"Check permissions on home directory")
	}

	pairs := [][2]string{
		{m.paths.SSHBackupKey, m.paths.SSHKey},
		{m.paths.SSHBackupPub, m.paths.SSHPub},
	}

	var moved []BackupFile
	for _, pair := range pairs {
		from, to := pair[0], pair[1]
		info, err := os.Stat(from)
		if err != nil {
			m.log.Warn("%s is missing, skipping", from)
			continue
		}
		if err := util.MoveFile(from, to); err != nil {
			return moved, errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("Failed to restore %s", from),
				fmt.Sprintf("Move it manually: mv %s %s", from, to))
		}
		moved = append(moved, BackupFile{From: from, To: to, Size: info.Size()})
	}

	if err := m.ApplyPermissions(); err != nil {
		return moved, err
	}

	if err := m.agent.Add(m.paths.SSHKey); err != nil {
		return moved, err
	}
	return moved, nil
}

// checkPrivateKey makes sure a backup really is a private key before it
// replaces anything. Passphrase-protected keys pass: ssh-add will ask.
func checkPrivateKey(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Failed to read backup key: %s", path),
			"Check that the file is readable")
	}

	if _, err := ssh.ParseRawPrivateKey(data); err != nil {
		if _, ok := err.(*ssh.PassphraseMissingError); ok {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("%s is not a usable SSH private key", path),
			"Make sure you backed up the private key (id_rsa), not the .pub file")
	}
	return nil
}
