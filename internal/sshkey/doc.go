// Package sshkey manages the single SSH keypair devboot sets up.
//
// The key always lives at ~/.ssh/id_rsa and is generated with ssh-keygen
// as a 4096-bit RSA key without a passphrase:
//
//	info, err := m.Generate("alice@example.com")
//
// After generation or restore the permission policy is reapplied (0700 on
// ~/.ssh, 0600 on the private key, 0644 on the public key) and the key is
// handed to ssh-agent via ssh-add. If no agent is reachable, one is started
// with ssh-agent -s and its variables are exported into the process.
//
// # Backups
//
// Backup copies id_rsa and id_rsa.pub into the home directory. Restore moves
// them back. Both are no-ops with an advisory error when there is nothing to
// copy, so the menu can keep going.
//
// The package never logs or displays private key contents.
package sshkey
