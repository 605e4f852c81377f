// Package testing provides SSH key fixtures for tests that drive ssh-keygen
// through a fake runner.
package testing

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"os"
	"strings"
	"testing"

	extesting "github.com/rileyhilliard/devboot/internal/exec/testing"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// KeyPair returns PEM private key bytes and an authorized_keys line.
// 2048 bits keeps the tests quick; the policy size is only passed to ssh-keygen.
func KeyPair(t *testing.T, comment string) ([]byte, []byte) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block, err := ssh.MarshalPrivateKey(priv, comment)
	require.NoError(t, err)

	pub, err := ssh.NewPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub))) + " " + comment + "\n"

	return pem.EncodeToMemory(block), []byte(line)
}

// WriteKeyPair writes a fresh keypair to path and path.pub.
func WriteKeyPair(t *testing.T, path, comment string) {
	t.Helper()
	priv, pub := KeyPair(t, comment)
	require.NoError(t, os.WriteFile(path, priv, 0600))
	require.NoError(t, os.WriteFile(path+".pub", pub, 0644))
}

// Keygen is a fake ssh-keygen: it writes a real keypair wherever -f points,
// commented with the -C argument.
func Keygen(t *testing.T) extesting.Response {
	return extesting.Response{Fn: func(c extesting.Call) ([]byte, error) {
		var path, comment string
		for i := 0; i < len(c.Args)-1; i++ {
			switch c.Args[i] {
			case "-f":
				path = c.Args[i+1]
			case "-C":
				comment = c.Args[i+1]
			}
		}
		require.NotEmpty(t, path, "ssh-keygen called without -f")

		WriteKeyPair(t, path, comment)
		return []byte("Your identification has been saved"), nil
	}}
}
