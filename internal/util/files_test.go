package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
	assert.False(t, FileExists(dir), "directories are not files")
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.asc")

	require.NoError(t, WriteFileAtomic(path, []byte("secret"), 0600))
	require.NoError(t, WriteFileAtomic(path, []byte("replaced"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCopyFile_PreservesContentAndMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "id_rsa")
	dst := filepath.Join(dir, "backup")
	require.NoError(t, os.WriteFile(src, []byte("key material"), 0600))

	n, err := CopyFile(src, dst)

	require.NoError(t, err)
	assert.Equal(t, int64(len("key material")), n)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "key material", string(data))
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.True(t, FileExists(src), "copy keeps the source")
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
	assert.False(t, FileExists(filepath.Join(dir, "dst")))
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "sub", "b")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0700))
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

	require.NoError(t, MoveFile(src, dst))

	assert.False(t, FileExists(src))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMoveFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := MoveFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}
