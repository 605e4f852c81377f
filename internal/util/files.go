package util

import (
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/facebookgo/atomicfile"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// WriteFileAtomic writes data to path through a temp file and rename,
// so a failed write never leaves a truncated key or backup behind.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	f, err := atomicfile.New(path, mode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Abort()
		return err
	}
	return f.Close()
}

// CopyFile copies src to dst atomically, keeping src's permission bits.
// Returns the number of bytes copied.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := atomicfile.New(dst, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Abort()
		return n, err
	}
	return n, out.Close()
}

// MoveFile renames src to dst, falling back to copy+remove across filesystems
// (e.g. shared storage mounted separately from the app's home).
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}

	if _, err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
