package logger

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		verbose   bool
		expectLog bool
	}{
		{
			name:      "logs when DEVBOOT_DEBUG is set",
			envValue:  "1",
			expectLog: true,
		},
		{
			name:      "logs when verbose is on",
			verbose:   true,
			expectLog: true,
		},
		{
			name:      "silent by default",
			expectLog: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.envValue)
			SetVerbose(tt.verbose)
			defer SetVerbose(false)

			l := NewEnvLogger("[test]")
			l.Debug("test message %s", "arg")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] test message arg")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	buf := captureLog(t)

	l := NewEnvLogger("[gpg]")
	l.Info("imported %d files", 3)
	l.Warn("no backup found")
	l.Error("export failed")

	out := buf.String()
	assert.Contains(t, out, "[gpg] imported 3 files")
	assert.Contains(t, out, "[gpg] WARN: no backup found")
	assert.Contains(t, out, "[gpg] ERROR: export failed")
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Debug("d %d", 1)
	l.Warn("w")

	require.Len(t, l.Messages, 2)
	assert.Equal(t, LogMessage{Level: "debug", Message: "d 1"}, l.Messages[0])
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("hello")

	assert.True(t, buf.HasLevel("info"))
}

func TestNoop(t *testing.T) {
	l := Noop()
	// Must not panic
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}
