package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhaseDisplayRenderStart(t *testing.T) {
	var buf bytes.Buffer
	NewPhaseDisplay(&buf).RenderStart("Updating packages")

	assert.Equal(t, SymbolProgress+" Updating packages\n", buf.String())
}

func TestPhaseDisplayRenderSuccess(t *testing.T) {
	var buf bytes.Buffer
	NewPhaseDisplay(&buf).RenderSuccess("Packages installed", 300*time.Millisecond)

	output := buf.String()
	assert.Contains(t, output, SymbolComplete)
	assert.Contains(t, output, "Packages installed")
	assert.Contains(t, output, "0.3s")
}

func TestPhaseDisplayRenderFailed(t *testing.T) {
	var buf bytes.Buffer
	NewPhaseDisplay(&buf).RenderFailed("Package install failed", 2300*time.Millisecond)

	output := buf.String()
	assert.Contains(t, output, SymbolFail)
	assert.Contains(t, output, "2.3s")
}

func TestPhaseDisplayRenderSkipped(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		want   string
	}{
		{"with reason", "kept existing key", SymbolSkipped + " SSH key (kept existing key)\n"},
		{"without reason", "", SymbolSkipped + " SSH key\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPhaseDisplay(&buf).RenderSkipped("SSH key", tt.reason)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPhaseDisplayRenderSubStatus(t *testing.T) {
	var buf bytes.Buffer
	NewPhaseDisplay(&buf).RenderSubStatus(SymbolPending, "fingerprint", "SHA256:abc")

	assert.Equal(t, "  "+SymbolPending+" fingerprint SHA256:abc\n", buf.String())
}

func TestPhaseDisplayDividers(t *testing.T) {
	var buf bytes.Buffer
	pd := NewPhaseDisplay(&buf)

	pd.Divider()
	assert.Contains(t, buf.String(), strings.Repeat("━", DividerWidth))

	buf.Reset()
	pd.ThinDivider()
	assert.Contains(t, buf.String(), strings.Repeat("─", DividerWidth))
}

func TestPhaseDisplayCommandPrompt(t *testing.T) {
	var buf bytes.Buffer
	NewPhaseDisplay(&buf).CommandPrompt("gpg --list-secret-keys")

	assert.Equal(t, "$ gpg --list-secret-keys\n", buf.String())
}

func TestPhaseDisplaySpinnerSharesWriter(t *testing.T) {
	var buf bytes.Buffer
	pd := NewPhaseDisplay(&buf)

	s := pd.Spinner("Generating SSH key")
	s.Start()
	s.Success()

	assert.Contains(t, buf.String(), "Generating SSH key")
	assert.Same(t, &buf, pd.Writer())
}

func TestFormatPhase(t *testing.T) {
	assert.Equal(t, SymbolComplete+" Done", FormatPhase(SymbolComplete, ColorSuccess, "Done", ""))
	assert.Equal(t, SymbolComplete+" Done 1.0s", FormatPhase(SymbolComplete, ColorSuccess, "Done", "1.0s"))
}
