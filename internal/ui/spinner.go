package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// SpinnerState represents the current state of a spinner.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerFailed
	SpinnerSkipped
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// Spinner displays an animated status indicator with a label.
// It must be stopped before an interactive command takes over the terminal.
type Spinner struct {
	mu           sync.Mutex
	label        string
	state        SpinnerState
	frame        int
	startTime    time.Time
	stopChan     chan struct{}
	doneChan     chan struct{}
	w            io.Writer
	animated     bool
	running      bool
	lastRendered string
}

// NewSpinner creates a spinner writing to w. Animation only runs when w is
// a terminal; otherwise just the final status line is written.
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		label:    label,
		state:    SpinnerPending,
		w:        w,
		animated: isTerminal(w),
	}
}

// SetAnimated forces animation on or off.
func (s *Spinner) SetAnimated(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animated = on
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.state = SpinnerInProgress
	s.startTime = time.Now()
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	animated := s.animated
	s.mu.Unlock()

	if !animated {
		close(s.doneChan)
		return
	}

	s.render()
	go s.animate()
}

// Stop halts the spinner animation without changing state.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	<-s.doneChan
}

// Success stops the spinner and marks it as successful.
func (s *Spinner) Success() {
	s.finish(SpinnerSuccess)
}

// Fail stops the spinner and marks it as failed.
func (s *Spinner) Fail() {
	s.finish(SpinnerFailed)
}

// Skip stops the spinner and marks it as skipped.
func (s *Spinner) Skip() {
	s.finish(SpinnerSkipped)
}

func (s *Spinner) finish(state SpinnerState) {
	s.Stop()
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.renderFinal()
}

// Run shows the spinner while fn runs and finishes it according to fn's
// result: success, skipped for advisory errors, failed otherwise.
func (s *Spinner) Run(fn func() error, advisory func(error) bool) error {
	s.Start()
	err := fn()
	switch {
	case err == nil:
		s.Success()
	case advisory != nil && advisory(err):
		s.Skip()
	default:
		s.Fail()
	}
	return err
}

// State returns the current spinner state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elapsed returns the time since the spinner started.
func (s *Spinner) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Label returns the spinner's label.
func (s *Spinner) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// SetLabel updates the spinner's label.
func (s *Spinner) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.mu.Unlock()
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbol := spinnerFrames[s.frame]
	colorIndex := s.frame % len(GradientColors)
	style := lipgloss.NewStyle().Foreground(GradientColors[colorIndex])

	line := fmt.Sprintf("\r%s %s...", style.Render(symbol), s.label)
	s.clear()
	fmt.Fprint(s.w, line)
	s.lastRendered = line
}

func (s *Spinner) renderFinal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var symbol string
	var style lipgloss.Style

	switch s.state {
	case SpinnerSuccess:
		symbol = SymbolComplete
		style = lipgloss.NewStyle().Foreground(ColorSuccess)
	case SpinnerFailed:
		symbol = SymbolFail
		style = lipgloss.NewStyle().Foreground(ColorError)
	case SpinnerSkipped:
		symbol = SymbolSkipped
		style = lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		symbol = SymbolPending
		style = lipgloss.NewStyle().Foreground(ColorMuted)
	}

	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	s.clear()
	fmt.Fprintf(s.w, "%s %s %s\n",
		style.Render(symbol),
		s.label,
		timingStyle.Render(formatDuration(time.Since(s.startTime))),
	)
	s.lastRendered = ""
}

// clear blanks the previously rendered frame. Callers hold s.mu.
func (s *Spinner) clear() {
	if s.lastRendered == "" {
		return
	}
	n := len([]rune(s.lastRendered))
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", n)+"\r")
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
