// Package testing provides test doubles for the exec package.
package testing

import (
	"strings"
	"sync"

	"github.com/rileyhilliard/devboot/internal/exec"
)

// Call is one recorded invocation.
type Call struct {
	Name        string
	Args        []string
	Interactive bool // true for Run, false for Output
}

// String renders the call the same way exec.CommandLine does.
func (c Call) String() string {
	return exec.CommandLine(c.Name, c.Args...)
}

// Response scripts what a matched command returns.
// Fn, when set, wins over Output/Err and can inspect the call
// (e.g. to write the files ssh-keygen would have produced).
type Response struct {
	Output []byte
	Err    error
	Fn     func(call Call) ([]byte, error)
}

// FakeRunner records commands and answers them from scripted responses.
// Responses are matched by the longest registered prefix of the command line.
// Unmatched commands succeed with no output.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response

	// Calls holds every invocation in order, for assertions.
	Calls []Call
}

// NewFakeRunner creates an empty fake runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]Response),
	}
}

// On registers a response for commands whose line starts with prefix.
func (f *FakeRunner) On(prefix string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = resp
	return f
}

// Run implements exec.Runner.
func (f *FakeRunner) Run(name string, args ...string) error {
	_, err := f.invoke(Call{Name: name, Args: args, Interactive: true})
	return err
}

// Output implements exec.Runner.
func (f *FakeRunner) Output(name string, args ...string) ([]byte, error) {
	return f.invoke(Call{Name: name, Args: args})
}

func (f *FakeRunner) invoke(call Call) ([]byte, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	resp, ok := f.match(call.String())
	f.mu.Unlock()

	if !ok {
		return nil, nil
	}
	if resp.Fn != nil {
		return resp.Fn(call)
	}
	return resp.Output, resp.Err
}

func (f *FakeRunner) match(line string) (Response, bool) {
	best := ""
	found := false
	for prefix := range f.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) >= len(best) {
			best = prefix
			found = true
		}
	}
	return f.responses[best], found
}

// Lines returns every recorded command line in order.
func (f *FakeRunner) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// CallCount returns how many recorded commands start with prefix.
func (f *FakeRunner) CallCount(prefix string) int {
	count := 0
	for _, line := range f.Lines() {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}
	return count
}

// Called reports whether any recorded command starts with prefix.
func (f *FakeRunner) Called(prefix string) bool {
	return f.CallCount(prefix) > 0
}

// Reset clears recorded calls, keeping scripted responses.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}

var _ exec.Runner = (*FakeRunner)(nil)
