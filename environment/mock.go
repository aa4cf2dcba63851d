package environment

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"go-seaport/config"
)

// MockResponse is the scripted outcome of a mocked command.
type MockResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error

	// Do runs before output is written; useful to emulate side effects
	// such as a cp writing a file.
	Do func(cmd *ExecCommand)
}

// MockEnvironment is a test implementation of Environment.
//
// It records every command and answers from responses registered with On,
// matched on the full command line (see ExecCommand.String) first and then
// on the longest registered prefix. Unmatched commands succeed silently.
//
// Usage example:
//
//	mock := NewMockEnvironment()
//	mock.On("port info --index gping", MockResponse{Stdout: "gping @1.0 (net)\n"})
//
//	out, _ := Output(ctx, mock, cmd)
//	if mock.GetExecuteCallCount() != 1 {
//	    t.Error("Execute not called")
//	}
type MockEnvironment struct {
	mu sync.Mutex

	ExecuteCalls []*ExecCommand
	responses    map[string][]MockResponse
}

// NewMockEnvironment creates an empty mock.
func NewMockEnvironment() *MockEnvironment {
	return &MockEnvironment{responses: make(map[string][]MockResponse)}
}

func init() {
	Register("mock", func(*config.Config) Environment { return NewMockEnvironment() })
}

// On scripts the response for a command line. Registering the same line
// several times queues the responses; the last one repeats.
func (m *MockEnvironment) On(line string, resp MockResponse) *MockEnvironment {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[line] = append(m.responses[line], resp)
	return m
}

func (m *MockEnvironment) lookup(line string) (MockResponse, bool) {
	key := ""
	if _, ok := m.responses[line]; ok {
		key = line
	} else {
		prefixes := make([]string, 0, len(m.responses))
		for k := range m.responses {
			if strings.HasPrefix(line, k) {
				prefixes = append(prefixes, k)
			}
		}
		if len(prefixes) == 0 {
			return MockResponse{}, false
		}
		sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
		key = prefixes[0]
	}

	queue := m.responses[key]
	resp := queue[0]
	if len(queue) > 1 {
		m.responses[key] = queue[1:]
	}
	return resp, true
}

// Execute records the call and replays the scripted response.
func (m *MockEnvironment) Execute(ctx context.Context, cmd *ExecCommand) (*ExecResult, error) {
	m.mu.Lock()
	m.ExecuteCalls = append(m.ExecuteCalls, cmd)
	resp, _ := m.lookup(cmd.String())
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return &ExecResult{ExitCode: -1}, ctx.Err()
	default:
	}

	if resp.Do != nil {
		resp.Do(cmd)
	}
	if cmd.Stdout != nil && resp.Stdout != "" {
		io.WriteString(cmd.Stdout, resp.Stdout)
	}
	if cmd.Stderr != nil && resp.Stderr != "" {
		io.WriteString(cmd.Stderr, resp.Stderr)
	}
	if resp.Err != nil {
		return &ExecResult{ExitCode: -1, Error: resp.Err},
			&ErrExecutionFailed{Op: "start", Command: cmd.String(), Err: resp.Err}
	}
	return &ExecResult{ExitCode: resp.ExitCode}, nil
}

// GetExecuteCallCount returns the number of times Execute was called.
func (m *MockEnvironment) GetExecuteCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ExecuteCalls)
}

// CommandLines returns every executed command line in order.
func (m *MockEnvironment) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.ExecuteCalls))
	for i, c := range m.ExecuteCalls {
		lines[i] = c.String()
	}
	return lines
}

// Ran reports whether a command line with the given prefix was executed.
func (m *MockEnvironment) Ran(prefix string) bool {
	for _, line := range m.CommandLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Reset clears recorded calls and scripted responses.
func (m *MockEnvironment) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExecuteCalls = nil
	m.responses = make(map[string][]MockResponse)
}
