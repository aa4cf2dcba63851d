package environment

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMockEnvironment_Interface(t *testing.T) {
	var _ Environment = (*MockEnvironment)(nil)
}

func TestMockEnvironment_ExactAndPrefix(t *testing.T) {
	mock := NewMockEnvironment()
	mock.On("port info", MockResponse{Stdout: "generic"})
	mock.On("port info --index gping", MockResponse{Stdout: "exact"})
	ctx := context.Background()

	out, _ := Output(ctx, mock, &ExecCommand{Command: "port", Args: []string{"info", "--index", "gping"}})
	if out != "exact" {
		t.Errorf("exact match = %q, want exact", out)
	}
	out, _ = Output(ctx, mock, &ExecCommand{Command: "port", Args: []string{"info", "--version", "gping"}})
	if out != "generic" {
		t.Errorf("prefix match = %q, want generic", out)
	}
	out, err := Output(ctx, mock, &ExecCommand{Command: "git", Args: []string{"status"}})
	if out != "" || err != nil {
		t.Errorf("unmatched command = (%q, %v), want silent success", out, err)
	}
}

func TestMockEnvironment_QueuedResponses(t *testing.T) {
	mock := NewMockEnvironment()
	mock.On("port livecheck gping", MockResponse{Stdout: "first"})
	mock.On("port livecheck gping", MockResponse{Stdout: "second"})
	ctx := context.Background()
	cmd := &ExecCommand{Command: "port", Args: []string{"livecheck", "gping"}}

	for _, want := range []string{"first", "second", "second"} {
		out, _ := Output(ctx, mock, cmd)
		if out != want {
			t.Errorf("Output = %q, want %q", out, want)
		}
	}
	if mock.GetExecuteCallCount() != 3 {
		t.Errorf("GetExecuteCallCount() = %d, want 3", mock.GetExecuteCallCount())
	}
}

func TestMockEnvironment_SideEffectAndError(t *testing.T) {
	mock := NewMockEnvironment()
	called := false
	mock.On("sudo cp", MockResponse{Do: func(*ExecCommand) { called = true }})
	mock.On("gh", MockResponse{Err: errors.New("gh not installed")})
	ctx := context.Background()

	if err := Run(ctx, mock, &ExecCommand{Command: "cp", Args: []string{"a", "b"}, Sudo: true}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !called {
		t.Error("Do hook not invoked")
	}
	if !mock.Ran("sudo cp a b") {
		t.Errorf("Ran() missed sudo cp, lines = %v", mock.CommandLines())
	}

	err := Run(ctx, mock, &ExecCommand{Command: "gh", Args: []string{"pr", "create"}})
	var execErr *ErrExecutionFailed
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ErrExecutionFailed", err)
	}
}

func TestMockEnvironment_Cancelled(t *testing.T) {
	mock := NewMockEnvironment()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := mock.Execute(ctx, &ExecCommand{Command: "port"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", result.ExitCode)
	}
}

func TestMockEnvironment_Concurrent(t *testing.T) {
	mock := NewMockEnvironment()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mock.Execute(context.Background(), &ExecCommand{Command: "true"})
		}()
	}
	wg.Wait()
	if mock.GetExecuteCallCount() != 20 {
		t.Errorf("GetExecuteCallCount() = %d, want 20", mock.GetExecuteCallCount())
	}

	mock.Reset()
	if mock.GetExecuteCallCount() != 0 {
		t.Error("Reset() did not clear calls")
	}
}
