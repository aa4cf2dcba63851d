package clipboard

import (
	"context"
	"errors"
	"io"
	"testing"

	"go-seaport/environment"
)

func TestForOS(t *testing.T) {
	tests := []struct {
		goos    string
		command string
		args    int
	}{
		{"darwin", "pbcopy", 0},
		{"linux", "xclip", 2},
	}
	for _, tt := range tests {
		c := ForOS(tt.goos, nil, nil)
		if c.Command != tt.command || len(c.Args) != tt.args {
			t.Errorf("ForOS(%q) = %s %v", tt.goos, c.Command, c.Args)
		}
	}
}

func TestCopy(t *testing.T) {
	var got string
	mock := environment.NewMockEnvironment()
	mock.On("pbcopy", environment.MockResponse{Do: func(cmd *environment.ExecCommand) {
		data, _ := io.ReadAll(cmd.Stdin)
		got = string(data)
	}})

	c := ForOS("darwin", mock, nil)
	if err := c.Copy(context.Background(), "version 0.2\n"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got != "version 0.2\n" {
		t.Errorf("clipboard received %q", got)
	}
}

func TestCopy_Failure(t *testing.T) {
	mock := environment.NewMockEnvironment()
	mock.On("xclip", environment.MockResponse{ExitCode: 1})

	c := ForOS("linux", mock, nil)
	err := c.Copy(context.Background(), "x")
	var execErr *environment.ErrExecutionFailed
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ErrExecutionFailed", err)
	}
}
