// Package environment runs the external programs seaport drives (port,
// sudo, git, gh, sw_vers, pbcopy) behind a small interface so that every
// caller can be exercised against a scripted mock.
//
// Supported backends:
//   - "host": executes on the local machine via os/exec
//   - "mock": records commands and replays scripted output
//
// Usage example:
//
//	env, err := environment.New("host", cfg)
//	if err != nil {
//	    return err
//	}
//
//	out, err := environment.Output(ctx, env, &environment.ExecCommand{
//	    Command: cfg.PortBinary,
//	    Args:    []string{"info", "--index", "gping"},
//	})
package environment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go-seaport/config"
)

// Environment executes commands on behalf of seaport.
//
// Implementations must be safe for concurrent use.
type Environment interface {
	// Execute runs a command.
	//
	// Returns:
	//   - ExecResult with exit code and duration
	//   - error if execution fails (not if command exits non-zero)
	//
	// A command returning exit code 1 is success from Execute's point of
	// view (ExecResult.ExitCode=1, err=nil). Failure to start the command
	// (binary missing, context cancelled) returns err != nil.
	Execute(ctx context.Context, cmd *ExecCommand) (*ExecResult, error)
}

// ExecCommand describes a command to execute.
type ExecCommand struct {
	// Command is the executable, either a path or a name looked up in PATH.
	// Example: "/opt/local/bin/port", "git"
	Command string

	// Args are the command arguments (excluding Command itself).
	Args []string

	// WorkDir is the working directory. If empty, the current directory.
	WorkDir string

	// Env contains extra environment variables, added on top of the
	// parent's environment.
	Env map[string]string

	// Sudo runs the command through the configured sudo binary.
	Sudo bool

	// Stdin feeds standard input. If nil, no input.
	Stdin io.Reader

	// Stdout receives standard output from the command.
	// If nil, output is discarded.
	Stdout io.Writer

	// Stderr receives standard error from the command.
	// If nil, output is discarded.
	Stderr io.Writer

	// Timeout is the maximum execution duration.
	// Zero means no timeout. Context cancellation takes precedence.
	Timeout time.Duration
}

// String renders the command line as a user would type it.
func (c *ExecCommand) String() string {
	parts := make([]string, 0, len(c.Args)+2)
	if c.Sudo {
		parts = append(parts, "sudo")
	}
	parts = append(parts, c.Command)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\n'\"") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// ExecResult contains the result of command execution.
type ExecResult struct {
	// ExitCode is the command's exit code. -1 if it could not be run.
	ExitCode int

	// Duration is how long the command took to execute.
	Duration time.Duration

	// Error is set if command execution failed.
	// This is different from non-zero exit code:
	//   - err != nil: failed to execute command
	//   - err == nil, ExitCode != 0: command ran but returned error
	Error error
}

// NewEnvironmentFunc is a constructor function for Environment implementations.
type NewEnvironmentFunc func(cfg *config.Config) Environment

// Backend registry for environment implementations.
var backends = make(map[string]NewEnvironmentFunc)

// Register registers an environment backend. Called from init().
//
// Panics if name is already registered (programming error).
func Register(name string, fn NewEnvironmentFunc) {
	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("environment backend already registered: %s", name))
	}
	backends[name] = fn
}

// New creates a new Environment instance for the specified backend.
func New(backend string, cfg *config.Config) (Environment, error) {
	fn, ok := backends[backend]
	if !ok {
		return nil, &ErrUnknownBackend{Backend: backend}
	}
	return fn(cfg), nil
}

// Output runs cmd and returns its standard output. A non-zero exit status
// is returned as *ErrExecutionFailed carrying the exit code and stderr.
func Output(ctx context.Context, env Environment, cmd *ExecCommand) (string, error) {
	var stdout, stderr bytes.Buffer
	c := *cmd
	c.Stdout = teeWriter(&stdout, cmd.Stdout)
	c.Stderr = teeWriter(&stderr, cmd.Stderr)

	result, err := env.Execute(ctx, &c)
	if err != nil {
		return stdout.String(), err
	}
	if result.ExitCode != 0 {
		return stdout.String(), &ErrExecutionFailed{
			Op:       "run",
			Command:  cmd.String(),
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      fmt.Errorf("exit status %d", result.ExitCode),
		}
	}
	return stdout.String(), nil
}

// Run executes cmd and treats a non-zero exit status as an error.
func Run(ctx context.Context, env Environment, cmd *ExecCommand) error {
	_, err := Output(ctx, env, cmd)
	return err
}

func teeWriter(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// ErrUnknownBackend is returned when requesting an unregistered backend.
type ErrUnknownBackend struct {
	Backend string
}

func (e *ErrUnknownBackend) Error() string {
	return fmt.Sprintf("unknown environment backend: %s", e.Backend)
}

// ErrExecutionFailed indicates a command could not be run or exited
// non-zero.
type ErrExecutionFailed struct {
	Op       string // Operation: "start", "timeout", "run"
	Command  string // Command line
	ExitCode int    // Exit code (0 if execution failed, >0 if command failed)
	Stderr   string // Captured standard error, when available
	Err      error  // Underlying error
}

func (e *ErrExecutionFailed) Error() string {
	if e.ExitCode > 0 {
		msg := fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
		if e.Stderr != "" {
			msg += ": " + e.Stderr
		}
		return msg
	}
	if e.Op != "" {
		return fmt.Sprintf("%s failed: command %q: %v", e.Op, e.Command, e.Err)
	}
	return fmt.Sprintf("failed to execute %q: %v", e.Command, e.Err)
}

func (e *ErrExecutionFailed) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code from an error returned by Output or Run.
// Returns -1 when err does not carry one.
func ExitCode(err error) int {
	var ee *ErrExecutionFailed
	if errors.As(err, &ee) && ee.ExitCode > 0 {
		return ee.ExitCode
	}
	return -1
}
