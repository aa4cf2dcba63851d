package environment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go-seaport/config"
	"go-seaport/log"
)

// HostEnvironment runs commands on the local machine.
type HostEnvironment struct {
	// SudoBinary prefixes commands with ExecCommand.Sudo set.
	SudoBinary string

	Logger log.LibraryLogger
}

func init() {
	Register("host", func(cfg *config.Config) Environment {
		return NewHostEnvironment(cfg)
	})
}

// NewHostEnvironment creates a host environment using cfg's sudo binary.
func NewHostEnvironment(cfg *config.Config) *HostEnvironment {
	sudo := "sudo"
	if cfg != nil && cfg.SudoBinary != "" {
		sudo = cfg.SudoBinary
	}
	return &HostEnvironment{SudoBinary: sudo, Logger: log.NoOpLogger{}}
}

// Execute runs cmd via os/exec.
func (e *HostEnvironment) Execute(ctx context.Context, cmd *ExecCommand) (*ExecResult, error) {
	execCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	name, args := cmd.Command, cmd.Args
	if cmd.Sudo {
		name = e.SudoBinary
		args = append([]string{cmd.Command}, cmd.Args...)
	}

	log.OrNoOp(e.Logger).Debug("exec: %s", cmd.String())

	execCmd := exec.CommandContext(execCtx, name, args...)
	execCmd.Dir = cmd.WorkDir
	if len(cmd.Env) > 0 {
		env := os.Environ()
		for k, v := range cmd.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		execCmd.Env = env
	}
	execCmd.Stdin = cmd.Stdin
	execCmd.Stdout = cmd.Stdout
	execCmd.Stderr = cmd.Stderr

	startTime := time.Now()
	err := execCmd.Run()
	result := &ExecResult{Duration: time.Since(startTime)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && execCtx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		op := "start"
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			op = "timeout"
		}
		result.ExitCode = -1
		result.Error = err
		return result, &ErrExecutionFailed{Op: op, Command: cmd.String(), Err: err}
	}

	return result, nil
}
