// Package clipboard copies the patched Portfile to the system clipboard.
package clipboard

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"go-seaport/environment"
	"go-seaport/log"
)

// Clipboard writes text through a platform copy command.
type Clipboard struct {
	Env     environment.Environment
	Command string   // e.g. pbcopy
	Args    []string // extra arguments for Command
	Logger  log.LibraryLogger
}

// New returns the clipboard for the running platform: pbcopy on macOS,
// xclip elsewhere.
func New(env environment.Environment, logger log.LibraryLogger) *Clipboard {
	return ForOS(runtime.GOOS, env, logger)
}

// ForOS returns the clipboard command used on goos.
func ForOS(goos string, env environment.Environment, logger log.LibraryLogger) *Clipboard {
	c := &Clipboard{Env: env, Logger: log.OrNoOp(logger)}
	if goos == "darwin" {
		c.Command = "pbcopy"
	} else {
		c.Command = "xclip"
		c.Args = []string{"-selection", "clipboard"}
	}
	return c
}

// Copy places text on the clipboard.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	err := environment.Run(ctx, c.Env, &environment.ExecCommand{
		Command: c.Command,
		Args:    c.Args,
		Stdin:   strings.NewReader(text),
	})
	if err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	log.OrNoOp(c.Logger).Info("Copied to clipboard")
	return nil
}
