package portfile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go-seaport/environment"
	"go-seaport/log"
	"go-seaport/util"
)

// WorkingCopy guards an on-disk Portfile while a patched version is live.
// The original text is read on Open and written back by Restore unless
// Persist was called. Restore is safe to call more than once and from a
// signal handler.
type WorkingCopy struct {
	Path   string
	Env    environment.Environment
	Sudo   bool // allow sudo cp when the Portfile is not writable
	Logger log.LibraryLogger

	mu       sync.Mutex
	original string
	mode     os.FileMode
	written  bool
	touched  bool
	persist  bool
}

// Open reads the Portfile at path and keeps its contents as the backup.
func Open(path string, env environment.Environment, sudo bool, logger log.LibraryLogger) (*WorkingCopy, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat Portfile: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Portfile: %w", err)
	}
	return &WorkingCopy{
		Path:     path,
		Env:      env,
		Sudo:     sudo,
		Logger:   log.OrNoOp(logger),
		original: string(data),
		mode:     info.Mode().Perm(),
	}, nil
}

// Original returns the Portfile contents as read by Open.
func (w *WorkingCopy) Original() string {
	return w.original
}

// Write replaces the Portfile with text.
func (w *WorkingCopy) Write(ctx context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.write(ctx, text); err != nil {
		return err
	}
	w.written = true
	w.touched = true
	return nil
}

// Touched reports whether a Write ever reached the disk, even if Restore
// has reverted it since.
func (w *WorkingCopy) Touched() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.touched
}

// Persist keeps the written contents when Restore runs.
func (w *WorkingCopy) Persist() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.persist = true
}

// Live reports whether patched contents are on disk and would be
// reverted by Restore.
func (w *WorkingCopy) Live() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written && !w.persist
}

// Restore writes the original contents back unless Persist was called.
func (w *WorkingCopy) Restore(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.written || w.persist {
		return nil
	}
	log.OrNoOp(w.Logger).Info("Reverting changes to %s", w.Path)
	if err := w.write(ctx, w.original); err != nil {
		return fmt.Errorf("failed to restore Portfile: %w", err)
	}
	w.written = false
	return nil
}

func (w *WorkingCopy) write(ctx context.Context, text string) error {
	if !w.Sudo || util.Writable(w.Path) {
		return os.WriteFile(w.Path, []byte(text), w.mode)
	}

	// sudo cannot redirect into the file, so stage a temp copy first
	tmp, err := os.CreateTemp("", "seaport-Portfile-")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	log.OrNoOp(w.Logger).Info("Editing local Portfile, sudo required")
	return environment.Run(ctx, w.Env, &environment.ExecCommand{
		Command: "cp",
		Args:    []string{tmp.Name(), w.Path},
		Sudo:    true,
	})
}
