package checksums

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-seaport/environment"
	"go-seaport/log"
	"go-seaport/util"
)

// Relocator copies downloaded distfiles into the MacPorts distfile cache
// so a later port build does not fetch them again.
type Relocator struct {
	Env           environment.Environment
	DistFilesPath string // e.g. /opt/local/var/macports/distfiles
	Logger        log.LibraryLogger
}

// Subdir returns the cache subdirectory for a port. Python ports keep
// their distfiles under the last sub-port.
func Subdir(name string, subports []string) string {
	if strings.HasPrefix(name, "py-") && len(subports) > 0 {
		return subports[len(subports)-1]
	}
	return name
}

// Install copies file to <distfiles>/<subdir>/<filename>. When the target
// directory is not writable the copy goes through sudo.
func (r *Relocator) Install(ctx context.Context, file, subdir, filename string) (string, error) {
	dir := filepath.Join(r.DistFilesPath, subdir)
	target := filepath.Join(dir, filename)

	if util.Writable(dir) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		if err := copyFile(file, target); err != nil {
			return "", err
		}
	} else {
		log.OrNoOp(r.Logger).Info("Distfile directory %s is not writable, sudo required", dir)
		if err := environment.Run(ctx, r.Env, &environment.ExecCommand{
			Command: "mkdir", Args: []string{"-p", dir}, Sudo: true,
		}); err != nil {
			return "", err
		}
		if err := environment.Run(ctx, r.Env, &environment.ExecCommand{
			Command: "cp", Args: []string{file, target}, Sudo: true,
		}); err != nil {
			return "", err
		}
	}

	log.OrNoOp(r.Logger).Info("Distfile copied to %s", target)
	return target, nil
}

// Func adapts Install for FetchOptions.Relocate.
func (r *Relocator) Func(subdir string) func(ctx context.Context, file, filename string) error {
	return func(ctx context.Context, file, filename string) error {
		_, err := r.Install(ctx, file, subdir, filename)
		return err
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return out.Close()
}
