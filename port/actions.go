package port

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"go-seaport/environment"
	"go-seaport/util"
)

// ActionOptions controls the verification actions run on a working copy.
type ActionOptions struct {
	// Output receives the streamed output of long running commands
	// (test, install), typically the console plus the command log.
	Output io.Writer

	// Confirm answers the lint warning and uninstall prompts.
	Confirm util.Confirmer
}

// LintReport holds the counts parsed from port lint --nitpick.
type LintReport struct {
	Errors   int
	Warnings int
	Output   string
}

var lintCountRe = regexp.MustCompile(`(\d+)\s+errors?\s+and\s+(\d+)\s+warnings?`)

// ParseLint extracts the error and warning counts from port lint output.
func ParseLint(out string) (LintReport, bool) {
	m := lintCountRe.FindStringSubmatch(out)
	if m == nil {
		return LintReport{Output: out}, false
	}
	errs, _ := strconv.Atoi(m[1])
	warns, _ := strconv.Atoi(m[2])
	return LintReport{Errors: errs, Warnings: warns, Output: out}, true
}

func (c *Client) exec(ctx context.Context, out io.Writer, sudo bool, args ...string) (*environment.ExecResult, error) {
	return c.Env.Execute(ctx, &environment.ExecCommand{
		Command: c.Binary,
		Args:    args,
		Sudo:    sudo,
		Stdout:  out,
		Stderr:  out,
	})
}

// Lint runs port lint --nitpick. Any error fails the lint; warnings ask
// whether to continue.
func (c *Client) Lint(ctx context.Context, name string, opts ActionOptions) (*LintReport, error) {
	c.logger().Info("Linting %s", name)

	var buf bytes.Buffer
	w := io.Writer(&buf)
	if opts.Output != nil {
		w = io.MultiWriter(&buf, opts.Output)
	}
	if _, err := c.exec(ctx, w, false, "lint", "--nitpick", name); err != nil {
		return nil, err
	}

	report, ok := ParseLint(buf.String())
	if !ok {
		return &report, fmt.Errorf("unrecognised port lint output for %s", name)
	}
	if report.Errors > 0 {
		return &report, &LintError{Name: name, Errors: report.Errors, Warnings: report.Warnings}
	}
	if report.Warnings > 0 {
		prompt := fmt.Sprintf("There are %d warnings. Do you wish to continue?", report.Warnings)
		if opts.Confirm == nil || !opts.Confirm.Confirm(prompt, false) {
			return &report, ErrUserDeclined
		}
	}
	c.logger().Info("Lint passed with %d warnings", report.Warnings)
	return &report, nil
}

// Test runs port test on name, then on subport when name has no tests of
// its own (python ports keep their tests in a sub-port). subport may be empty.
func (c *Client) Test(ctx context.Context, name, subport string, opts ActionOptions) error {
	for _, target := range []string{name, subport} {
		if target == "" {
			continue
		}
		if target != name {
			c.logger().Info("Trying with subport %s", target)
		} else {
			c.logger().Info("Testing %s", target)
		}
		result, err := c.exec(ctx, opts.Output, c.Sudo, "test", target)
		if err != nil {
			return err
		}
		if result.ExitCode == 0 {
			c.logger().Info("Tests passed")
			return nil
		}
	}
	return fmt.Errorf("%s: %w", name, ErrTestFailed)
}

// Install runs port -vst install, then offers to uninstall once the user
// has tried the port in another terminal.
func (c *Client) Install(ctx context.Context, name string, opts ActionOptions) error {
	c.logger().Info("Installing %s", name)
	result, err := c.exec(ctx, opts.Output, c.Sudo, "-vst", "install", name)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%s: %w (exit code %d)", name, ErrInstallFailed, result.ExitCode)
	}

	c.logger().Info("Paused to allow testing basic functionality in a different terminal")
	if opts.Confirm != nil && opts.Confirm.Confirm("Do you want to uninstall the port?", true) {
		c.logger().Info("Uninstalling %s", name)
		return environment.Run(ctx, c.Env, &environment.ExecCommand{
			Command: c.Binary, Args: []string{"uninstall", name}, Sudo: c.Sudo, Stdout: opts.Output, Stderr: opts.Output,
		})
	}
	return nil
}

// Clean runs port clean --all, removing work directories and the
// downloaded distfiles of the port.
func (c *Client) Clean(ctx context.Context, name string) error {
	return c.clean(ctx, name, "--all")
}

// CleanWork runs port clean --work, leaving distfiles in place.
func (c *Client) CleanWork(ctx context.Context, name string) error {
	return c.clean(ctx, name, "--work")
}

func (c *Client) clean(ctx context.Context, name, scope string) error {
	c.logger().Info("Cleaning %s", name)
	return environment.Run(ctx, c.Env, &environment.ExecCommand{
		Command: c.Binary, Args: []string{"clean", scope, name}, Sudo: c.Sudo,
	})
}
