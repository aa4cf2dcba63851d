package port

import (
	"context"
	"errors"
	"strings"

	"go-seaport/config"
	"go-seaport/environment"
	"go-seaport/log"
)

// Client queries and drives the MacPorts port command.
type Client struct {
	Env    environment.Environment
	Binary string // path to port, e.g. /opt/local/bin/port

	// Index makes info queries read the port index (--index), which is
	// fast but may lag behind a Portfile that was just edited.
	Index bool

	// Sudo runs mutating actions (test, install, clean) through sudo.
	Sudo bool

	Logger log.LibraryLogger
}

// NewClient creates a Client using the configured port binary.
func NewClient(env environment.Environment, cfg *config.Config, logger log.LibraryLogger) *Client {
	return &Client{
		Env:    env,
		Binary: cfg.PortBinary,
		Index:  true,
		Sudo:   cfg.UseSudo,
		Logger: log.OrNoOp(logger),
	}
}

// Careful returns a copy of c that bypasses the port index.
func (c *Client) Careful() *Client {
	cc := *c
	cc.Index = false
	return &cc
}

func (c *Client) logger() log.LibraryLogger {
	return log.OrNoOp(c.Logger)
}

func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	return environment.Output(ctx, c.Env, &environment.ExecCommand{
		Command: c.Binary,
		Args:    args,
	})
}

func (c *Client) infoArgs(name string, flags ...string) []string {
	args := []string{"info"}
	args = append(args, flags...)
	if c.Index {
		args = append(args, "--index")
	}
	return append(args, name)
}

// Info returns the raw port info output. A failing query means the port
// is not in the index.
func (c *Client) Info(ctx context.Context, name string) (string, error) {
	out, err := c.output(ctx, c.infoArgs(name)...)
	if err != nil {
		var execErr *environment.ErrExecutionFailed
		if errors.As(err, &execErr) && execErr.ExitCode > 0 {
			return "", &NotFoundError{Name: name, Index: c.Index}
		}
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", &NotFoundError{Name: name, Index: c.Index}
	}
	return out, nil
}

// Snapshot reads the current state of a port. The summary line is used
// when well-formed; otherwise --version, --revision and --category are
// queried individually.
func (c *Client) Snapshot(ctx context.Context, name string) (*Snapshot, error) {
	info, err := c.Info(ctx, name)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Name: name, Subports: ParseSubports(info)}

	summary, err := ParseSummary(info)
	if err != nil {
		c.logger().Debug("port info %s: %v, using dedicated queries", name, err)
	}

	if summary.VersionOK {
		snap.Version = summary.Version
		snap.Revision = summary.Revision
	} else {
		if snap.Version, err = c.labeled(ctx, name, "--version"); err != nil {
			return nil, err
		}
		out, err := c.output(ctx, c.infoArgs(name, "--revision")...)
		if err != nil {
			return nil, err
		}
		snap.Revision, _ = ParseRevision(out)
	}

	if summary.CategoryOK {
		snap.Categories = summary.Categories
	} else {
		out, err := c.output(ctx, c.infoArgs(name, "--category")...)
		if err != nil {
			return nil, err
		}
		if cat, ok := ParseCategory(out); ok {
			snap.Categories = []string{cat}
		}
	}
	if len(snap.Categories) > 0 {
		snap.Category = snap.Categories[0]
	}

	c.logger().Debug("snapshot %s: version=%s revision=%d category=%s subports=%v",
		name, snap.Version, snap.Revision, snap.Category, snap.Subports)
	return snap, nil
}

func (c *Client) labeled(ctx context.Context, name, flag string) (string, error) {
	out, err := c.output(ctx, c.infoArgs(name, flag)...)
	if err != nil {
		return "", err
	}
	v, ok := ParseLabeled(out)
	if !ok {
		return "", &NotFoundError{Name: name, Index: c.Index}
	}
	return v, nil
}

// Livecheck returns the raw port livecheck output for name.
func (c *Client) Livecheck(ctx context.Context, name string) (string, error) {
	return c.output(ctx, "livecheck", name)
}

// Distfiles returns the raw port distfiles output for name.
func (c *Client) Distfiles(ctx context.Context, name string) (string, error) {
	return c.output(ctx, "distfiles", name)
}

// File returns the path of the Portfile for name.
func (c *Client) File(ctx context.Context, name string) (string, error) {
	out, err := c.output(ctx, "file", name)
	if err != nil {
		return "", &NotFoundError{Name: name}
	}
	return strings.TrimSpace(out), nil
}

// Search returns the names of ports starting with prefix.
func (c *Client) Search(ctx context.Context, prefix string) ([]string, error) {
	out, err := c.output(ctx, "search", "--name", "--line", "--glob", prefix+"*")
	if err != nil {
		if environment.ExitCode(err) > 0 {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name, _, _ := strings.Cut(line, "\t"); strings.TrimSpace(name) != "" {
			names = append(names, strings.TrimSpace(name))
		}
	}
	return names, nil
}
