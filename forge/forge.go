// Package forge sends an updated Portfile upstream as a GitHub pull
// request, driving git and the gh CLI inside a fork of the ports tree.
package forge

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go-seaport/config"
	"go-seaport/environment"
	"go-seaport/log"
	"go-seaport/port"
	"go-seaport/util"
)

// Change is the Portfile update to submit.
type Change struct {
	Name     string
	Category string
	Version  string
	Contents string
	IsNew    bool

	// Verification performed before submitting, reflected in the body
	Lint    bool
	Test    bool
	Install bool
}

// Submission describes what Submit did.
type Submission struct {
	Branch string
	Title  string
	Body   string
	URL    string // output of gh pr create
	Sent   bool   // false when the user stopped before pushing
}

// Forge works in a clone of the upstream ports repository.
type Forge struct {
	Env        environment.Environment
	Git        string
	Gh         string
	Upstream   string // owner/repo, e.g. macports/macports-ports
	BaseBranch string
	Location   string // directory containing the clone

	Confirm       util.Confirmer
	GitHubActions bool // skip the final confirmation

	Logger log.LibraryLogger
}

// New creates a Forge from configuration. location overrides
// cfg.ClonePath when set.
func New(env environment.Environment, cfg *config.Config, location string, confirm util.Confirmer, logger log.LibraryLogger) *Forge {
	if location == "" {
		location = cfg.ClonePath
	}
	return &Forge{
		Env:           env,
		Git:           cfg.GitBinary,
		Gh:            cfg.GhBinary,
		Upstream:      cfg.UpstreamRepo,
		BaseBranch:    cfg.BaseBranch,
		Location:      strings.TrimRight(location, "/"),
		Confirm:       confirm,
		GitHubActions: os.Getenv("GITHUB_ACTIONS") == "true",
		Logger:        log.OrNoOp(logger),
	}
}

// RepoDir is the clone of the upstream repository inside Location.
func (f *Forge) RepoDir() string {
	return filepath.Join(f.Location, path.Base(f.Upstream))
}

// BranchName returns the topic branch for an update.
func BranchName(name, version string) string {
	return fmt.Sprintf("seaport-%s-%s", name, version)
}

// CommitTitle returns the commit message and pull request title.
func CommitTitle(name, version string, isNew bool) string {
	if isNew {
		return name + ": new port"
	}
	return fmt.Sprintf("%s: update to %s", name, version)
}

func (f *Forge) git(ctx context.Context, args ...string) error {
	return environment.Run(ctx, f.Env, &environment.ExecCommand{
		Command: f.Git, Args: args, WorkDir: f.RepoDir(),
	})
}

// Fork forks and clones the upstream repository into Location. gh fails
// when the clone already exists, which is not an error here.
func (f *Forge) Fork(ctx context.Context) error {
	f.Logger.Info("Cloning %s", f.Upstream)
	_, err := f.Env.Execute(ctx, &environment.ExecCommand{
		Command: f.Gh,
		Args:    []string{"repo", "fork", f.Upstream, "--clone=true", "--remote=true"},
		WorkDir: f.Location,
	})
	if err != nil {
		return fmt.Errorf("failed to run gh: %w", err)
	}
	if !util.DirExists(f.RepoDir()) {
		return fmt.Errorf("no clone of %s in %s", f.Upstream, f.Location)
	}
	return nil
}

// SyncFork brings the fork's base branch up to date with upstream.
func (f *Forge) SyncFork(ctx context.Context) error {
	for _, args := range [][]string{
		{"checkout", "-f", f.BaseBranch},
		{"fetch", "upstream"},
		{"merge", "upstream/" + f.BaseBranch},
		{"push"},
	} {
		if err := f.git(ctx, args...); err != nil {
			return fmt.Errorf("failed to sync fork: %w", err)
		}
	}
	return nil
}

// Submit commits the change on a topic branch and opens the pull request.
// The topic branch is deleted afterwards whatever the outcome.
func (f *Forge) Submit(ctx context.Context, c Change) (sub *Submission, err error) {
	if c.Category == "" {
		return nil, fmt.Errorf("no category known for %s", c.Name)
	}
	if err := f.Fork(ctx); err != nil {
		return nil, err
	}
	if err := f.SyncFork(ctx); err != nil {
		return nil, err
	}

	sub = &Submission{
		Branch: BranchName(c.Name, c.Version),
		Title:  CommitTitle(c.Name, c.Version, c.IsNew),
	}

	if err := f.git(ctx, "checkout", "-b", sub.Branch); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.cleanup(ctx, sub.Branch); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rel := filepath.Join(c.Category, c.Name, "Portfile")
	dest := filepath.Join(f.RepoDir(), rel)
	if c.IsNew {
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return sub, fmt.Errorf("failed to create port directory: %w", err)
		}
	}
	if err := os.WriteFile(dest, []byte(c.Contents), 0644); err != nil {
		return sub, fmt.Errorf("failed to write Portfile: %w", err)
	}

	if err := f.git(ctx, "add", rel); err != nil {
		return sub, err
	}
	if err := f.git(ctx, "commit", "-m", sub.Title); err != nil {
		return sub, err
	}
	// Make gh target the upstream repository rather than the fork
	if err := f.git(ctx, "config", "remote.upstream.gh-resolved", "base"); err != nil {
		return sub, err
	}

	sub.Body, err = RenderBody(BodyData{
		Host:          f.HostInfo(ctx),
		GitHubActions: f.GitHubActions,
		Lint:          c.Lint,
		Test:          c.Test,
		Install:       c.Install,
	})
	if err != nil {
		return sub, err
	}

	if !f.GitHubActions && (f.Confirm == nil || !f.Confirm.Confirm("Does everything look good before sending PR?", true)) {
		return sub, port.ErrUserDeclined
	}

	if err := f.git(ctx, "push", "--set-upstream", "origin", sub.Branch); err != nil {
		return sub, err
	}
	out, err := environment.Output(ctx, f.Env, &environment.ExecCommand{
		Command: f.Gh,
		Args:    []string{"pr", "create", "--title", sub.Title, "--body", sub.Body},
		WorkDir: f.RepoDir(),
	})
	if err != nil {
		return sub, fmt.Errorf("failed to create pull request: %w", err)
	}
	sub.URL = strings.TrimSpace(out)
	sub.Sent = true
	f.Logger.Info("Pull request created %s", sub.URL)
	return sub, nil
}

func (f *Forge) cleanup(ctx context.Context, branch string) error {
	if err := f.git(ctx, "checkout", f.BaseBranch); err != nil {
		return err
	}
	return f.git(ctx, "branch", "-D", branch)
}
