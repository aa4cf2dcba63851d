package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-seaport/checksums"
	"go-seaport/clipboard"
	"go-seaport/history"
	"go-seaport/log"
	"go-seaport/port"
	"go-seaport/portfile"
	"go-seaport/version"
)

// Clip bumps the version and checksums of a port and copies the new
// Portfile to the clipboard.
//
// The steps are:
//  1. Read the port snapshot from the index
//  2. Resolve the new version (--bump, livecheck)
//  3. Locate the recorded checksums, re-reading the port without the
//     index when they do not match the snapshot
//  4. Download the new distfile and hash it
//  5. Patch the Portfile text
//  6. When verification was requested, write the Portfile locally, run
//     test, lint and install, then restore it and clean the port
//  7. Copy the result to the clipboard
//
// Every run is recorded in the history database.
func (s *Service) Clip(ctx context.Context, opts ClipOptions) (*ClipResult, error) {
	start := time.Now()
	result := &ClipResult{RunID: uuid.NewString()}
	logger := s.logger.WithContext(log.LogContext{RunID: result.RunID, Port: opts.Name})

	client := port.NewClient(s.env, s.cfg, logger)

	snap, err := client.Snapshot(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap

	resolver := &version.Resolver{Livecheck: client, Confirm: s.confirm, Logger: logger}
	bump, err := resolver.Resolve(ctx, version.Request{
		Name:     opts.Name,
		Current:  snap.Version,
		Override: opts.Bump,
		IsNew:    opts.New,
		Subports: snap.Subports,
	})
	if err != nil {
		return nil, err
	}
	result.NewVersion = bump
	logger.Success("New version is %s", bump)

	rec := &history.UpdateRecord{
		UUID:       result.RunID,
		Port:       opts.Name,
		Category:   snap.Category,
		IsNew:      opts.New,
		OldVersion: snap.Version,
		NewVersion: bump,
		Status:     history.StatusRunning,
		StartTime:  start,
	}
	if err := s.db.SaveRecord(rec); err != nil {
		logger.Warn("Failed to record update: %v", err)
	}

	cmdLog := log.NewCommandLog(s.cfg, opts.Name)
	defer cmdLog.Close()
	cmdLog.WriteHeader(result.RunID)

	err = s.clip(ctx, opts, client, logger, cmdLog, result)
	result.Duration = time.Since(start)

	status, reason := history.StatusSuccess, ""
	if err != nil {
		status, reason = history.StatusFailed, err.Error()
		cmdLog.WriteError(reason)
	}
	cmdLog.WriteResult(result.Duration, reason)

	if mErr := s.db.Modify(rec.UUID, func(r *history.UpdateRecord) {
		r.Old = result.Old
		r.New = result.New
		r.Contents = result.Contents
		r.Lint = result.Linted
		r.Test = result.Tested
		r.Install = result.Installed
		r.Status = status
		r.Reason = reason
		r.EndTime = time.Now()
	}); mErr != nil {
		logger.Warn("Failed to record update: %v", mErr)
	}

	if err != nil {
		return result, err
	}
	logger.Elapsed(start, "update")
	return result, nil
}

func (s *Service) clip(ctx context.Context, opts ClipOptions, client *port.Client, logger *log.ContextLogger, cmdLog *log.CommandLog, result *ClipResult) error {
	snap := result.Snapshot
	bump := result.NewVersion

	cmdLog.WritePhase("locate")
	locator := &checksums.Locator{Source: client, Logger: logger}
	loc, err := locator.Locate(ctx, opts.Name, snap.Version, bump)
	if err != nil {
		return err
	}
	result.Old = loc.Old

	if !strings.Contains(loc.Old.URL, snap.Version) {
		// The index lags behind the Portfile
		logger.Warn("port info --index %s doesn't match port info %s", opts.Name, opts.Name)
		logger.Info("Going into slow but careful mode...")
		client = client.Careful()
		if snap, err = client.Snapshot(ctx, opts.Name); err != nil {
			return err
		}
		result.Snapshot = snap
		loc.NewURL = strings.ReplaceAll(loc.Old.URL, snap.Version, bump)
	}

	newURL := opts.URL
	if newURL == "" {
		newURL = loc.NewURL
	}

	cmdLog.WritePhase("fetch")
	fetcher := checksums.NewFetcher(s.cfg.DownloadTimeout, logger)
	if s.client != nil {
		fetcher.Client = s.client
	}
	var fetchOpts checksums.FetchOptions
	if opts.Relocate {
		relocator := &checksums.Relocator{Env: s.env, DistFilesPath: s.cfg.DistFilesPath, Logger: logger}
		fetchOpts.Relocate = relocator.Func(checksums.Subdir(opts.Name, snap.Subports))
	}
	dl, err := fetcher.Fetch(ctx, newURL, fetchOpts)
	if err != nil {
		return err
	}
	result.New = dl.Set()

	logger.Info("Checksums:")
	logger.Plain("Old rmd160: %s", result.Old.RMD160)
	logger.Plain("New rmd160: %s", result.New.RMD160)
	logger.Plain("Old sha256: %s", result.Old.SHA256)
	logger.Plain("New sha256: %s", result.New.SHA256)
	logger.Plain("Old size: %s", result.Old.Size)
	logger.Plain("New size: %s", result.New.Size)

	cmdLog.WritePhase("patch")
	path, err := client.File(ctx, opts.Name)
	if err != nil {
		return err
	}
	result.PortfilePath = path

	wc, err := portfile.Open(path, s.env, s.cfg.UseSudo, logger)
	if err != nil {
		return err
	}
	result.Original = wc.Original()

	patched, err := portfile.Patch(result.Original,
		portfile.Numbers{Version: snap.Version, SHA256: result.Old.SHA256, RMD160: result.Old.RMD160, Size: result.Old.Size},
		portfile.Numbers{Version: bump, SHA256: result.New.SHA256, RMD160: result.New.RMD160, Size: result.New.Size},
		portfile.Options{Precise: opts.Precise || s.cfg.PrecisePatch},
	)
	if err != nil {
		return err
	}
	result.Patch = patched
	result.Contents = patched.Text
	if patched.Revision == portfile.RevisionReset {
		logger.Info("Revision reset to 0")
	}
	for _, name := range patched.Missing {
		logger.Warn("Old %s not found in Portfile, left unchanged", name)
	}
	if result.Diff, err = portfile.Diff(opts.Name, result.Original, result.Contents); err != nil {
		logger.Debug("diff: %v", err)
	}
	logger.Debug("Portfile diff:\n%s", result.Diff)

	if opts.verify() {
		if err := s.verify(ctx, opts, client, wc, logger, cmdLog, result); err != nil {
			return err
		}
	}

	if !opts.NoClipboard {
		cb := clipboard.ForOS(s.goos, s.env, logger)
		if err := cb.Copy(ctx, result.Contents); err != nil {
			logger.Warn("Failed to copy to clipboard: %v", err)
		} else {
			result.Copied = true
			logger.Info("The contents of the Portfile have been copied to your clipboard!")
		}
	}
	return nil
}

// verify writes the patched Portfile into the local tree and runs the
// requested checks. The original is restored on every return path unless
// Write keeps the new contents. The port is cleaned only when the patched
// Portfile reached the disk; with Relocate the distfile placed in the
// cache is kept and only the work directory is cleaned.
func (s *Service) verify(ctx context.Context, opts ClipOptions, client *port.Client, wc *portfile.WorkingCopy, logger *log.ContextLogger, cmdLog *log.CommandLog, result *ClipResult) (err error) {
	logger.Info("Editing local Portfile %s", wc.Path)
	if !opts.Write {
		logger.Info("Changes will be reverted after completion")
	}

	s.setActive(wc)
	defer func() {
		logger.Info("Cleanup")
		cleanCtx := context.WithoutCancel(ctx)
		if rErr := wc.Restore(cleanCtx); rErr != nil && err == nil {
			err = rErr
		}
		s.setActive(nil)
		if !wc.Touched() {
			return
		}
		clean := client.Clean
		if opts.Relocate {
			clean = client.CleanWork
		}
		if cErr := clean(cleanCtx, opts.Name); cErr != nil {
			logger.Warn("port clean failed: %v", cErr)
		}
	}()

	if err := wc.Write(ctx, result.Contents); err != nil {
		return err
	}
	if opts.Write {
		wc.Persist()
		logger.Success("The Portfile's contents have been updated")
	}

	actOpts := port.ActionOptions{Output: io.MultiWriter(cmdLog, s.output), Confirm: s.confirm}

	if opts.Test {
		cmdLog.WritePhase("test")
		sub, _ := result.Snapshot.LastSubport()
		if err := client.Test(ctx, opts.Name, sub, actOpts); err != nil {
			return err
		}
		result.Tested = true
	}
	if opts.Lint {
		cmdLog.WritePhase("lint")
		if _, err := client.Lint(ctx, opts.Name, actOpts); err != nil {
			var lintErr *port.LintError
			if errors.As(err, &lintErr) {
				logger.Error("%d errors and %d warnings found", lintErr.Errors, lintErr.Warnings)
			}
			return err
		}
		result.Linted = true
	}
	if opts.Install {
		cmdLog.WritePhase("install")
		if err := client.Install(ctx, opts.Name, actOpts); err != nil {
			return err
		}
		result.Installed = true
	}
	return nil
}
