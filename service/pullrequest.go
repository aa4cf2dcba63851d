package service

import (
	"context"
	"fmt"
	"time"

	"go-seaport/forge"
	"go-seaport/history"
	"go-seaport/log"
)

// PullRequest runs Clip (or reuses the last recorded update of the port)
// and submits the new Portfile upstream.
func (s *Service) PullRequest(ctx context.Context, opts PROptions) (*PRResult, error) {
	name := opts.Clip.Name
	result := &PRResult{}

	if opts.FromHistory {
		rec, err := s.db.LatestFor(name)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, fmt.Errorf("no recorded update for %s, run seaport clip first", name)
		}
		if rec.Status == history.StatusSubmitted || rec.PullRequest != "" {
			return nil, fmt.Errorf("%s %s (%s): %w", name, rec.NewVersion, rec.PullRequest, history.ErrAlreadySubmitted)
		}
		result.Record = rec
	} else {
		clip, err := s.Clip(ctx, opts.Clip)
		if err != nil {
			return nil, err
		}
		result.Clip = clip
		rec, err := s.db.GetRecord(clip.RunID)
		if err != nil {
			return nil, err
		}
		result.Record = rec
	}

	rec := result.Record
	logger := s.logger.WithContext(log.LogContext{RunID: rec.UUID, Port: name})

	f := forge.New(s.env, s.cfg, opts.Location, s.confirm, logger)
	sub, err := f.Submit(ctx, forge.Change{
		Name:     rec.Port,
		Category: rec.Category,
		Version:  rec.NewVersion,
		Contents: rec.Contents,
		IsNew:    rec.IsNew || opts.Clip.New,
		Lint:     rec.Lint,
		Test:     rec.Test,
		Install:  rec.Install,
	})
	result.Submission = sub
	if err != nil {
		return result, err
	}

	if sub.Sent {
		if err := s.db.Modify(rec.UUID, func(r *history.UpdateRecord) {
			r.Status = history.StatusSubmitted
			r.PullRequest = sub.URL
			r.EndTime = time.Now()
		}); err != nil {
			logger.Warn("Failed to record pull request: %v", err)
		}
	}
	return result, nil
}
