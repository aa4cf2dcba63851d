package service

import (
	"os"

	"go-seaport/history"
)

// History returns recorded updates, newest first, with database stats.
func (s *Service) History(opts HistoryOptions) (*HistoryResult, error) {
	result := &HistoryResult{}

	if len(opts.Ports) == 0 {
		recs, err := s.db.List("", opts.Limit)
		if err != nil {
			return nil, err
		}
		result.Records = recs
	} else {
		for _, name := range opts.Ports {
			recs, err := s.db.List(name, opts.Limit)
			if err != nil {
				return nil, err
			}
			result.Records = append(result.Records, recs...)
		}
	}

	stats, err := s.db.Stats()
	if err != nil {
		return nil, err
	}
	result.Stats = stats

	if info, err := os.Stat(s.cfg.Database.Path); err == nil {
		result.DatabaseSize = info.Size()
	}
	return result, nil
}

// Record returns a single update by run id.
func (s *Service) Record(runID string) (*history.UpdateRecord, error) {
	return s.db.GetRecord(runID)
}
