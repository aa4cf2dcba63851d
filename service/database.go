package service

import (
	"fmt"
	"os"

	"go-seaport/history"
)

// DatabaseResult contains the results of a database operation.
type DatabaseResult struct {
	DatabaseRemoved bool
	FilesRemoved    []string
}

// ResetDatabase removes the history database and opens a fresh one.
//
// This is a destructive operation. The caller is responsible for
// confirming it with the user.
func (s *Service) ResetDatabase() (*DatabaseResult, error) {
	result := &DatabaseResult{}
	dbPath := s.cfg.Database.Path

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return nil, fmt.Errorf("failed to close database before reset: %w", err)
		}
		s.db = nil
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := os.Remove(dbPath); err != nil {
			return nil, fmt.Errorf("failed to remove database: %w", err)
		}
		result.DatabaseRemoved = true
		result.FilesRemoved = append(result.FilesRemoved, dbPath)
		s.logger.Info("History database removed: %s", dbPath)
	}

	db, err := history.OpenDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen history database: %w", err)
	}
	s.db = db
	return result, nil
}
