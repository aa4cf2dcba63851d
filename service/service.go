// Package service provides the seaport operations used by the CLI.
//
// The service layer sits between the CLI (cmd/) and the library packages
// (port, checksums, portfile, version, forge, history):
//
//   - CLI layer (cmd/): flags, prompts, formatting
//   - Service layer (service/): runs an update from port name to Portfile text
//   - Library layer: parsing, hashing and patching with no terminal coupling
//
// All library packages receive a log.LibraryLogger, so the service can be
// driven from tests with a scripted environment.
package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"

	"go-seaport/config"
	"go-seaport/environment"
	"go-seaport/history"
	"go-seaport/log"
	"go-seaport/portfile"
	"go-seaport/util"
)

// Deps are the collaborators a Service talks to. Zero values select the
// host environment, an interactive prompt, stderr and the host OS.
type Deps struct {
	Env        environment.Environment
	Confirm    util.Confirmer
	Output     io.Writer // streamed output of port test/lint/install
	HTTPClient *http.Client
	GOOS       string
}

// Service coordinates seaport operations.
//
// Usage:
//
//	cfg, _ := config.LoadConfig("", "")
//	svc, err := service.NewService(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Clip(ctx, service.ClipOptions{Name: "gping"})
type Service struct {
	cfg     *config.Config
	logger  *log.Logger
	db      *history.DB
	env     environment.Environment
	confirm util.Confirmer
	output  io.Writer
	client  *http.Client
	goos    string

	activeCopy *portfile.WorkingCopy
	activeMu   sync.Mutex
}

// NewService creates a Service on the host environment.
func NewService(cfg *config.Config) (*Service, error) {
	return NewServiceWith(cfg, Deps{})
}

// NewServiceWith creates a Service with explicit collaborators.
//
// It initializes the logger and opens the history database. The caller is
// responsible for calling Close() to release resources.
func NewServiceWith(cfg *config.Config, deps Deps) (*Service, error) {
	logger, err := log.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := history.OpenDB(cfg.Database.Path)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Service{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		env:     deps.Env,
		confirm: deps.Confirm,
		output:  deps.Output,
		client:  deps.HTTPClient,
		goos:    deps.GOOS,
	}

	if s.env == nil {
		if s.env, err = environment.New("host", cfg); err != nil {
			s.Close()
			return nil, err
		}
	}
	if s.confirm == nil {
		s.confirm = util.NewPrompt(cfg.YesAll)
	}
	if s.output == nil {
		s.output = os.Stderr
	}
	if s.goos == "" {
		s.goos = runtime.GOOS
	}
	return s, nil
}

// Close releases the database and the logger.
func (s *Service) Close() error {
	var errs []error

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	if s.logger != nil {
		s.logger.Close()
	}

	if len(errs) > 0 {
		return fmt.Errorf("service close errors: %v", errs)
	}
	return nil
}

// Config returns the service's configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Logger returns the service's logger.
func (s *Service) Logger() *log.Logger {
	return s.logger
}

// Database returns the history database.
func (s *Service) Database() *history.DB {
	return s.db
}

// Environment returns the environment commands run in.
func (s *Service) Environment() environment.Environment {
	return s.env
}

func (s *Service) setActive(wc *portfile.WorkingCopy) {
	s.activeMu.Lock()
	s.activeCopy = wc
	s.activeMu.Unlock()
}

// RestoreActive reverts the Portfile of an update in progress. Signal
// handlers call it before exiting.
func (s *Service) RestoreActive(ctx context.Context) error {
	s.activeMu.Lock()
	wc := s.activeCopy
	s.activeMu.Unlock()

	if wc == nil || !wc.Live() {
		return nil
	}
	s.logger.Warn("Interrupted, restoring %s", wc.Path)
	return wc.Restore(ctx)
}
