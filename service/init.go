package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"

	"go-seaport/config"
	"go-seaport/util"
)

// InitOptions contains options for the Initialize service.
type InitOptions struct {
	ConfigDir string // where seaport.ini is written
	Force     bool   // overwrite an existing seaport.ini
}

// InitResult contains the results of an initialization operation.
type InitResult struct {
	DirsCreated         []string
	ConfigPath          string
	ConfigWritten       bool
	DatabaseInitialized bool
	Warnings            []string // Non-fatal warnings
}

// Initialize prepares seaport for first use.
//
// The initialization process includes:
//  1. Creating the logs and clone directories
//  2. Writing seaport.ini with the current settings
//  3. Verifying the history database
//  4. Checking that port, git and gh can be found
//
// This method does not interact with the user.
func (s *Service) Initialize(opts InitOptions) (*InitResult, error) {
	result := &InitResult{}

	// 1. Create required directories
	dirs := map[string]string{
		"Logs":  s.cfg.LogsPath,
		"Clone": s.cfg.ClonePath,
	}
	for label, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory (%s): %w", label, dir, err)
		}
		result.DirsCreated = append(result.DirsCreated, dir)
		s.logger.Info("Created %s: %s", label, dir)
	}

	// 2. Write the config file
	if opts.ConfigDir != "" {
		result.ConfigPath = filepath.Join(opts.ConfigDir, config.ConfigFileName)
		if util.FileExists(result.ConfigPath) && !opts.Force {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s already exists, use --force to overwrite", result.ConfigPath))
		} else {
			if err := os.MkdirAll(opts.ConfigDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := writeConfig(s.cfg, result.ConfigPath); err != nil {
				return nil, err
			}
			result.ConfigWritten = true
			s.logger.Info("Wrote %s", result.ConfigPath)
		}
	}

	// 3. The database was opened by NewService
	if s.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	result.DatabaseInitialized = true
	s.logger.Info("Database initialized: %s", s.cfg.Database.Path)

	// 4. Verify external tools
	if !util.FileExists(s.cfg.PortBinary) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("port not found at %s, set Directory_prefix or Binary_port", s.cfg.PortBinary))
	}
	for _, tool := range []string{s.cfg.GitBinary, s.cfg.GhBinary} {
		if _, err := exec.LookPath(tool); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s not found in PATH (needed by seaport pr)", tool))
		}
	}

	return result, nil
}

func writeConfig(cfg *config.Config, path string) error {
	f := ini.Empty()
	global, err := f.NewSection("Global Configuration")
	if err != nil {
		return err
	}
	profile := cfg.Profile
	if profile == "" {
		profile = "default"
	}
	global.Key("profile_selected").SetValue(profile)

	sec := global
	if profile != "default" {
		if sec, err = f.NewSection(profile); err != nil {
			return err
		}
	}
	for _, kv := range [][2]string{
		{"Directory_prefix", cfg.Prefix},
		{"Directory_distfiles", cfg.DistFilesPath},
		{"Directory_logs", cfg.LogsPath},
		{"Directory_clone", cfg.ClonePath},
		{"Upstream_repository", cfg.UpstreamRepo},
		{"Base_branch", cfg.BaseBranch},
		{"Download_timeout", cfg.DownloadTimeout.String()},
		{"Use_sudo", strconv.FormatBool(cfg.UseSudo)},
		{"Precise_patch", strconv.FormatBool(cfg.PrecisePatch)},
		{"Database_path", cfg.Database.Path},
	} {
		if kv[1] == "" {
			continue
		}
		sec.Key(kv[0]).SetValue(kv[1])
	}

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
