package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/ini.v1"
)

// ConfigFileName is the name of the INI file looked up in the config directory.
const ConfigFileName = "seaport.ini"

// DefaultPrefix is the standard MacPorts installation prefix.
const DefaultPrefix = "/opt/local"

// Config holds seaport configuration
type Config struct {
	Profile string

	// MacPorts layout
	Prefix        string // e.g. /opt/local
	PortBinary    string // ${Prefix}/bin/port
	DistFilesPath string // ${Prefix}/var/macports/distfiles

	// Host tools
	SudoBinary string
	GitBinary  string
	GhBinary   string

	// Local state
	LogsPath  string
	ClonePath string // where macports-ports is forked and cloned

	// Pull request target
	UpstreamRepo string // e.g. macports/macports-ports
	BaseBranch   string

	DownloadTimeout time.Duration

	UseSudo      bool
	PrecisePatch bool
	Debug        bool
	YesAll       bool

	// Database settings
	Database struct {
		Path string // Default: ${XDG_STATE_HOME}/seaport/history.db
	}
}

// LoadConfig loads configuration from file.
//
// configDir overrides the default ${XDG_CONFIG_HOME}/seaport location. profile
// selects an INI section; when empty or "default" the profile_selected key of
// the global section decides.
func LoadConfig(configDir, profile string) (*Config, error) {
	cfg := &Config{
		Profile:         profile,
		UpstreamRepo:    "macports/macports-ports",
		BaseBranch:      "master",
		DownloadTimeout: 5 * time.Minute,
		UseSudo:         true,
	}

	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, "seaport")
	}
	configFile := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configFile); err == nil {
		iniFile, err := ini.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}

		globalSec := globalSection(iniFile)

		// If no profile specified, read from global section
		if cfg.Profile == "" || cfg.Profile == "default" {
			if globalSec != nil && globalSec.HasKey("profile_selected") {
				cfg.Profile = globalSec.Key("profile_selected").String()
			}
		}

		// Global values first so the profile can override them
		if globalSec != nil {
			if err := cfg.loadFromSection(globalSec); err != nil {
				return nil, err
			}
		}
		if cfg.Profile != "" && cfg.Profile != "default" {
			if profileSec, err := iniFile.GetSection(cfg.Profile); err == nil {
				if err := cfg.loadFromSection(profileSec); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func globalSection(f *ini.File) *ini.Section {
	for _, name := range []string{"Global Configuration", "global configuration", "Global"} {
		if sec, err := f.GetSection(name); err == nil {
			return sec
		}
	}
	return nil
}

// applyDefaults fills every path left unset by the config file
func (cfg *Config) applyDefaults() {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.PortBinary == "" {
		cfg.PortBinary = filepath.Join(cfg.Prefix, "bin", "port")
	}
	if cfg.DistFilesPath == "" {
		cfg.DistFilesPath = filepath.Join(cfg.Prefix, "var", "macports", "distfiles")
	}
	if cfg.SudoBinary == "" {
		cfg.SudoBinary = "/usr/bin/sudo"
	}
	if cfg.GitBinary == "" {
		cfg.GitBinary = "git"
	}
	if cfg.GhBinary == "" {
		cfg.GhBinary = "gh"
	}
	if cfg.LogsPath == "" {
		cfg.LogsPath = filepath.Join(xdg.StateHome, "seaport", "logs")
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(xdg.StateHome, "seaport", "history.db")
	}
}

// loadFromSection loads config values from an INI section
func (cfg *Config) loadFromSection(sec *ini.Section) error {
	if sec == nil {
		return nil
	}

	str := func(name string, dst *string) {
		if sec.HasKey(name) {
			if v := sec.Key(name).String(); v != "" {
				*dst = v
			}
		}
	}

	// Directory paths
	str("Directory_prefix", &cfg.Prefix)
	str("Directory_distfiles", &cfg.DistFilesPath)
	str("Directory_logs", &cfg.LogsPath)
	str("Directory_clone", &cfg.ClonePath)

	// Binaries
	str("Binary_port", &cfg.PortBinary)
	str("Binary_sudo", &cfg.SudoBinary)
	str("Binary_git", &cfg.GitBinary)
	str("Binary_gh", &cfg.GhBinary)

	// Pull requests
	str("Upstream_repository", &cfg.UpstreamRepo)
	str("Base_branch", &cfg.BaseBranch)

	if sec.HasKey("Download_timeout") {
		d, err := time.ParseDuration(sec.Key("Download_timeout").String())
		if err != nil {
			return fmt.Errorf("invalid Download_timeout: %w", err)
		}
		cfg.DownloadTimeout = d
	}

	// Boolean options
	if sec.HasKey("Use_sudo") {
		cfg.UseSudo = parseBool(sec.Key("Use_sudo").String())
	}
	if sec.HasKey("Precise_patch") {
		cfg.PrecisePatch = parseBool(sec.Key("Precise_patch").String())
	}
	if sec.HasKey("Debug") {
		cfg.Debug = parseBool(sec.Key("Debug").String())
	}

	// Database settings
	str("Database_path", &cfg.Database.Path)
	return nil
}

func parseBool(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	switch strings.ToLower(s) {
	case "yes", "on":
		return true
	}
	return false
}
