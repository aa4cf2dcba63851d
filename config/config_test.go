package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"false lowercase", "false", false},
		{"yes lowercase", "yes", true},
		{"Yes capitalized", "Yes", true},
		{"YES uppercase", "YES", true},
		{"no lowercase", "no", false},
		{"1 as string", "1", true},
		{"0 as string", "0", false},
		{"on lowercase", "on", true},
		{"ON uppercase", "ON", true},
		{"off lowercase", "off", false},
		{"random string", "random", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseBool(tt.input)
			if result != tt.expected {
				t.Errorf("parseBool(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Prefix != "/opt/local" {
		t.Errorf("Prefix = %q, want /opt/local", cfg.Prefix)
	}
	if cfg.PortBinary != "/opt/local/bin/port" {
		t.Errorf("PortBinary = %q, want /opt/local/bin/port", cfg.PortBinary)
	}
	if cfg.DistFilesPath != "/opt/local/var/macports/distfiles" {
		t.Errorf("DistFilesPath = %q", cfg.DistFilesPath)
	}
	if cfg.UpstreamRepo != "macports/macports-ports" {
		t.Errorf("UpstreamRepo = %q", cfg.UpstreamRepo)
	}
	if cfg.BaseBranch != "master" {
		t.Errorf("BaseBranch = %q, want master", cfg.BaseBranch)
	}
	if !cfg.UseSudo {
		t.Error("UseSudo = false, want true")
	}
	if cfg.PrecisePatch {
		t.Error("PrecisePatch = true, want false")
	}
	if cfg.DownloadTimeout != 5*time.Minute {
		t.Errorf("DownloadTimeout = %v, want 5m", cfg.DownloadTimeout)
	}
	if filepath.Base(cfg.Database.Path) != "history.db" {
		t.Errorf("Database.Path = %q, want .../history.db", cfg.Database.Path)
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ConfigFileName)

	configContent := `[Global Configuration]
profile_selected=work
Directory_logs=/global/logs
Use_sudo=yes

[work]
Directory_prefix=/usr/local/macports
Directory_clone=/src/ports
Upstream_repository=me/macports-ports
Base_branch=main
Download_timeout=30s
Use_sudo=no
Precise_patch=yes
Database_path=/tmp/seaport.db
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(tempDir, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Profile != "work" {
		t.Errorf("Profile = %q, want work", cfg.Profile)
	}
	if cfg.Prefix != "/usr/local/macports" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
	if cfg.PortBinary != "/usr/local/macports/bin/port" {
		t.Errorf("PortBinary = %q, want derived from prefix", cfg.PortBinary)
	}
	if cfg.DistFilesPath != "/usr/local/macports/var/macports/distfiles" {
		t.Errorf("DistFilesPath = %q", cfg.DistFilesPath)
	}
	if cfg.LogsPath != "/global/logs" {
		t.Errorf("LogsPath = %q, want value from global section", cfg.LogsPath)
	}
	if cfg.ClonePath != "/src/ports" {
		t.Errorf("ClonePath = %q", cfg.ClonePath)
	}
	if cfg.UpstreamRepo != "me/macports-ports" {
		t.Errorf("UpstreamRepo = %q", cfg.UpstreamRepo)
	}
	if cfg.BaseBranch != "main" {
		t.Errorf("BaseBranch = %q", cfg.BaseBranch)
	}
	if cfg.DownloadTimeout != 30*time.Second {
		t.Errorf("DownloadTimeout = %v", cfg.DownloadTimeout)
	}
	if cfg.UseSudo {
		t.Error("UseSudo = true, profile should override global")
	}
	if !cfg.PrecisePatch {
		t.Error("PrecisePatch = false, want true")
	}
	if cfg.Database.Path != "/tmp/seaport.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestConfig_ExplicitProfile(t *testing.T) {
	tempDir := t.TempDir()
	configContent := `[Global Configuration]
profile_selected=home

[home]
Base_branch=home-branch

[ci]
Base_branch=ci-branch
`
	if err := os.WriteFile(filepath.Join(tempDir, ConfigFileName), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(tempDir, "ci")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Profile != "ci" {
		t.Errorf("Profile = %q, want ci", cfg.Profile)
	}
	if cfg.BaseBranch != "ci-branch" {
		t.Errorf("BaseBranch = %q, want ci-branch", cfg.BaseBranch)
	}
}

func TestConfig_InvalidTimeout(t *testing.T) {
	tempDir := t.TempDir()
	configContent := "[Global Configuration]\nDownload_timeout=soon\n"
	if err := os.WriteFile(filepath.Join(tempDir, ConfigFileName), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(tempDir, ""); err == nil {
		t.Fatal("expected error for invalid Download_timeout")
	}
}

func TestConfig_MissingProfileSection(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, ConfigFileName), []byte("[Global Configuration]\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(tempDir, "nonexistent")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseBranch != "master" {
		t.Errorf("BaseBranch = %q, want default master", cfg.BaseBranch)
	}
}
