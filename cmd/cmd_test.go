package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-seaport/history"
	"go-seaport/port"
	"go-seaport/version"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"up to date", &version.UpToDateError{Name: "gping", Version: "1.0"}, 1},
		{"wrapped up to date", fmt.Errorf("clip: %w", &version.UpToDateError{Name: "gping", Version: "1.0"}), 1},
		{"declined", fmt.Errorf("wrapped: %w", port.ErrUserDeclined), 1},
		{"other", fmt.Errorf("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}

func TestPrintRecord(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var buf bytes.Buffer
	printRecord(&buf, &history.UpdateRecord{
		UUID:        "0123456789abcdef",
		Port:        "gping",
		OldVersion:  "1.3.2",
		NewVersion:  "1.4.0",
		Status:      history.StatusSubmitted,
		PullRequest: "https://github.com/macports/macports-ports/pull/7",
		StartTime:   start,
		EndTime:     start.Add(90 * time.Second),
	})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ngping 1.3.2 -> 1.4.0\n"))
	assert.Contains(t, out, "Run:         01234567\n")
	assert.Contains(t, out, "Started:     2026-01-02 03:04:05")
	assert.Contains(t, out, "Duration:    1m30s")
	assert.Contains(t, out, "pull/7")
	assert.NotContains(t, out, "Reason")
}

func TestVersionCommand(t *testing.T) {
	Version = "1.2.3"
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "seaport version 1.2.3\n", buf.String())
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"clip", "pr", "history", "logs", "init", "version", "completion"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	for _, flag := range []string{"bump", "url", "write", "test", "lint", "install", "relocate"} {
		assert.NotNil(t, clipCmd.Flags().Lookup(flag), "clip --%s", flag)
		assert.NotNil(t, prCmd.Flags().Lookup(flag), "pr --%s", flag)
	}
	assert.NotNil(t, prCmd.Flags().Lookup("new"))
	assert.NotNil(t, rootCmd.PersistentFlags().ShorthandLookup("C"))
}
