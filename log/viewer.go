package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go-seaport/config"
)

// LogEntry describes a log file found in the logs directory
type LogEntry struct {
	Name    string // port name, or "seaport" for the structured log
	Path    string
	Size    int64
	ModTime time.Time
}

// ListLogs returns the logs under cfg.LogsPath, most recent first.
// A missing logs directory yields an empty list.
func ListLogs(cfg *config.Config) ([]LogEntry, error) {
	entries, err := os.ReadDir(cfg.LogsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read logs directory: %w", err)
	}

	var logs []LogEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".log")
		logs = append(logs, LogEntry{
			Name:    strings.ReplaceAll(name, "___", "/"),
			Path:    filepath.Join(cfg.LogsPath, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].ModTime.After(logs[j].ModTime)
	})
	return logs, nil
}

// ViewLog copies the transcript of a port (or "seaport" for the main log)
// to w.
func ViewLog(cfg *config.Config, name string, w io.Writer) error {
	path := CommandLogPath(cfg, name)
	if name == "seaport" {
		path = filepath.Join(cfg.LogsPath, LogFileName)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening log %s: %w", path, err)
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
