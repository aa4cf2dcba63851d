package log

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-seaport/config"
)

func TestCommandLog_Transcript(t *testing.T) {
	cfg := &config.Config{LogsPath: filepath.Join(t.TempDir(), "logs")}

	cl := NewCommandLog(cfg, "py-commitizen")
	cl.WriteHeader("run-1")
	cl.WritePhase("fetch")
	cl.WriteCommand("port info --index py-commitizen")
	fmt.Fprintf(cl, "py-commitizen @2.17.12 (python)\n")
	cl.WriteWarning("using last subport")
	cl.WriteError("lint failed")
	cl.WriteResult(2*time.Second, "")
	cl.Close()

	content, err := os.ReadFile(filepath.Join(cfg.LogsPath, "py-commitizen.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	text := string(content)
	for _, want := range []string{
		"Update Log: py-commitizen",
		"Run: run-1",
		"Phase: fetch",
		">>> port info --index py-commitizen",
		"py-commitizen @2.17.12 (python)",
		"WARNING: using last subport",
		"ERROR: lint failed",
		"UPDATE SUCCESS",
		"Duration: 2s",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}

func TestCommandLog_Failure(t *testing.T) {
	cfg := &config.Config{LogsPath: t.TempDir()}
	cl := NewCommandLog(cfg, "gping")
	cl.WriteResult(time.Second, "checksums unresolvable")
	cl.Close()

	content, _ := os.ReadFile(CommandLogPath(cfg, "gping"))
	if !strings.Contains(string(content), "UPDATE FAILED") ||
		!strings.Contains(string(content), "Reason: checksums unresolvable") {
		t.Errorf("failure banner missing: %q", content)
	}
}

func TestCommandLog_NoFileIsNoOp(t *testing.T) {
	cl := &CommandLog{port: "gping"}
	cl.WriteHeader("x")
	cl.WriteCommand("true")
	n, err := cl.Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Errorf("Write on closed log = (%d, %v), want (3, nil)", n, err)
	}
	cl.Close()
}

func TestListAndViewLogs(t *testing.T) {
	cfg := &config.Config{LogsPath: t.TempDir()}

	old := NewCommandLog(cfg, "gping")
	old.WriteHeader("a")
	old.Close()
	past := time.Now().Add(-time.Hour)
	os.Chtimes(CommandLogPath(cfg, "gping"), past, past)

	recent := NewCommandLog(cfg, "py-commitizen")
	recent.WriteHeader("b")
	recent.Close()

	os.WriteFile(filepath.Join(cfg.LogsPath, "notes.txt"), []byte("x"), 0644)

	logs, err := ListLogs(cfg)
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	if logs[0].Name != "py-commitizen" || logs[1].Name != "gping" {
		t.Errorf("logs not sorted by recency: %+v", logs)
	}

	var buf bytes.Buffer
	if err := ViewLog(cfg, "gping", &buf); err != nil {
		t.Fatalf("ViewLog failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Update Log: gping") {
		t.Errorf("unexpected log content: %q", buf.String())
	}

	if err := ViewLog(cfg, "missing", &buf); err == nil {
		t.Error("expected error for missing log")
	}
}

func TestListLogs_MissingDirectory(t *testing.T) {
	cfg := &config.Config{LogsPath: filepath.Join(t.TempDir(), "absent")}
	logs, err := ListLogs(cfg)
	if err != nil || len(logs) != 0 {
		t.Errorf("ListLogs = (%v, %v), want empty", logs, err)
	}
}
