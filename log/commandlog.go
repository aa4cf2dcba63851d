package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go-seaport/config"
)

// CommandLog records the transcript of one seaport run for a port: every
// external command executed, its output, and the phase it belonged to.
// It implements io.Writer so command output can be streamed into it.
type CommandLog struct {
	port string
	file *os.File
	mu   sync.Mutex
}

// CommandLogPath returns the transcript path for a port
func CommandLogPath(cfg *config.Config, port string) string {
	name := strings.ReplaceAll(port, "/", "___") + ".log"
	return filepath.Join(cfg.LogsPath, name)
}

// NewCommandLog creates (truncating) the transcript for a port. A transcript
// that cannot be created degrades to a no-op log with a warning on stderr.
func NewCommandLog(cfg *config.Config, port string) *CommandLog {
	if err := os.MkdirAll(cfg.LogsPath, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create logs directory: %v\n", err)
		return &CommandLog{port: port}
	}

	file, err := os.Create(CommandLogPath(cfg, port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create command log: %v\n", err)
		return &CommandLog{port: port}
	}

	return &CommandLog{port: port, file: file}
}

// Close closes the transcript
func (cl *CommandLog) Close() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.file != nil {
		cl.file.Close()
		cl.file = nil
	}
}

func (cl *CommandLog) printf(format string, args ...any) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.file == nil {
		return
	}
	fmt.Fprintf(cl.file, format, args...)
	cl.file.Sync()
}

// WriteHeader writes the transcript header
func (cl *CommandLog) WriteHeader(runID string) {
	rule := strings.Repeat("=", 70)
	cl.printf("%s\nUpdate Log: %s\nRun: %s\nStarted: %s\n%s\n\n",
		rule, cl.port, runID, time.Now().Format(time.RFC3339), rule)
}

// WritePhase writes a phase header (resolve, fetch, patch, lint, ...)
func (cl *CommandLog) WritePhase(phase string) {
	rule := strings.Repeat("-", 70)
	cl.printf("\n%s\nPhase: %s\nTime: %s\n%s\n\n", rule, phase, time.Now().Format("15:04:05"), rule)
}

// Write appends raw command output
func (cl *CommandLog) Write(p []byte) (int, error) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.file == nil {
		return len(p), nil
	}
	return cl.file.Write(p)
}

// WriteCommand writes a command line about to be executed
func (cl *CommandLog) WriteCommand(cmd string) {
	cl.printf(">>> %s\n", cmd)
}

// WriteWarning writes a warning message
func (cl *CommandLog) WriteWarning(msg string) {
	cl.printf("WARNING: %s\n", msg)
}

// WriteError writes an error message
func (cl *CommandLog) WriteError(msg string) {
	cl.printf("ERROR: %s\n", msg)
}

// WriteResult writes the closing banner. An empty reason means success.
func (cl *CommandLog) WriteResult(duration time.Duration, reason string) {
	rule := strings.Repeat("=", 70)
	status := "UPDATE SUCCESS"
	if reason != "" {
		status = "UPDATE FAILED\nReason: " + reason
	}
	cl.printf("\n%s\n%s\nCompleted: %s\nDuration: %s\n%s\n",
		rule, status, time.Now().Format(time.RFC3339), duration, rule)
}
