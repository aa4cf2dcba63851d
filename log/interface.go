package log

import "fmt"

// LibraryLogger is a minimal interface for library packages that need to
// report progress without depending on a log file format or terminal.
//
// The port, checksums, portfile, version and forge packages only ever see
// this interface, so they stay usable from tests (MemoryLogger), quiet
// scripts (NoOpLogger) or the CLI (Logger).
type LibraryLogger interface {
	// Info logs progress the user normally wants to see (e.g., "Downloading ...")
	Info(format string, args ...any)

	// Debug logs diagnostics (command lines, raw output)
	Debug(format string, args ...any)

	// Warn logs non-fatal issues (a checksum not found in the Portfile)
	Warn(format string, args ...any)

	// Error logs failures the caller is about to return
	Error(format string, args ...any)
}

// NoOpLogger discards all log messages.
type NoOpLogger struct{}

func (NoOpLogger) Info(format string, args ...any)  {}
func (NoOpLogger) Debug(format string, args ...any) {}
func (NoOpLogger) Warn(format string, args ...any)  {}
func (NoOpLogger) Error(format string, args ...any) {}

// StdoutLogger prints all messages to stdout with severity prefix.
type StdoutLogger struct{}

func (StdoutLogger) Info(format string, args ...any) {
	fmt.Printf("[INFO] "+format+"\n", args...)
}

func (StdoutLogger) Debug(format string, args ...any) {
	fmt.Printf("[DEBUG] "+format+"\n", args...)
}

func (StdoutLogger) Warn(format string, args ...any) {
	fmt.Printf("[WARN] "+format+"\n", args...)
}

func (StdoutLogger) Error(format string, args ...any) {
	fmt.Printf("[ERROR] "+format+"\n", args...)
}

// OrNoOp returns l, or a NoOpLogger when l is nil.
func OrNoOp(l LibraryLogger) LibraryLogger {
	if l == nil {
		return NoOpLogger{}
	}
	return l
}
