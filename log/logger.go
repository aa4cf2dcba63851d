package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"go-seaport/config"
)

// Compile-time interface checks
var (
	_ LibraryLogger = (*Logger)(nil)
	_ LibraryLogger = (*ContextLogger)(nil)
)

// LogFileName is the structured log written under Config.LogsPath.
const LogFileName = "seaport.log"

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	debugStyle   = lipgloss.NewStyle().Faint(true)
)

// Logger writes JSON records to the seaport log file and styled lines to
// the console. Debug lines only reach the console in debug mode.
type Logger struct {
	file    *os.File
	zl      zerolog.Logger
	console io.Writer
	debug   bool
	mu      sync.Mutex
}

// LogContext provides metadata for contextual logging
type LogContext struct {
	RunID string // Update run UUID (full or short)
	Port  string // Port name (e.g., "gping")
}

// ContextLogger wraps Logger with context metadata for enriched log entries
type ContextLogger struct {
	logger *Logger
	zl     zerolog.Logger
}

// NewLogger opens (appending) the log file under cfg.LogsPath.
func NewLogger(cfg *config.Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogsPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	path := filepath.Join(cfg.LogsPath, LogFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriterLogger(file, os.Stderr, cfg.Debug)
	l.file = file
	return l, nil
}

// NewWriterLogger builds a Logger over arbitrary writers. The file writer
// receives every record, the console writer the human-readable lines.
func NewWriterLogger(records, console io.Writer, debug bool) *Logger {
	zl := zerolog.New(records).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return &Logger{zl: zl, console: console, debug: debug}
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) print(style lipgloss.Style, msg string) {
	if l.console == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, style.Render(msg))
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zl.Info().Msg(msg)
	l.print(infoStyle, msg)
}

// Success logs a completed step, rendered green on the console
func (l *Logger) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zl.Info().Bool("success", true).Msg(msg)
	l.print(successStyle, msg)
}

// Debug logs debug information
func (l *Logger) Debug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zl.Debug().Msg(msg)
	if l.debug {
		l.print(debugStyle, msg)
	}
}

// Warn logs a warning message (non-fatal issues)
func (l *Logger) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zl.Warn().Msg(msg)
	l.print(warnStyle, msg)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zl.Error().Msg(msg)
	l.print(errorStyle, msg)
}

// Plain prints an unstyled console line and records it at info level.
func (l *Logger) Plain(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zl.Info().Msg(msg)
	l.print(lipgloss.NewStyle(), msg)
}

// WithContext creates a ContextLogger whose file records carry the run id
// and port name. The RunID is truncated to 8 characters.
//
// Example:
//
//	ctxLogger := logger.WithContext(log.LogContext{RunID: id, Port: "gping"})
//	ctxLogger.Info("Resolving version")
func (l *Logger) WithContext(ctx LogContext) *ContextLogger {
	shortID := ctx.RunID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	zc := l.zl.With()
	if shortID != "" {
		zc = zc.Str("run", shortID)
	}
	if ctx.Port != "" {
		zc = zc.Str("port", ctx.Port)
	}
	return &ContextLogger{logger: l, zl: zc.Logger()}
}

// Info logs an informational message with context
func (cl *ContextLogger) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	cl.zl.Info().Msg(msg)
	cl.logger.print(infoStyle, msg)
}

// Success logs a completed step with context
func (cl *ContextLogger) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	cl.zl.Info().Bool("success", true).Msg(msg)
	cl.logger.print(successStyle, msg)
}

// Plain prints an unstyled console line with context
func (cl *ContextLogger) Plain(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	cl.zl.Info().Msg(msg)
	cl.logger.print(lipgloss.NewStyle(), msg)
}

// Debug logs debug information with context
func (cl *ContextLogger) Debug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	cl.zl.Debug().Msg(msg)
	if cl.logger.debug {
		cl.logger.print(debugStyle, msg)
	}
}

// Warn logs a warning message with context
func (cl *ContextLogger) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	cl.zl.Warn().Msg(msg)
	cl.logger.print(warnStyle, msg)
}

// Error logs an error message with context
func (cl *ContextLogger) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	cl.zl.Error().Msg(msg)
	cl.logger.print(errorStyle, msg)
}

// Elapsed logs how long an operation took, at debug level.
func (cl *ContextLogger) Elapsed(start time.Time, operation string) {
	cl.zl.Debug().Str("operation", operation).Dur("duration", time.Since(start)).Msg("operation completed")
}
