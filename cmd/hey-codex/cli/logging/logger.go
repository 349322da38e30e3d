// Package logging provides structured logging for hey-codex using slog.
//
// Hooks run once per host event, so the log is opt-in: nothing is written
// unless a level is configured through HEY_CODEX_LOG_LEVEL or settings.
//
// Usage:
//
//	if err := logging.Init(stateDir, sessionKey); err != nil {
//	    // handle error
//	}
//	defer logging.Close()
//
//	ctx = logging.WithInvocation(ctx, invocationID)
//	ctx = logging.WithHook(ctx, "pre-write")
//
//	logging.Debug(ctx, "path classified",
//	    slog.String("tier", c.Tier.String()),
//	)
package logging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/heycodex/cli/cmd/hey-codex/cli/validation"
)

// LogLevelEnvVar is the environment variable that controls log level.
const LogLevelEnvVar = "HEY_CODEX_LOG_LEVEL"

// LogFilePrefix prefixes log file names in the state directory.
const LogFilePrefix = "hey-codex-"

var (
	logger *slog.Logger

	logFile      *os.File
	logBufWriter *bufio.Writer

	// currentSessionKey is attached to every record written after Init.
	currentSessionKey string

	// mu protects logger, logFile, logBufWriter and currentSessionKey
	mu sync.RWMutex

	// logLevelGetter supplies the settings level when the env var is unset.
	logLevelGetter func() string
)

// SetLogLevelGetter sets a callback returning the log level from settings.
// It is consulted only when HEY_CODEX_LOG_LEVEL is unset.
func SetLogLevelGetter(getter func() string) {
	mu.Lock()
	defer mu.Unlock()
	logLevelGetter = getter
}

// Init configures the logger for one hook invocation. With no level
// configured every record is discarded. Otherwise JSON records are appended
// to <stateDir>/hey-codex-<sessionKey>.log, falling back to stderr when the
// file cannot be opened.
func Init(stateDir, sessionKey string) error {
	if err := validation.ValidateSessionKey(sessionKey); err != nil {
		return fmt.Errorf("invalid session key for logging: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()

	levelStr := os.Getenv(LogLevelEnvVar)
	if levelStr == "" && logLevelGetter != nil {
		levelStr = logLevelGetter()
	}
	currentSessionKey = sessionKey

	if strings.TrimSpace(levelStr) == "" {
		logger = slog.New(slog.DiscardHandler)
		return nil
	}

	if !isValidLogLevel(levelStr) {
		fmt.Fprintf(os.Stderr, "[hey-codex] Warning: invalid log level %q, defaulting to INFO\n", levelStr)
	}
	level := parseLogLevel(levelStr)

	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		logger = createLogger(os.Stderr, level)
		return nil
	}

	path := LogFilePath(stateDir, sessionKey)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // sessionKey validated above
	if err != nil {
		logger = createLogger(os.Stderr, level)
		return nil
	}

	logFile = f
	logBufWriter = bufio.NewWriterSize(f, 8192)
	logger = createLogger(logBufWriter, level)
	return nil
}

// LogFilePath returns the log file used for sessionKey under stateDir.
func LogFilePath(stateDir, sessionKey string) string {
	return filepath.Join(stateDir, LogFilePrefix+sessionKey+".log")
}

// Close flushes and closes the log file. Safe to call multiple times.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	currentSessionKey = ""
}

func closeFileLocked() {
	if logBufWriter != nil {
		_ = logBufWriter.Flush()
		logBufWriter = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// resetLogger resets the logger to nil (for testing).
func resetLogger() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logger = nil
	currentSessionKey = ""
}

// getLogger returns the current logger, or the slog default before Init.
func getLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if logger == nil {
		return slog.Default()
	}
	return logger
}

func getSessionKey() string {
	mu.RLock()
	defer mu.RUnlock()
	return currentSessionKey
}

func createLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// parseLogLevel parses a log level string to slog.Level.
// Returns slog.LevelInfo for empty or invalid values.
func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isValidLogLevel(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR", "":
		return true
	default:
		return false
	}
}

// DebugEnabled reports whether DEBUG records would be written.
// Callers use it to skip building expensive attributes.
func DebugEnabled(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return getLogger().Enabled(ctx, slog.LevelDebug)
}

// Debug logs at DEBUG level with context values automatically extracted.
func Debug(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs at INFO level with context values automatically extracted.
func Info(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs at WARN level with context values automatically extracted.
func Warn(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs at ERROR level with context values automatically extracted.
func Error(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelError, msg, attrs...)
}

// LogDuration logs msg with duration_ms measured from start.
//
//	defer logging.LogDuration(ctx, slog.LevelDebug, "hook completed", time.Now())
func LogDuration(ctx context.Context, level slog.Level, msg string, start time.Time, attrs ...any) {
	all := make([]any, 0, len(attrs)+1)
	all = append(all, slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	all = append(all, attrs...)
	log(ctx, level, msg, all...)
}

func log(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	l := getLogger()

	var all []any
	globalKey := getSessionKey()
	if globalKey != "" {
		all = append(all, slog.String("session_key", globalKey))
	}
	for _, a := range attrsFromContext(ctx, globalKey) {
		all = append(all, a)
	}
	all = append(all, attrs...)

	l.Log(context.Background(), level, msg, all...)
}

// attrsFromContext extracts logging attributes from ctx. session_key is
// skipped when Init already set one.
func attrsFromContext(ctx context.Context, globalKey string) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	add := func(key contextKey, name string) {
		if s, ok := ctx.Value(key).(string); ok && s != "" {
			attrs = append(attrs, slog.String(name, s))
		}
	}

	if globalKey == "" {
		add(sessionKeyKey, "session_key")
	}
	add(invocationIDKey, "invocation_id")
	add(componentKey, "component")
	add(agentKey, "agent")
	add(hookKey, "hook")

	return attrs
}
