package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	testSessionKey = "31337"
	testComponent  = "hooks"
	testAgent      = "claude-code"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty defaults to INFO", "", slog.LevelInfo},
		{"DEBUG lowercase", "debug", slog.LevelDebug},
		{"DEBUG uppercase", "DEBUG", slog.LevelDebug},
		{"INFO", "info", slog.LevelInfo},
		{"WARN", "WARN", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"ERROR", "error", slog.LevelError},
		{"surrounding space", "  debug ", slog.LevelDebug},
		{"invalid defaults to INFO", "verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLogLevel(tt.value); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// initForTest points the logger at a fresh state dir and restores globals afterwards.
func initForTest(t *testing.T, level string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(LogLevelEnvVar, level)
	SetLogLevelGetter(nil)
	t.Cleanup(func() {
		resetLogger()
		SetLogLevelGetter(nil)
	})
	if err := Init(dir, testSessionKey); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return dir
}

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()
	content, err := os.ReadFile(LogFilePath(dir, testSessionKey))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not valid JSON: %v\n%s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestInit_NoLevelWritesNothing(t *testing.T) {
	dir := initForTest(t, "")

	Error(context.Background(), "should be discarded")
	Close()

	if _, err := os.Stat(LogFilePath(dir, testSessionKey)); !os.IsNotExist(err) {
		t.Errorf("expected no log file without a configured level, stat err = %v", err)
	}
}

func TestInit_WritesJSONLogs(t *testing.T) {
	dir := initForTest(t, "INFO")

	Info(context.Background(), "test message", slog.String("key", "value"))
	Close()

	entries := readEntries(t, dir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e["msg"] != "test message" {
		t.Errorf("msg = %v", e["msg"])
	}
	if e["key"] != "value" {
		t.Errorf("key = %v", e["key"])
	}
	if e["session_key"] != testSessionKey {
		t.Errorf("session_key = %v", e["session_key"])
	}
	if _, ok := e["time"]; !ok {
		t.Error("expected time field")
	}
}

func TestInit_RespectsLogLevel(t *testing.T) {
	dir := initForTest(t, "WARN")

	ctx := context.Background()
	Debug(ctx, "debug message")
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Close()

	content, err := os.ReadFile(LogFilePath(dir, testSessionKey))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	s := string(content)
	if strings.Contains(s, "debug message") || strings.Contains(s, "info message") {
		t.Error("records below WARN should not be logged")
	}
	if !strings.Contains(s, "warn message") {
		t.Error("WARN record should be logged")
	}
}

func TestInit_LevelFromSettingsGetter(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LogLevelEnvVar, "")
	SetLogLevelGetter(func() string { return "debug" })
	t.Cleanup(func() {
		resetLogger()
		SetLogLevelGetter(nil)
	})

	if err := Init(dir, testSessionKey); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !DebugEnabled(context.Background()) {
		t.Error("DebugEnabled() = false, want true")
	}
	Debug(context.Background(), "from getter")
	Close()

	if entries := readEntries(t, dir); len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestInit_EnvOverridesGetter(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LogLevelEnvVar, "error")
	SetLogLevelGetter(func() string { return "debug" })
	t.Cleanup(func() {
		resetLogger()
		SetLogLevelGetter(nil)
	})

	if err := Init(dir, testSessionKey); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if DebugEnabled(context.Background()) {
		t.Error("env level ERROR should win over settings DEBUG")
	}
}

func TestInit_RejectsUnsafeSessionKey(t *testing.T) {
	t.Cleanup(resetLogger)
	if err := Init(t.TempDir(), "../../etc"); err == nil {
		t.Error("Init() should reject a key containing path separators")
	}
}

func TestInit_FallsBackToStderrOnError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LogLevelEnvVar, "info")
	t.Cleanup(resetLogger)

	// A directory occupying the log file path makes OpenFile fail.
	if err := os.MkdirAll(LogFilePath(dir, testSessionKey), 0o755); err != nil {
		t.Fatalf("creating blocking dir: %v", err)
	}
	if err := Init(dir, testSessionKey); err != nil {
		t.Errorf("Init() should not error, got %v", err)
	}
	Info(context.Background(), "fallback test")
}

func TestClose_SafeToCallMultipleTimes(_ *testing.T) {
	Close()
	Close()
}

func TestLogging_BeforeInit(_ *testing.T) {
	resetLogger()

	ctx := context.Background()
	Debug(ctx, "debug before init")
	Info(ctx, "info before init")
	Warn(ctx, "warn before init")
	Error(ctx, "error before init")
}

func TestLogging_IncludesContextValues(t *testing.T) {
	dir := initForTest(t, "info")

	ctx := context.Background()
	ctx = WithSessionKey(ctx, "ignored-global-wins")
	ctx = WithInvocation(ctx, "inv-1")
	ctx = WithComponent(ctx, testComponent)
	ctx = WithAgent(ctx, testAgent)
	ctx = WithHook(ctx, "post-write")

	Info(ctx, "context test message")
	Close()

	e := readEntries(t, dir)[0]
	want := map[string]string{
		"session_key":   testSessionKey,
		"invocation_id": "inv-1",
		"component":     testComponent,
		"agent":         testAgent,
		"hook":          "post-write",
	}
	for k, v := range want {
		if e[k] != v {
			t.Errorf("%s = %v, want %q", k, e[k], v)
		}
	}
}

func TestLogDuration(t *testing.T) {
	dir := initForTest(t, "debug")

	LogDuration(context.Background(), slog.LevelDebug, "hook completed", time.Now().Add(-25*time.Millisecond),
		slog.Bool("emitted", true),
	)
	Close()

	e := readEntries(t, dir)[0]
	d, ok := e["duration_ms"].(float64)
	if !ok || d < 25 {
		t.Errorf("duration_ms = %v, want >= 25", e["duration_ms"])
	}
	if e["emitted"] != true {
		t.Errorf("emitted = %v", e["emitted"])
	}
}
