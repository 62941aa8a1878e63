package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"animeseries/internal/config"
	"animeseries/internal/logging"
	"animeseries/internal/services"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from test")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello from test") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestNewForRunUsesRunFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewForRun(&cfg, "abc")
	if err != nil {
		t.Fatalf("NewForRun returned error: %v", err)
	}
	logger.Warn("run warning")

	if _, err := os.Stat(filepath.Join(cfg.Paths.LogDir, "run-abc.log")); err != nil {
		t.Fatalf("expected per-run log file: %v", err)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleLoggerCallerOnlyAtDebug(t *testing.T) {
	tests := []struct {
		level      string
		wantCaller bool
	}{
		{level: "info", wantCaller: false},
		{level: "debug", wantCaller: true},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "console.log")
			logger, err := logging.New(logging.Options{Format: "console", Level: tc.level, OutputPaths: []string{logPath}})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			logger.Info("caller check")
			content, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("read log file: %v", err)
			}
			if got := strings.Contains(string(content), ".go:"); got != tc.wantCaller {
				t.Fatalf("caller present = %v, want %v (%q)", got, tc.wantCaller, content)
			}
		})
	}
}

func TestConsolePrefixFromContext(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	base, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithExternalID(ctx, int64(16498))
	ctx = services.WithStage(ctx, "resolve-similarity")
	logger := logging.WithContext(ctx, logging.NewComponentLogger(base, "engine"))
	logger.Info("candidate scored", logging.Float64("overlap", 0.5))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "[engine #16498 resolve-similarity] candidate scored") {
		t.Fatalf("expected bracketed prefix, got %q", line)
	}
	if strings.Contains(line, "run_id=") {
		t.Fatalf("expected run_id hidden at info level, got %q", line)
	}
	if !strings.Contains(line, "overlap=0.5") {
		t.Fatalf("expected overlap attribute, got %q", line)
	}
}

func TestJSONLoggerIncludesContextFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	base, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithRunID(context.Background(), "run-2")
	ctx = services.WithExternalID(ctx, int64(5114))
	logging.WithContext(ctx, base).Info("linked")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload[logging.FieldRunID] != "run-2" {
		t.Fatalf("run_id = %v", payload[logging.FieldRunID])
	}
	if payload[logging.FieldExternalID] != float64(5114) {
		t.Fatalf("external_id = %v", payload[logging.FieldExternalID])
	}
	if payload["level"] != "info" {
		t.Fatalf("level = %v", payload["level"])
	}
}

type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func recordAttrs(r slog.Record) map[string]string {
	out := map[string]string{}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.String()
		return true
	})
	return out
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	h := &captureHandler{}
	logging.WarnWithContext(slog.New(h), "store lookup failed", "relation_lookup_failed",
		logging.String(logging.FieldImpact, "edge ignored"),
	)
	if len(h.records) != 1 {
		t.Fatalf("expected one record, got %d", len(h.records))
	}
	attrs := recordAttrs(h.records[0])
	if attrs[logging.FieldEventType] != "relation_lookup_failed" {
		t.Fatalf("event_type = %q", attrs[logging.FieldEventType])
	}
	if attrs[logging.FieldErrorHint] == "" {
		t.Fatal("expected default error_hint")
	}
	if attrs[logging.FieldImpact] != "edge ignored" {
		t.Fatalf("impact overridden: %q", attrs[logging.FieldImpact])
	}
}

func TestNilLoggersAreSafe(t *testing.T) {
	logging.WarnWithContext(nil, "x", "y")
	logging.ErrorWithContext(nil, "x", "y")
	logging.NewComponentLogger(nil, "c").Info("discarded")
	logging.WithContext(context.Background(), nil).Info("discarded")
}

func TestPruneRunLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "run-old.log")
	current := filepath.Join(dir, "run-current.log")
	shared := filepath.Join(dir, logging.LogFileName)
	for _, path := range []string{old, current, shared} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	past := time.Now().AddDate(0, 0, -30)
	for _, path := range []string{old, current, shared} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	removed := logging.PruneRunLogs(logging.NewNop(), dir, 7, current)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected old run log removed, stat err=%v", err)
	}
	for _, path := range []string{current, shared} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s kept: %v", path, err)
		}
	}
	if logging.PruneRunLogs(nil, dir, 0, "") != 0 {
		t.Fatal("expected retention 0 to disable pruning")
	}
}
