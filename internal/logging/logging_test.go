package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRoutesByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	logger, cleanup, err := New(Options{Level: slog.LevelInfo, Info: &info, Error: &errs})
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("listed items", "count", 2)
	logger.Warn("quota close")
	logger.Error("write failed")

	if strings.Contains(info.String(), "hidden") {
		t.Error("debug record should be filtered at INFO")
	}
	if !strings.Contains(info.String(), "listed items") || !strings.Contains(info.String(), "quota close") {
		t.Errorf("info writer missing records: %q", info.String())
	}
	if strings.Contains(info.String(), "write failed") {
		t.Error("error record leaked to info writer")
	}
	if !strings.Contains(errs.String(), "write failed") {
		t.Errorf("error writer missing record: %q", errs.String())
	}
}

func TestWithAttrsKeepsRouting(t *testing.T) {
	var info, errs bytes.Buffer
	logger, _, err := New(Options{Level: slog.LevelDebug, Info: &info, Error: &errs})
	if err != nil {
		t.Fatal(err)
	}

	logger.With("component", "kv").WithGroup("op").Error("boom", "key", "rewear-items")

	if info.Len() != 0 {
		t.Errorf("expected nothing on info writer, got %q", info.String())
	}
	if !strings.Contains(errs.String(), "component=kv") {
		t.Errorf("expected attrs on error record, got %q", errs.String())
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewear.log")
	var info, errs bytes.Buffer
	logger, cleanup, err := New(Options{Level: slog.LevelInfo, Info: &info, Error: &errs, File: path})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("seeded", "count", 2)
	logger.Error("write failed")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "seeded") || !strings.Contains(string(data), "write failed") {
		t.Errorf("log file missing records: %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
