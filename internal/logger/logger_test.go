package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultIsNop(t *testing.T) {
	// Must not panic before Init.
	Debug("debug before init")
	Warn("warn before init", zap.String("k", "v"))
	Sync()
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	defer Use(zap.NewNop())

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
			excluded: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			cfg := FileConfig{
				Path:       logFile,
				MaxSizeMB:  1,
				MaxBackups: 1,
				MaxAgeDays: 1,
			}
			Use(New(tt.level, cfg, false))

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestUseObserver(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	Use(zap.New(core))
	defer Use(zap.NewNop())

	Info("ignored")
	Warn("unknown orientation", zap.Float64("value", 45))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Message != "unknown orientation" {
		t.Errorf("message = %q", entries[0].Message)
	}
	if v := entries[0].ContextMap()["value"]; v != 45.0 {
		t.Errorf("value field = %v", v)
	}
}

func TestNewWithoutOutputs(t *testing.T) {
	l := New("info", FileConfig{}, false)
	if l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without outputs should be a no-op")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/windsway.log")

	if cfg.Path != "/tmp/windsway.log" {
		t.Errorf("expected path /tmp/windsway.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 10 {
		t.Errorf("expected MaxSizeMB 10, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
