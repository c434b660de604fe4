package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/yildizm/PneumoDetect/internal/config"
)

func TestUseColor(t *testing.T) {
	t.Cleanup(func() { globalConfig = nil })

	tests := []struct {
		mode     string
		noColor  string
		expected bool
	}{
		{"always", "", true},
		{"never", "", false},
		{"auto", "", false}, // a buffer is not a terminal
		{"always", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			cfg := config.DefaultConfig()
			cfg.Output.ColorMode = tt.mode
			globalConfig = cfg

			if got := useColor(&bytes.Buffer{}); got != tt.expected {
				t.Errorf("Expected useColor=%v for %s, got %v", tt.expected, tt.mode, got)
			}
		})
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pneumodetect.log")

	w, closeLog, err := openLogFile(path)
	if err != nil {
		t.Fatalf("Failed to open log file: %v", err)
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("Expected log content, got %q", string(data))
	}

	if _, closeNone, err := openLogFile(""); err != nil {
		t.Errorf("Expected no error for empty path, got %v", err)
	} else {
		closeNone()
	}
}
