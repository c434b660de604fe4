package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/PneumoDetect/internal/config"
	"github.com/yildizm/PneumoDetect/internal/emoji"
)

// execute runs the root command with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldCfgFile, oldVerbose, oldNoColor := cfgFile, verbose, noColor
	t.Cleanup(func() {
		cfgFile, verbose, noColor = oldCfgFile, oldVerbose, oldNoColor
		globalConfig = nil
		emoji.SetEmojiDisabled(false)
	})

	cmd := NewRootCommand("1.2.3", "abc123", "2024-03-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Failed to run version: %v", err)
	}
	if !strings.Contains(out, "PneumoDetect 1.2.3 (abc123) built on 2024-03-01") {
		t.Errorf("Expected version line, got %q", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "pneumodetect.yaml")

	out, err := execute(t, "config", "init", "--minimal", "--path", path)
	if err != nil {
		t.Fatalf("Failed to run config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("Expected created path in output, got %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}

	if _, err := execute(t, "config", "init", "--path", path); err == nil {
		t.Error("Expected error when the file exists without --force")
	}

	out, err = execute(t, "--no-emoji", "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("Failed to validate generated config: %v", err)
	}
	if !strings.Contains(out, "[OK] Configuration is valid") || !strings.Contains(out, "API URL: ") {
		t.Errorf("Expected validation summary, got %q", out)
	}
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output:\n  default_format: \"xml\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	out, err := execute(t, "--config", path, "config", "validate")
	if err == nil {
		t.Fatal("Expected validation error, got none")
	}
	if !strings.Contains(out, "Configuration validation failed") {
		t.Errorf("Expected failure message, got %q", out)
	}
}

func TestConfigShowJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: \"http://scanner:5000\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	out, err := execute(t, "--config", path, "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("Failed to run config show: %v", err)
	}
	if !strings.Contains(out, `"base_url": "http://scanner:5000"`) {
		t.Errorf("Expected configured base URL, got %q", out)
	}
}

func TestGlobalFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  language: \"en\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := execute(t, "--config", path, "--lang", "vi", "--api-url", "http://10.0.0.2:5000", "version"); err != nil {
		t.Fatalf("Failed to run with flags: %v", err)
	}

	cfg := GetGlobalConfig()
	if cfg.UI.Language != "vi" {
		t.Errorf("Expected language from flag, got %s", cfg.UI.Language)
	}
	if cfg.API.BaseURL != "http://10.0.0.2:5000" {
		t.Errorf("Expected base URL from flag, got %s", cfg.API.BaseURL)
	}
	if tr := newTranslator(); tr.Language() != "vi" {
		t.Errorf("Expected vi translator, got %s", tr.Language())
	}
}

func TestInvalidFlagValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yaml")
	if err := os.WriteFile(path, []byte("version: \"1.0\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := execute(t, "--config", path, "--output", "xml", "version")
	if err == nil || !strings.Contains(err.Error(), "invalid flags") {
		t.Errorf("Expected invalid flags error, got %v", err)
	}
}

func TestConfigPathListsEnvVars(t *testing.T) {
	out, err := execute(t, "config", "path", "--env")
	if err != nil {
		t.Fatalf("Failed to run config path: %v", err)
	}
	for _, want := range []string{"search paths", "PNEUMODETECT_API_BASE_URL", "PNEUMODETECT_WATCH_DEBOUNCE"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}
}

func TestWriteSampleConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	written, err := writeSampleConfig(path, false, false)
	if err != nil {
		t.Fatalf("Failed to write sample config: %v", err)
	}
	if written != path {
		t.Errorf("Expected %s, got %s", path, written)
	}

	if _, err := writeSampleConfig(path, true, false); err == nil {
		t.Error("Expected error for existing file without --force")
	}
	if _, err := writeSampleConfig(path, true, true); err != nil {
		t.Errorf("Expected --force to overwrite, got %v", err)
	}
}

func TestEncodeConfigRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := encodeConfig(&buf, config.DefaultConfig(), "toml"); err == nil {
		t.Error("Expected error for unsupported format")
	}

	buf.Reset()
	if err := encodeConfig(&buf, config.DefaultConfig(), "yaml"); err != nil {
		t.Fatalf("Failed to encode yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "timeout: 30s") {
		t.Errorf("Expected durations as strings, got %q", buf.String())
	}
}
