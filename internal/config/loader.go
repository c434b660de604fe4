package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths lists the config files searched when no --config is given, highest priority first
var ConfigPaths = []string{
	"./.pneumodetect.yaml",
	"~/.config/pneumodetect/config.yaml",
	"/etc/pneumodetect/config.yaml",
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "PNEUMODETECT_"

// Loader builds a Config from defaults, config files and the environment
type Loader struct {
	configPaths []string
	warn        func(format string, args ...interface{})
}

// NewLoader creates a loader over ConfigPaths that reports unreadable files on stderr
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// LoadConfig resolves the configuration. Sources are layered lowest first:
// built-in defaults, then either customPath alone or every existing file in
// the search paths, then PNEUMODETECT_* variables. Flags are applied by the
// caller on top of the result.
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	cfg := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := loadFile(cfg, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := ExpandPath(l.configPaths[i])
			if !fileExists(path) {
				continue
			}
			// a broken file lower in the stack should not block the others
			if err := loadFile(cfg, path); err != nil {
				l.warn("Failed to load config from %s: %v", path, err)
			}
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	// #nosec G304 - path is either validated by validateConfigPath or one of ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return overlay(cfg, data)
}

// overlay decodes YAML on top of cfg. Keys missing from data keep their
// current value, so an explicit `verbose: false` can override a lower layer.
// cfg is left untouched when data does not parse.
func overlay(cfg *Config, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	next := *cfg
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	*cfg = next
	return nil
}

// envBinding maps one PNEUMODETECT_* variable onto a config field
type envBinding struct {
	name string
	set  func(cfg *Config, value string) error
}

func envString(field func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		*field(cfg) = v
		return nil
	}
}

func envDuration(field func(*Config) *time.Duration) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		return parseDuration(v, field(cfg))
	}
}

func envInt64(field func(*Config) *int64) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		return parseInt64(v, field(cfg))
	}
}

func envBool(field func(*Config) *bool) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		return parseBool(v, field(cfg))
	}
}

// envList splits a comma separated value, dropping empty entries
func envList(field func(*Config) *[]string) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		var items []string
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*field(cfg) = items
		return nil
	}
}

var envBindings = []envBinding{
	{"API_BASE_URL", envString(func(c *Config) *string { return &c.API.BaseURL })},
	{"API_TIMEOUT", envDuration(func(c *Config) *time.Duration { return &c.API.Timeout })},

	{"UI_LANGUAGE", envString(func(c *Config) *string { return &c.UI.Language })},
	{"UI_THEME", envString(func(c *Config) *string { return &c.UI.Theme })},
	{"UI_TOAST_DURATION", envDuration(func(c *Config) *time.Duration { return &c.UI.ToastDuration })},

	{"UPLOAD_MAX_FILE_SIZE", envInt64(func(c *Config) *int64 { return &c.Upload.MaxFileSize })},

	{"STORAGE_PREVIEW_DIR", envString(func(c *Config) *string { return &c.Storage.PreviewDir })},
	{"STORAGE_DOWNLOAD_DIR", envString(func(c *Config) *string { return &c.Storage.DownloadDir })},

	{"OUTPUT_DEFAULT_FORMAT", envString(func(c *Config) *string { return &c.Output.DefaultFormat })},
	{"OUTPUT_COLOR_MODE", envString(func(c *Config) *string { return &c.Output.ColorMode })},
	{"OUTPUT_VERBOSE", envBool(func(c *Config) *bool { return &c.Output.Verbose })},
	{"OUTPUT_TIMESTAMP_FORMAT", envString(func(c *Config) *string { return &c.Output.TimestampFormat })},

	{"WATCH_EXTENSIONS", envList(func(c *Config) *[]string { return &c.Watch.Extensions })},
	{"WATCH_DEBOUNCE", envDuration(func(c *Config) *time.Duration { return &c.Watch.Debounce })},

	{"MOCK_SERVER_ADDR", envString(func(c *Config) *string { return &c.MockServer.Addr })},
	{"MOCK_SERVER_SEED", envInt64(func(c *Config) *int64 { return &c.MockServer.Seed })},
	{"MOCK_SERVER_LATENCY", envDuration(func(c *Config) *time.Duration { return &c.MockServer.Latency })},

	{"LOGGING_FILE", envString(func(c *Config) *string { return &c.Logging.File })},
}

// applyEnvOverrides applies every set PNEUMODETECT_* variable. All bad values
// are reported together.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	var errs []error
	for _, b := range envBindings {
		name := EnvPrefix + b.name
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			continue
		}
		if err := b.set(cfg, value); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// EnvVarNames lists the supported environment variables
func EnvVarNames() []string {
	names := make([]string, len(envBindings))
	for i, b := range envBindings {
		names[i] = EnvPrefix + b.name
	}
	return names
}

// GetConfigPaths returns the search paths with ~ expanded
func GetConfigPaths() []string {
	paths := make([]string, len(ConfigPaths))
	for i, path := range ConfigPaths {
		paths[i] = ExpandPath(path)
	}
	return paths
}

// FindConfigFile returns the highest priority config file that exists
func FindConfigFile() (string, bool) {
	for _, path := range GetConfigPaths() {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

var blockedConfigPrefixes = []string{"/etc/passwd", "/etc/shadow", "/proc/", "/sys/"}

// validateConfigPath rejects traversal, non-YAML files and kernel or credential files
func validateConfigPath(path string) error {
	clean := filepath.Clean(path)
	if strings.Contains(clean, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	switch strings.ToLower(filepath.Ext(clean)) {
	case ".yaml", ".yml":
	default:
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	abs, err := filepath.Abs(clean)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	for _, prefix := range blockedConfigPrefixes {
		if strings.HasPrefix(abs, prefix) {
			return fmt.Errorf("access to system files not allowed")
		}
	}
	return nil
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func parseInt64(s string, dst *int64) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseBool(s string, dst *bool) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
