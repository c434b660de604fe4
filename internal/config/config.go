package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version    string           `yaml:"version" json:"version"`
	API        APIConfig        `yaml:"api" json:"api"`
	UI         UIConfig         `yaml:"ui" json:"ui"`
	Upload     UploadConfig     `yaml:"upload" json:"upload"`
	Storage    StorageConfig    `yaml:"storage" json:"storage"`
	Output     OutputConfig     `yaml:"output" json:"output"`
	Watch      WatchConfig      `yaml:"watch" json:"watch"`
	MockServer MockServerConfig `yaml:"mock_server" json:"mock_server"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}

// APIConfig configures the remote analysis service
type APIConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"` // service root, /analyze and /history hang off it
	Timeout time.Duration `yaml:"timeout" json:"timeout"`   // per-request timeout
}

// UIConfig configures the interactive interface
type UIConfig struct {
	Language      string        `yaml:"language" json:"language"`             // en|vi
	Theme         string        `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	ToastDuration time.Duration `yaml:"toast_duration" json:"toast_duration"` // how long notifications stay
}

// UploadConfig configures image selection
type UploadConfig struct {
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"` // bytes
}

// StorageConfig configures local scratch files
type StorageConfig struct {
	PreviewDir  string `yaml:"preview_dir" json:"preview_dir"`   // temporary preview files
	DownloadDir string `yaml:"download_dir" json:"download_dir"` // where "download" saves image copies
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat   string `yaml:"default_format" json:"default_format"`     // json|text|markdown|csv
	ColorMode       string `yaml:"color_mode" json:"color_mode"`             // auto|always|never
	Verbose         bool   `yaml:"verbose" json:"verbose"`                   // default verbosity
	TimestampFormat string `yaml:"timestamp_format" json:"timestamp_format"` // time format string
}

// WatchConfig configures directory watching
type WatchConfig struct {
	Extensions []string      `yaml:"extensions" json:"extensions"` // file extensions picked up
	Debounce   time.Duration `yaml:"debounce" json:"debounce"`     // quiet period before a file is analyzed
}

// MockServerConfig configures the development backend
type MockServerConfig struct {
	Addr    string        `yaml:"addr" json:"addr"`
	Seed    int64         `yaml:"seed" json:"seed"`       // 0 picks a time-based seed
	Latency time.Duration `yaml:"latency" json:"latency"` // simulated inference delay
}

// LoggingConfig configures where diagnostics go
type LoggingConfig struct {
	File string `yaml:"file" json:"file"` // log file used while the TUI owns the terminal
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			Language:      "en",
			Theme:         "default",
			ToastDuration: 5 * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSize: 10 * 1024 * 1024,
		},
		Storage: StorageConfig{
			PreviewDir:  "",
			DownloadDir: "~/Downloads",
		},
		Output: OutputConfig{
			DefaultFormat:   "text",
			ColorMode:       "auto",
			Verbose:         false,
			TimestampFormat: "2006-01-02 15:04:05",
		},
		Watch: WatchConfig{
			Extensions: []string{".jpg", ".jpeg", ".png"},
			Debounce:   500 * time.Millisecond,
		},
		MockServer: MockServerConfig{
			Addr:    ":5000",
			Seed:    0,
			Latency: 1500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			File: "~/.cache/pneumodetect/pneumodetect.log",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPIConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateUploadConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateWatchConfig(); err != nil {
		return err
	}
	return nil
}

// validateAPIConfig validates the remote service settings
func (c *Config) validateAPIConfig() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base_url: %s (must be an http or https URL)", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	return nil
}

// validateUIConfig validates interface settings
func (c *Config) validateUIConfig() error {
	if c.UI.Language != "" {
		validLanguages := map[string]bool{
			"en": true,
			"vi": true,
		}
		if !validLanguages[c.UI.Language] {
			return fmt.Errorf("invalid language: %s (must be one of: en, vi)", c.UI.Language)
		}
	}
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.ToastDuration < 0 {
		return fmt.Errorf("toast_duration must be non-negative")
	}
	return nil
}

// validateUploadConfig validates image selection limits
func (c *Config) validateUploadConfig() error {
	if c.Upload.MaxFileSize < 1 {
		return fmt.Errorf("max_file_size must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateWatchConfig validates directory watching settings
func (c *Config) validateWatchConfig() error {
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("debounce must be non-negative")
	}
	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid watch extension: %s (must start with a dot)", ext)
		}
	}
	return nil
}
