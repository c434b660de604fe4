package api

import (
	"time"
)

// Config holds the remote analysis service settings
type Config struct {
	// BaseURL is the service root; /analyze and /history hang off it
	BaseURL string `json:"base_url"`

	// Timeout bounds each HTTP request
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the settings for a locally running service
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:5000",
		Timeout: 30 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return newError(KindConfiguration, "configure", "base URL is required")
	}
	if c.Timeout <= 0 {
		return newError(KindConfiguration, "configure", "timeout must be positive")
	}
	return nil
}
