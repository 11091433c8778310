// File: internal/services/gemini/config.go
package gemini

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string

	// Transport Configuration
	Timeout time.Duration

	// Retry Configuration
	MaxAttempts    int
	InitialBackoff time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("GEMINI_BASE_URL is required")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial backoff must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://generativelanguage.googleapis.com/v1beta/models",
		Timeout:        2 * time.Minute,
		MaxAttempts:    3,
		InitialBackoff: 1000 * time.Millisecond,
	}
}
