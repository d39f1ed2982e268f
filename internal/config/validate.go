package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	if c.OpenAI.TimeoutSeconds < 0 {
		return fmt.Errorf("openai.timeout_seconds: must not be negative, got %d", c.OpenAI.TimeoutSeconds)
	}
	if strings.TrimSpace(c.OpenAI.BaseURL) == "" {
		return fmt.Errorf("openai.base_url: must not be empty")
	}
	return nil
}
