package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration values that cannot be normalized away.
// Endpoint and token are allowed to be empty here so commands that never
// touch the network (list, clean, report unlock) work without credentials;
// the run path rejects a missing endpoint when the client is constructed.
func (c *Config) Validate() error {
	if c.Whisper.ChunkSeconds <= 0 {
		return fmt.Errorf("whisper.chunk_seconds: must be positive, got %d", c.Whisper.ChunkSeconds)
	}
	if c.Whisper.TimeoutSeconds < 0 {
		return fmt.Errorf("whisper.timeout_seconds: must not be negative, got %d", c.Whisper.TimeoutSeconds)
	}
	if c.Whisper.Endpoint != "" {
		parsed, err := url.Parse(c.Whisper.Endpoint)
		if err != nil {
			return fmt.Errorf("whisper.endpoint: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("whisper.endpoint: unsupported scheme %q", parsed.Scheme)
		}
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
