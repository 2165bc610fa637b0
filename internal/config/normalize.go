package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWhisper()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		c.Paths.AudioDir = defaultAudioDir
	}
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ChunksDir) == "" {
		c.Paths.ChunksDir = defaultChunksDir
	}
	if c.Paths.ChunksDir, err = expandPath(c.Paths.ChunksDir); err != nil {
		return fmt.Errorf("paths.chunks_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportPath) == "" {
		c.Paths.ReportPath = defaultReportPath
	}
	if c.Paths.ReportPath, err = expandPath(c.Paths.ReportPath); err != nil {
		return fmt.Errorf("paths.report_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWhisper() {
	c.Whisper.Endpoint = strings.TrimSpace(c.Whisper.Endpoint)
	if c.Whisper.Endpoint == "" {
		if value, ok := os.LookupEnv("HF_INFERENCE_ENDPOINT"); ok {
			c.Whisper.Endpoint = strings.TrimSpace(value)
		}
	}
	c.Whisper.Token = strings.TrimSpace(c.Whisper.Token)
	if c.Whisper.Token == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Whisper.Token = strings.TrimSpace(value)
		}
	}
	if c.Whisper.ChunkSeconds == 0 {
		c.Whisper.ChunkSeconds = defaultChunkSeconds
	}
	if c.Whisper.TimeoutSeconds == 0 {
		c.Whisper.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
