package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"chunkscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.AudioDir = filepath.Join(base, "audio")
	cfg.Paths.ChunksDir = filepath.Join(base, "chunks")
	cfg.Paths.ReportPath = filepath.Join(base, "transcription_results.txt")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Whisper.Endpoint = "https://example.invalid/whisper"
	cfg.Whisper.Token = "test-token"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithChunkSeconds overrides the chunk length on the test config.
func WithChunkSeconds(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Whisper.ChunkSeconds = seconds
	}
}

// WriteFile creates a file with the given content under dir and returns its path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
