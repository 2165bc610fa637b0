package slicer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Chunk describes one chunk artifact written to disk.
type Chunk struct {
	Path  string
	Index int
	Start time.Duration
	End   time.Duration
}

// Slicer cuts FLAC sources into fixed-length chunk files using ffmpeg.
type Slicer struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New creates a Slicer backed by the given ffmpeg binary.
func New(ffmpegBinary string) *Slicer {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Slicer{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Slicer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// ChunkFileName returns the deterministic artifact name for a window.
// Names are 1-based and zero-padded so a lexical sort recovers playback order.
func ChunkFileName(index int) string {
	return fmt.Sprintf("chunk_%03d.flac", index+1)
}

// Slice extracts every window of the source track into destDir, one FLAC file
// per window, and returns the chunks in ordinal order. Existing same-named
// artifacts from an earlier run are overwritten. The slice stops at the first
// failed extraction; chunks written before the failure are left on disk.
func (s *Slicer) Slice(ctx context.Context, source, destDir string, windows []Window) ([]Chunk, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("slice %s: no windows", source)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create chunk directory %q: %w", destDir, err)
	}

	chunks := make([]Chunk, 0, len(windows))
	for _, window := range windows {
		dest := filepath.Join(destDir, ChunkFileName(window.Index))
		if err := s.extract(ctx, source, window, dest); err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{
			Path:  dest,
			Index: window.Index,
			Start: window.Start,
			End:   window.End,
		})
	}
	return chunks, nil
}

func (s *Slicer) extract(ctx context.Context, source string, window Window, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatSeconds(window.Start),
		"-t", formatSeconds(window.Length()),
		"-i", source,
		"-vn",
		"-c:a", "flac",
		dest,
	}
	if s.commandRunner != nil {
		return s.commandRunner(ctx, s.ffmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, s.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract chunk %d: %w: %s", window.Index, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
