package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"chunkscribe/internal/config"
	"chunkscribe/internal/ledger"
	"chunkscribe/internal/media/ffprobe"
	"chunkscribe/internal/services/whisper"
	"chunkscribe/internal/slicer"
)

// ffprobeProber inspects source files with ffprobe and rejects anything
// without a decodable audio stream.
type ffprobeProber struct {
	binary string
}

func (p ffprobeProber) Duration(ctx context.Context, path string) (time.Duration, error) {
	result, err := ffprobe.Inspect(ctx, p.binary, path)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if result.AudioStreamCount() == 0 {
		return 0, fmt.Errorf("decode %s: no audio streams", filepath.Base(path))
	}
	seconds := result.DurationSeconds()
	if math.IsNaN(seconds) || seconds < 0 {
		return 0, fmt.Errorf("decode %s: unreadable duration", filepath.Base(path))
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// NewFromConfig assembles a pipeline with the real collaborators: ffprobe
// probing, ffmpeg slicing, the HF inference client, and the run ledger.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	client, err := whisper.New(whisper.Config{
		Endpoint: cfg.Whisper.Endpoint,
		Token:    cfg.Whisper.Token,
		Timeout:  time.Duration(cfg.Whisper.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	store, err := ledger.Open(filepath.Join(cfg.Paths.LogDir, "ledger.db"))
	if err != nil {
		return nil, err
	}

	return New(
		cfg,
		logger,
		ffprobeProber{binary: cfg.FFprobeBinary()},
		slicer.New(cfg.FFmpegBinary()),
		client,
		store,
	), nil
}
