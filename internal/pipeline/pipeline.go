package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"chunkscribe/internal/config"
	"chunkscribe/internal/ledger"
	"chunkscribe/internal/logging"
	"chunkscribe/internal/report"
	"chunkscribe/internal/slicer"
)

// Prober reports the playable duration of a source track.
type Prober interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Slicer cuts a source track into chunk artifacts in ordinal order.
type Slicer interface {
	Slice(ctx context.Context, source, destDir string, windows []slicer.Window) ([]slicer.Chunk, error)
}

// Transcriber sends one chunk artifact to the remote endpoint.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Pipeline orchestrates one run: discover sources, slice, transcribe, report.
// It is the only stateful component; everything it calls is a stateless
// collaborator. Files and chunks are processed strictly sequentially.
type Pipeline struct {
	cfg         *config.Config
	logger      *slog.Logger
	prober      Prober
	slicer      Slicer
	transcriber Transcriber
	store       *ledger.Store
}

// New assembles a pipeline from explicit collaborators. The ledger store may
// be nil to disable run history.
func New(cfg *config.Config, logger *slog.Logger, prober Prober, sl Slicer, tr Transcriber, store *ledger.Store) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
		prober:      prober,
		slicer:      sl,
		transcriber: tr,
		store:       store,
	}
}

// Close releases the ledger store. Callers that passed their own store to
// New should close it themselves instead.
func (p *Pipeline) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// Run executes the full pipeline and returns the report it wrote. Per-file
// and per-chunk failures are recorded in the report and never abort the run;
// only a report write failure is fatal. A scan that finds no input returns
// an empty report without touching the report file or the ledger.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With(logging.String("run_id", runID))

	sources, err := DiscoverSources(p.cfg.Paths.AudioDir)
	if err != nil {
		return nil, err
	}
	logger.Info("scan complete",
		logging.String("audio_dir", p.cfg.Paths.AudioDir),
		logging.Int("files", len(sources)))

	// An empty scan is a no-op run: nothing is written, so a later run with
	// input does not trip over a locked report from a run that did no work.
	if len(sources) == 0 {
		return &report.Report{GeneratedAt: time.Now()}, nil
	}

	chunkLength := time.Duration(p.cfg.Whisper.ChunkSeconds) * time.Second
	sections := make([]report.FileSection, 0, len(sources))
	for _, source := range sources {
		sections = append(sections, p.processFile(ctx, logger, source, chunkLength))
	}

	rep := &report.Report{GeneratedAt: time.Now(), Sections: sections}
	if err := report.Write(*rep, p.cfg.Paths.ReportPath); err != nil {
		return nil, err
	}
	logger.Info("report written",
		logging.String("path", p.cfg.Paths.ReportPath),
		logging.Int("files", len(sections)),
		logging.Int("chunks", rep.EntryCount()),
		logging.Int("failures", rep.FailureCount()))

	p.recordRun(ctx, logger, runID, started, rep)
	return rep, nil
}

func (p *Pipeline) processFile(ctx context.Context, logger *slog.Logger, source Source, chunkLength time.Duration) report.FileSection {
	section := report.FileSection{Source: source.DisplayName}
	fileLogger := logger.With(logging.String("source", source.DisplayName))

	duration, err := p.prober.Duration(ctx, source.Path)
	if err != nil {
		fileLogger.Error("decode failed", logging.Error(err))
		section.FailureDetail = err.Error()
		return section
	}

	windows := slicer.Plan(duration, chunkLength)
	destDir := filepath.Join(p.cfg.Paths.ChunksDir, source.DisplayName)
	chunks, err := p.slicer.Slice(ctx, source.Path, destDir, windows)
	if err != nil {
		fileLogger.Error("chunking failed", logging.Error(err))
		section.FailureDetail = err.Error()
		return section
	}
	fileLogger.Info("chunks written",
		logging.Duration("duration", duration),
		logging.Int("chunks", len(chunks)),
		logging.String("dir", destDir))

	for _, chunk := range chunks {
		entry := report.Entry{
			ChunkID: filepath.Join(source.DisplayName, filepath.Base(chunk.Path)),
			Index:   chunk.Index,
		}
		text, err := p.transcriber.Transcribe(ctx, chunk.Path)
		if err != nil {
			// A failed chunk never aborts the rest of the file.
			fileLogger.Warn("transcription failed",
				logging.Int("chunk", chunk.Index),
				logging.Error(err))
			entry.ErrDetail = err.Error()
		} else {
			fileLogger.Info("chunk transcribed", logging.Int("chunk", chunk.Index))
			entry.Text = text
		}
		section.Entries = append(section.Entries, entry)
	}
	return section
}

func (p *Pipeline) recordRun(ctx context.Context, logger *slog.Logger, runID string, started time.Time, rep *report.Report) {
	if p.store == nil {
		return
	}

	record := ledger.RunRecord{
		ID:           runID,
		StartedAt:    started,
		FinishedAt:   time.Now(),
		ReportPath:   p.cfg.Paths.ReportPath,
		FileCount:    len(rep.Sections),
		ChunkCount:   rep.EntryCount(),
		FailureCount: rep.FailureCount(),
	}
	for _, section := range rep.Sections {
		record.Files = append(record.Files, ledger.FileRecord{
			Source:     section.Source,
			ChunkCount: len(section.Entries),
			Failed:     section.Failed(),
			Detail:     section.FailureDetail,
		})
	}

	if err := p.store.RecordRun(ctx, record); err != nil {
		// History is best-effort; the report already exists on disk.
		logger.Warn("record run history failed", logging.Error(err))
	}
}

// Source identifies one discovered input track.
type Source struct {
	// Path is the absolute location of the FLAC file.
	Path string
	// DisplayName is the file name with the extension stripped; it names the
	// chunk directory and the report section.
	DisplayName string
}

// DiscoverSources enumerates FLAC files in dir, matched case-insensitively
// on the extension and returned in sorted name order. A missing directory is
// an error; an empty one is not.
func DiscoverSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan audio directory: %w", err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".flac") {
			continue
		}
		sources = append(sources, Source{
			Path:        filepath.Join(dir, name),
			DisplayName: strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}
