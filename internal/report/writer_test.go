package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleReport() Report {
	return Report{
		GeneratedAt: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Sections: []FileSection{
			{
				Source: "song",
				Entries: []Entry{
					{ChunkID: "song/chunk_001.flac", Index: 0, Text: "first part"},
					{ChunkID: "song/chunk_002.flac", Index: 1, ErrDetail: "whisper: rate limited"},
					{ChunkID: "song/chunk_003.flac", Index: 2, Text: ""},
				},
			},
			{
				Source:        "broken",
				FailureDetail: "decode broken.flac: no audio streams",
			},
		},
	}
}

func TestRenderOrdersSectionsAndEntries(t *testing.T) {
	rendered := string(Render(sampleReport()))

	if !strings.HasPrefix(rendered, "Whisper LLM Transcription Results\nGenerated: 2026-08-29 10:30:00\n") {
		t.Fatalf("unexpected header:\n%s", rendered)
	}

	wantInOrder := []string{
		"File: song",
		"song/chunk_001.flac: first part",
		"song/chunk_002.flac: ERROR: whisper: rate limited",
		"song/chunk_003.flac: ",
		"File: broken",
		"ERROR: decode broken.flac: no audio streams",
	}
	offset := 0
	for _, want := range wantInOrder {
		idx := strings.Index(rendered[offset:], want)
		if idx < 0 {
			t.Fatalf("missing or out-of-order line %q in:\n%s", want, rendered)
		}
		offset += idx + len(want)
	}
}

func TestWriteLocksReportAfterWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcription_results.txt")

	if err := Write(sampleReport(), path); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat report: %v", err)
	}
	if info.Mode().Perm() != 0o444 {
		t.Fatalf("expected mode 0444, got %v", info.Mode().Perm())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(content), "File: song") {
		t.Fatalf("report content missing section:\n%s", content)
	}
}

func TestWriteRefusesExistingReadOnlyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcription_results.txt")
	if err := os.WriteFile(path, []byte("previous run\n"), 0o444); err != nil {
		t.Fatalf("seed read-only report: %v", err)
	}

	err := Write(sampleReport(), path)
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(content) != "previous run\n" {
		t.Fatalf("read-only report was modified:\n%s", content)
	}
}

func TestWriteOverwritesUnlockedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcription_results.txt")
	if err := os.WriteFile(path, []byte("previous run\n"), 0o444); err != nil {
		t.Fatalf("seed report: %v", err)
	}
	if err := Unlock(path); err != nil {
		t.Fatalf("Unlock returned error: %v", err)
	}

	if err := Write(sampleReport(), path); err != nil {
		t.Fatalf("Write after unlock returned error: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(content), "previous run") {
		t.Fatal("expected previous content to be replaced")
	}
}

func TestFailureCountCoversFilesAndChunks(t *testing.T) {
	rep := sampleReport()
	if got := rep.FailureCount(); got != 2 {
		t.Fatalf("expected 2 failures (1 chunk + 1 file), got %d", got)
	}
	if got := rep.EntryCount(); got != 3 {
		t.Fatalf("expected 3 entries, got %d", got)
	}
}
