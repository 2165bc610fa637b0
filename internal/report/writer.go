package report

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrReadOnly indicates a previous run's report exists and is write-protected.
// The operator must unlock or remove it before rerunning.
var ErrReadOnly = errors.New("report: existing report is read-only")

const rule = 80

// Write serializes the report to path and then marks it read-only.
//
// Side-effect order is load-bearing: the content is fully written and synced
// before the permission change, and an already-locked report from an earlier
// run is rejected up front instead of being silently clobbered or skipped.
func Write(rep Report, path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.Mode().Perm()&0o200 == 0 {
			return fmt.Errorf("%w: %s (run 'chunkscribe report unlock' to allow overwriting)", ErrReadOnly, path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("report: stat %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("report: open %s: %w", path, err)
	}

	if _, err := file.Write(Render(rep)); err != nil {
		_ = file.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("report: sync %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}

	if err := os.Chmod(path, 0o444); err != nil {
		return fmt.Errorf("report: lock %s: %w", path, err)
	}
	return nil
}

// Unlock restores write permission on a locked report.
func Unlock(path string) error {
	if err := os.Chmod(path, 0o644); err != nil {
		return fmt.Errorf("report: unlock %s: %w", path, err)
	}
	return nil
}

// Render serializes the report to its plain-text form.
func Render(rep Report) []byte {
	var buf bytes.Buffer

	buf.WriteString("Whisper LLM Transcription Results\n")
	fmt.Fprintf(&buf, "Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	buf.WriteString(strings.Repeat("=", rule))
	buf.WriteString("\n\n")

	for _, section := range rep.Sections {
		fmt.Fprintf(&buf, "File: %s\n", section.Source)
		buf.WriteString(strings.Repeat("-", rule))
		buf.WriteByte('\n')

		if section.Failed() {
			fmt.Fprintf(&buf, "ERROR: %s\n", section.FailureDetail)
			buf.WriteByte('\n')
			continue
		}

		for _, entry := range section.Entries {
			if entry.Failed() {
				fmt.Fprintf(&buf, "%s: ERROR: %s\n", entry.ChunkID, entry.ErrDetail)
				continue
			}
			fmt.Fprintf(&buf, "%s: %s\n", entry.ChunkID, entry.Text)
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
