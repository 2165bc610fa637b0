package report

import "time"

// Entry is the outcome of transcribing one chunk.
type Entry struct {
	// ChunkID identifies the chunk, e.g. "song/chunk_001.flac".
	ChunkID string
	// Index is the zero-based ordinal position within the source file.
	Index int
	// Text is the recognized transcript. May be empty when the model heard
	// silence.
	Text string
	// ErrDetail carries the failure description for a failed chunk. Empty on
	// success.
	ErrDetail string
}

// Failed reports whether the chunk transcription failed.
func (e Entry) Failed() bool {
	return e.ErrDetail != ""
}

// FileSection groups the results for one source file in discovery order.
type FileSection struct {
	// Source is the display name of the input file (extension stripped).
	Source string
	// FailureDetail is set when the whole file failed before transcription
	// (decode or chunk-write failure); Entries is empty in that case.
	FailureDetail string
	// Entries are per-chunk results in ordinal order.
	Entries []Entry
}

// Failed reports whether the source file failed before transcription.
func (s FileSection) Failed() bool {
	return s.FailureDetail != ""
}

// Report is the aggregated outcome of one run.
type Report struct {
	GeneratedAt time.Time
	Sections    []FileSection
}

// EntryCount returns the total number of chunk entries across all sections.
func (r Report) EntryCount() int {
	count := 0
	for _, section := range r.Sections {
		count += len(section.Entries)
	}
	return count
}

// FailureCount returns the number of failed files plus failed chunks.
func (r Report) FailureCount() int {
	count := 0
	for _, section := range r.Sections {
		if section.Failed() {
			count++
			continue
		}
		for _, entry := range section.Entries {
			if entry.Failed() {
				count++
			}
		}
	}
	return count
}
