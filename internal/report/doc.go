// Package report models the aggregated transcription results of a run and
// writes them as a human-readable text file that is locked read-only after a
// successful write.
package report
