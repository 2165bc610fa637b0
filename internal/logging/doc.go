// Package logging assembles the structured slog loggers used across
// chunkscribe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers plus a no-op logger for tests. Prefer
// these constructors over hand-rolled slog setup so every component emits
// log lines with the same shape.
package logging
