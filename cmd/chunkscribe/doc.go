// Command chunkscribe splits FLAC files into fixed-length chunks, sends each
// chunk to a hosted Whisper inference endpoint, and writes the transcripts to
// a read-only results report. Utility subcommands list inputs and chunks,
// clean generated artifacts, unlock the report, show run history, and
// validate the environment.
package main
