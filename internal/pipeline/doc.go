// Package pipeline sequences one chunk-and-transcribe run: discover FLAC
// sources, slice each into fixed-length chunks, transcribe every chunk in
// ordinal order through the remote endpoint, and write the locked report.
//
// Failure containment: a file that cannot be decoded or sliced is recorded
// and skipped without any transcription calls; a chunk whose remote call
// fails is recorded and the remaining chunks still run. Only the final
// report write can fail the run.
package pipeline
