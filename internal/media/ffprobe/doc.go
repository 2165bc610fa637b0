// Package ffprobe wraps ffprobe invocations used to inspect source audio
// before chunking.
package ffprobe
