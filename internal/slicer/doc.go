// Package slicer plans fixed-length chunk windows over a source track and
// materializes them as per-chunk FLAC artifacts via ffmpeg.
//
// Window planning is pure arithmetic and separately testable; extraction
// shells out to ffmpeg with an injectable command runner so tests never need
// the binary.
package slicer
