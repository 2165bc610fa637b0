package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"chunkscribe/internal/preflight"
	"chunkscribe/internal/testsupport"
)

func stubBinaries(t *testing.T, names ...string) {
	t.Helper()
	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for _, name := range names {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunPassesWithStubbedEnvironment(t *testing.T) {
	stubBinaries(t, "ffmpeg", "ffprobe")
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.AudioDir, "song.flac", "flac bytes")

	summary := preflight.Run(cfg)
	if !summary.Passed() {
		t.Fatalf("expected all required checks to pass: %+v", summary.Checks)
	}
}

func TestRunFailsWithoutCredentials(t *testing.T) {
	stubBinaries(t, "ffmpeg", "ffprobe")
	cfg := testsupport.NewConfig(t)
	cfg.Whisper.Endpoint = ""
	cfg.Whisper.Token = ""

	summary := preflight.Run(cfg)
	if summary.Passed() {
		t.Fatal("expected failure without endpoint and token")
	}
}

func TestEmptyAudioDirIsInformationalOnly(t *testing.T) {
	stubBinaries(t, "ffmpeg", "ffprobe")
	cfg := testsupport.NewConfig(t)

	summary := preflight.Run(cfg)
	if !summary.Passed() {
		t.Fatalf("empty audio dir should not fail preflight: %+v", summary.Checks)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := preflight.CheckDirectoryAccess("Audio dir", dir); !result.Passed {
		t.Fatalf("expected pass for writable dir: %+v", result)
	}
	if result := preflight.CheckDirectoryAccess("Audio dir", filepath.Join(dir, "absent")); result.Passed {
		t.Fatalf("expected failure for missing dir: %+v", result)
	}
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if result := preflight.CheckDirectoryAccess("Audio dir", file); result.Passed {
		t.Fatalf("expected failure for non-directory: %+v", result)
	}
}
