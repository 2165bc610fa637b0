package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chunkscribe/internal/config"
)

func TestLoadDefaultsAndEnvCredentials(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("HF_TOKEN", "env-token")
	t.Setenv("HF_INFERENCE_ENDPOINT", "https://example.com/whisper")
	// t.Chdir equivalent for toolchains before Go 1.24.
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if !filepath.IsAbs(cfg.Paths.AudioDir) || filepath.Base(cfg.Paths.AudioDir) != "audio" {
		t.Fatalf("unexpected audio dir: %q", cfg.Paths.AudioDir)
	}
	if filepath.Base(cfg.Paths.ReportPath) != "transcription_results.txt" {
		t.Fatalf("unexpected report path: %q", cfg.Paths.ReportPath)
	}
	wantLogDir := filepath.Join(tempHome, ".local", "share", "chunkscribe", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Whisper.Token != "env-token" {
		t.Fatalf("expected token from env, got %q", cfg.Whisper.Token)
	}
	if cfg.Whisper.Endpoint != "https://example.com/whisper" {
		t.Fatalf("expected endpoint from env, got %q", cfg.Whisper.Endpoint)
	}
	if cfg.Whisper.ChunkSeconds != 20 {
		t.Fatalf("unexpected chunk seconds: %d", cfg.Whisper.ChunkSeconds)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesConfigFile(t *testing.T) {
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HF_INFERENCE_ENDPOINT", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`audio_dir = "` + filepath.Join(dir, "in") + `"`,
		`chunks_dir = "` + filepath.Join(dir, "out") + `"`,
		"",
		"[whisper]",
		`endpoint = "https://hf.example/models/whisper"`,
		`token = "file-token"`,
		"chunk_seconds = 30",
		"",
		"[logging]",
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v path=%q", exists, resolved)
	}
	if cfg.Paths.AudioDir != filepath.Join(dir, "in") {
		t.Fatalf("unexpected audio dir: %q", cfg.Paths.AudioDir)
	}
	if cfg.Whisper.ChunkSeconds != 30 {
		t.Fatalf("unexpected chunk seconds: %d", cfg.Whisper.ChunkSeconds)
	}
	if cfg.Whisper.Token != "file-token" {
		t.Fatalf("unexpected token: %q", cfg.Whisper.Token)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected format: %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative chunk", "[whisper]\nchunk_seconds = -5\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
		{"bad endpoint scheme", "[whisper]\nendpoint = \"ftp://example.com\"\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config did not load: exists=%v err=%v", exists, err)
	}
}
