package config

const (
	defaultAudioDir       = "audio"
	defaultChunksDir      = "chunks"
	defaultReportPath     = "transcription_results.txt"
	defaultLogDir         = "~/.local/share/chunkscribe/logs"
	defaultChunkSeconds   = 20
	defaultTimeoutSeconds = 120
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AudioDir:   defaultAudioDir,
			ChunksDir:  defaultChunksDir,
			ReportPath: defaultReportPath,
			LogDir:     defaultLogDir,
		},
		Whisper: Whisper{
			ChunkSeconds:   defaultChunkSeconds,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
