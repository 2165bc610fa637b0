package preflight

import "chunkscribe/internal/config"

// Summary aggregates all environment checks for a config.
type Summary struct {
	Checks []Result
}

// Passed reports whether every required check passed. Optional checks are
// informational only.
func (s Summary) Passed() bool {
	for _, check := range s.Checks {
		if !check.Optional && !check.Passed {
			return false
		}
	}
	return true
}

// Run evaluates the full preflight suite: external binaries, endpoint and
// credential configuration, directory access, and waiting input.
func Run(cfg *config.Config) Summary {
	var checks []Result
	checks = append(checks, CheckSystemDeps(cfg)...)
	checks = append(checks, CheckEndpointConfig(cfg)...)
	checks = append(checks, CheckDirectoryAccess("Audio dir", cfg.Paths.AudioDir))
	checks = append(checks, CheckDirectoryAccess("Chunks dir", cfg.Paths.ChunksDir))
	checks = append(checks, CheckDirectoryAccess("Log dir", cfg.Paths.LogDir))
	checks = append(checks, CheckAudioFiles(cfg.Paths.AudioDir))
	return Summary{Checks: checks}
}
