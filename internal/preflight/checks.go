package preflight

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"chunkscribe/internal/config"
	"chunkscribe/internal/deps"
	"chunkscribe/internal/pipeline"
)

// Result is the outcome of one environment check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckEndpointConfig verifies that the inference endpoint and token are set.
func CheckEndpointConfig(cfg *config.Config) []Result {
	results := make([]Result, 0, 2)

	endpoint := strings.TrimSpace(cfg.Whisper.Endpoint)
	switch {
	case endpoint == "":
		results = append(results, Result{Name: "Endpoint", Detail: "whisper.endpoint not set (config or HF_INFERENCE_ENDPOINT)"})
	default:
		if _, err := url.Parse(endpoint); err != nil {
			results = append(results, Result{Name: "Endpoint", Detail: fmt.Sprintf("invalid url: %v", err)})
		} else {
			results = append(results, Result{Name: "Endpoint", Passed: true, Detail: "configured"})
		}
	}

	if strings.TrimSpace(cfg.Whisper.Token) == "" {
		results = append(results, Result{Name: "Token", Detail: "whisper.token not set (config or HF_TOKEN)"})
	} else {
		results = append(results, Result{Name: "Token", Passed: true, Detail: "configured"})
	}
	return results
}

// CheckAudioFiles reports how many FLAC inputs are waiting. An empty input
// directory is informational, not a hard failure: a run against it produces
// an empty report by design.
func CheckAudioFiles(dir string) Result {
	const name = "Audio files"
	sources, err := pipeline.DiscoverSources(dir)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: err.Error()}
	}
	if len(sources) == 0 {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("no FLAC files in %s", dir)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%d FLAC file(s) in %s", len(sources), dir)}
}

// CheckSystemDeps evaluates the external binaries a run needs.
func CheckSystemDeps(cfg *config.Config) []Result {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for chunk extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for media inspection",
		},
	})

	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		detail := status.Detail
		if status.Available {
			detail = status.Command
		}
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Optional: status.Optional,
			Detail:   detail,
		})
	}
	return results
}
