package slicer

import "time"

// Window is a contiguous time span of a source track. Index is the zero-based
// ordinal position that defines playback order.
type Window struct {
	Index int
	Start time.Duration
	End   time.Duration
}

// Length returns the duration covered by the window.
func (w Window) Length() time.Duration {
	return w.End - w.Start
}

// Plan divides a track of the given total duration into fixed-length windows.
// The result has ceil(total/chunk) entries; window i covers
// [i*chunk, min((i+1)*chunk, total)) so the windows tile the track with no
// overlap and no gap. Tracks shorter than one chunk, including zero-length
// tracks, yield exactly one window spanning the whole track. A non-positive
// chunk length returns nil.
func Plan(total, chunk time.Duration) []Window {
	if chunk <= 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}

	count := int((total + chunk - 1) / chunk)
	if count < 1 {
		count = 1
	}

	windows := make([]Window, 0, count)
	for i := 0; i < count; i++ {
		start := time.Duration(i) * chunk
		end := start + chunk
		if end > total {
			end = total
		}
		windows = append(windows, Window{Index: i, Start: start, End: end})
	}
	return windows
}
