package slicer

import (
	"testing"
	"time"
)

func TestPlanCoversTrackWithoutGaps(t *testing.T) {
	cases := []struct {
		name       string
		total      time.Duration
		chunk      time.Duration
		wantCount  int
		wantLast   time.Duration
	}{
		{"remainder", 45 * time.Second, 20 * time.Second, 3, 5 * time.Second},
		{"exact multiple", 60 * time.Second, 20 * time.Second, 3, 20 * time.Second},
		{"shorter than chunk", 7 * time.Second, 20 * time.Second, 1, 7 * time.Second},
		{"zero duration", 0, 20 * time.Second, 1, 0},
		{"one sample over", 20*time.Second + time.Millisecond, 20 * time.Second, 2, time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			windows := Plan(tc.total, tc.chunk)
			if len(windows) != tc.wantCount {
				t.Fatalf("expected %d windows, got %d", tc.wantCount, len(windows))
			}

			var covered time.Duration
			for i, window := range windows {
				if window.Index != i {
					t.Fatalf("window %d has index %d", i, window.Index)
				}
				if window.Start != covered {
					t.Fatalf("window %d starts at %v, expected %v", i, window.Start, covered)
				}
				if i < len(windows)-1 && window.Length() != tc.chunk {
					t.Fatalf("window %d has length %v, expected full chunk %v", i, window.Length(), tc.chunk)
				}
				covered = window.End
			}

			last := windows[len(windows)-1]
			if last.Length() != tc.wantLast {
				t.Fatalf("last window length %v, expected %v", last.Length(), tc.wantLast)
			}
			if covered != tc.total {
				t.Fatalf("windows cover %v, expected %v", covered, tc.total)
			}
		})
	}
}

func TestPlanRejectsNonPositiveChunk(t *testing.T) {
	if windows := Plan(time.Minute, 0); windows != nil {
		t.Fatalf("expected nil for zero chunk, got %v", windows)
	}
	if windows := Plan(time.Minute, -time.Second); windows != nil {
		t.Fatalf("expected nil for negative chunk, got %v", windows)
	}
}
