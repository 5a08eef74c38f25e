// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

import (
	"context"
	"time"

	"github.com/google/fuzzstat/pkg/log"
	"github.com/google/fuzzstat/pkg/stat"
)

var (
	statFrames = stat.New("display frames", "Status screen frames rendered",
		stat.Prometheus("fuzzstat_display_frames_total"))
	statDropped = stat.New("display dropped", "Status screen frames that failed to be fully written",
		stat.Prometheus("fuzzstat_display_dropped_frames_total"))
	statTruncated = stat.New("display truncated", "Status screen frames cut to the buffer size",
		stat.Prometheus("fuzzstat_display_truncated_frames_total"))
	statFrameBytes = stat.New("display frame bytes", "Size of status screen frames",
		stat.Distribution{}, stat.Prometheus("fuzzstat_display_frame_bytes"))
)

// Loop renders d every period until ctx is cancelled, then renders the final frame.
// All frames are rendered from the calling goroutine.
func Loop(ctx context.Context, d *Display, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	record(d.Render())
	for {
		select {
		case <-ctx.Done():
			record(d.Render())
			return
		case <-ticker.C:
			record(d.Render())
		}
	}
}

func record(frame Frame) {
	statFrames.Add(1)
	statFrameBytes.Add(frame.Size)
	if frame.Truncated {
		statTruncated.Add(1)
	}
	if frame.Dropped() {
		statDropped.Add(1)
		log.Logf(2, "status frame dropped: wrote %v/%v bytes: %v", frame.Written, frame.Size, frame.Err)
	}
}
