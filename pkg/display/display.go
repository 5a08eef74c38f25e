// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package display draws the live status screen of a fuzzing campaign.
//
// Each frame is produced synchronously: campaign counters are read with atomic loads,
// the per-frame rate is derived from the previous frame, the report is composed
// and written to the terminal with a single write. Nothing here blocks fuzzing threads
// and no failure is propagated to the campaign.
package display

import (
	"time"

	"github.com/google/fuzzstat/pkg/campaign"
	"github.com/google/fuzzstat/pkg/log"
)

// Render draws one frame of campaign c on scr. st carries the previous iteration count
// and is updated unconditionally.
func Render(c *campaign.Campaign, st *State, scr *Screen, now time.Time) Frame {
	return render(c, st, scr, now, nil)
}

func render(c *campaign.Campaign, st *State, scr *Screen, now time.Time, tail []string) Frame {
	snap := Take(c, now)
	snap.Rate = st.Update(snap.Mutations)
	lines := append(Compose(&snap, ANSI), tail...)
	return scr.Write(lines)
}

// Display owns the render state of one status screen.
// Render must not be called concurrently.
type Display struct {
	c       *campaign.Campaign
	st      State
	scr     *Screen
	logTail int
	now     func() time.Time
}

func New(c *campaign.Campaign, scr *Screen) *Display {
	return &Display{
		c:       c,
		scr:     scr,
		logTail: c.Cfg.LogTail,
		now:     time.Now,
	}
}

func (d *Display) Render() Frame {
	var tail []string
	if d.logTail > 0 {
		tail = log.CachedLines(d.logTail)
	}
	return render(d.c, &d.st, d.scr, d.now(), tail)
}
