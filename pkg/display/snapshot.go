// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

import (
	"time"

	"github.com/google/fuzzstat/pkg/campaign"
	"github.com/google/fuzzstat/pkg/mgrconfig"
)

// Snapshot is a copy of campaign state used to build one status frame.
// Counters are read one by one without any synchronization between them,
// so a snapshot may combine values from slightly different moments.
type Snapshot struct {
	Start   time.Time
	Elapsed uint64 // seconds

	// Mutations is clamped to MutationsMax if the latter is set.
	Mutations    uint64
	MutationsMax uint64
	Rate         uint64
	AvgRate      uint64

	Input   string
	Cmdline string
	PID     int
	PIDCmd  string
	Threads int
	DryRun  bool
	Files   uint64

	Crashes            uint64
	UniqueCrashes      uint64
	BlacklistedCrashes uint64
	VerifiedCrashes    uint64
	Timeouts           uint64

	Feedback          mgrconfig.Feedback
	DynFileBestSize   uint64
	MaxFileSize       uint64
	DynFileIterExpire uint64
	MaxDynFileIter    uint64

	HW     HWSnapshot
	SanCov SanCovSnapshot
}

type HWSnapshot struct {
	CPUInstr  uint64
	CPUBranch uint64
	BTSBlock  uint64
	BTSEdge   uint64
	IPTBlock  uint64
	Custom    uint64
}

type SanCovSnapshot struct {
	HitBB   uint64
	TotalBB uint64
	DSOs    uint64
	NewBB   uint64
	Crashes uint64
}

// Take reads the campaign counters. It never blocks fuzzing threads: every counter
// is read with a single atomic load. Rate is left zero, see State.Update.
func Take(c *campaign.Campaign, now time.Time) Snapshot {
	cfg := c.Cfg
	st := &c.Stats
	snap := Snapshot{
		Start:        c.Start,
		Elapsed:      elapsedSeconds(c.Start, now),
		Mutations:    c.Iterations(),
		MutationsMax: cfg.MutationsMax,

		Input:   cfg.Input,
		Cmdline: cfg.CmdlineText,
		PID:     cfg.PID,
		PIDCmd:  cfg.PIDCmd,
		Threads: cfg.Threads,
		DryRun:  cfg.FlipRate == 0 && cfg.Verifier,
		Files:   st.Files.Get(),

		Crashes:            st.Crashes.Get(),
		UniqueCrashes:      st.UniqueCrashes.Get(),
		BlacklistedCrashes: st.BlacklistedCrashes.Get(),
		VerifiedCrashes:    st.VerifiedCrashes.Get(),
		Timeouts:           st.Timeouts.Get(),

		Feedback:          cfg.Feedback,
		DynFileBestSize:   st.DynFileBestSize.Get(),
		MaxFileSize:       cfg.MaxFileSize,
		DynFileIterExpire: st.DynFileIterExpire.Get(),
		MaxDynFileIter:    cfg.MaxDynFileIter,

		HW: HWSnapshot{
			CPUInstr:  st.HW.CPUInstr.Get(),
			CPUBranch: st.HW.CPUBranch.Get(),
			BTSBlock:  st.HW.BTSBlock.Get(),
			BTSEdge:   st.HW.BTSEdge.Get(),
			IPTBlock:  st.HW.IPTBlock.Get(),
			Custom:    st.HW.Custom.Get(),
		},
		SanCov: SanCovSnapshot{
			HitBB:   st.SanCov.HitBB.Get(),
			TotalBB: st.SanCov.TotalBB.Get(),
			DSOs:    st.SanCov.DSOs.Get(),
			NewBB:   st.SanCov.NewBB.Get(),
			Crashes: st.SanCov.Crashes.Get(),
		},
	}
	snap.AvgRate = avgRate(snap.Mutations, snap.Elapsed)
	return snap
}

func elapsedSeconds(start, now time.Time) uint64 {
	if now.Before(start) {
		return 0
	}
	return uint64(now.Sub(start) / time.Second)
}
