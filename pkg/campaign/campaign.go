// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package campaign holds the state of a fuzzing campaign that is shared between
// fuzzing threads (which update it) and observers such as the status screen.
package campaign

import (
	"time"

	"github.com/google/fuzzstat/pkg/mgrconfig"
	"github.com/google/fuzzstat/pkg/stat"
)

type Campaign struct {
	Cfg   *mgrconfig.Config
	Start time.Time
	Stats Stats
}

type Stats struct {
	// Incremented by threads before each iteration, even if the iteration
	// is not executed because MutationsMax is reached. So it may overshoot.
	Mutations Counter
	// Number of input files (meaningful for dry runs only).
	Files Counter

	Crashes            Counter
	UniqueCrashes      Counter
	BlacklistedCrashes Counter
	VerifiedCrashes    Counter
	Timeouts           Counter

	// Size of the current best dynamic input.
	DynFileBestSize Counter
	// Iterations the current seed has been kept for.
	DynFileIterExpire Counter

	HW     HWCounters
	SanCov SanCovCounters
}

// HWCounters are maximums observed by hardware-based feedback mechanisms.
type HWCounters struct {
	CPUInstr  Counter
	CPUBranch Counter
	BTSBlock  Counter
	BTSEdge   Counter
	IPTBlock  Counter
	Custom    Counter
}

// SanCovCounters are software coverage counters.
type SanCovCounters struct {
	HitBB   Counter
	TotalBB Counter
	DSOs    Counter
	NewBB   Counter
	Crashes Counter
}

func New(cfg *mgrconfig.Config, start time.Time) *Campaign {
	return &Campaign{
		Cfg:   cfg,
		Start: start,
	}
}

// Iterations returns the number of iterations capped at the configured maximum.
// Threads increment the counter before checking the cap, so the raw value may overshoot.
func (c *Campaign) Iterations() uint64 {
	return Clamp(c.Stats.Mutations.Get(), c.Cfg.MutationsMax)
}

// Clamp caps v to limit, limit 0 means no limit.
func Clamp(v, limit uint64) uint64 {
	if limit > 0 && v > limit {
		return limit
	}
	return v
}

// Register exports the counters as metrics in the set.
// Feedback-specific counters are exported only if the corresponding mechanism is enabled.
func (c *Campaign) Register(set *stat.Set) {
	st := &c.Stats
	fb := c.Cfg.Feedback
	reg := func(ctr *Counter, name, desc, prom string, opts ...any) {
		opts = append(opts, func() int { return int(ctr.Get()) }, stat.Prometheus(prom))
		set.New(name, desc, opts...)
	}
	set.New("execs", "Total fuzzing iterations", stat.Console, stat.Rate{},
		func() int { return int(c.Iterations()) }, stat.Prometheus("fuzzstat_execs_total"))
	reg(&st.Crashes, "crashes", "Total crashes", "fuzzstat_crashes_total", stat.Console)
	reg(&st.UniqueCrashes, "crash types", "Unique crashes", "fuzzstat_unique_crashes_total", stat.Console)
	reg(&st.BlacklistedCrashes, "blacklisted", "Crashes matching the blacklist",
		"fuzzstat_blacklisted_crashes_total", stat.Simple)
	reg(&st.VerifiedCrashes, "verified", "Crashes confirmed by the verifier",
		"fuzzstat_verified_crashes_total", stat.Simple)
	reg(&st.Timeouts, "timeouts", "Iterations that timed out", "fuzzstat_timeouts_total", stat.Console)
	if fb.Any() {
		reg(&st.DynFileBestSize, "dynfile size", "Size of the best dynamic input",
			"fuzzstat_dynfile_size_bytes")
	}
	hw := []struct {
		enabled bool
		ctr     *Counter
		name    string
		prom    string
	}{
		{fb.InstrCount, &st.HW.CPUInstr, "cpu instructions", "fuzzstat_cpu_instructions"},
		{fb.BranchCount, &st.HW.CPUBranch, "cpu branches", "fuzzstat_cpu_branches"},
		{fb.BTSBlock, &st.HW.BTSBlock, "bts blocks", "fuzzstat_bts_blocks"},
		{fb.BTSEdge, &st.HW.BTSEdge, "bts edges", "fuzzstat_bts_edges"},
		{fb.IPTBlock, &st.HW.IPTBlock, "pt blocks", "fuzzstat_pt_blocks"},
		{fb.Custom, &st.HW.Custom, "custom counter", "fuzzstat_custom_counter"},
	}
	for _, h := range hw {
		if h.enabled {
			reg(h.ctr, h.name, "Maximum "+h.name+" observed for an input", h.prom, stat.Simple)
		}
	}
	if fb.SanCov {
		reg(&st.SanCov.HitBB, "coverage", "Hit basic blocks", "fuzzstat_sancov_hit_bb", stat.Console)
		reg(&st.SanCov.TotalBB, "total bb", "Instrumented basic blocks", "fuzzstat_sancov_total_bb")
		reg(&st.SanCov.DSOs, "dsos", "Instrumented DSOs", "fuzzstat_sancov_dsos")
		reg(&st.SanCov.NewBB, "new bb", "Basic blocks discovered by the current seed",
			"fuzzstat_sancov_new_bb")
		reg(&st.SanCov.Crashes, "sancov crashes", "Crashes found with coverage feedback",
			"fuzzstat_sancov_crashes_total")
	}
}
