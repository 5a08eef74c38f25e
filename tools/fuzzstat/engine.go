// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/fuzzstat/pkg/campaign"
	"github.com/google/fuzzstat/pkg/log"
	"golang.org/x/sync/errgroup"
)

// engine imitates fuzzing threads: it updates campaign counters the way a real
// fuzzer would, with random outcomes instead of executing the target.
type engine struct {
	c     *campaign.Campaign
	delay time.Duration // simulated execution time of one iteration
}

const (
	sancovTotalBB = 1 << 14
	crashOdds     = 20000
	timeoutOdds   = 10000
	improveOdds   = 500
)

func newEngine(c *campaign.Campaign) *engine {
	return &engine{
		c:     c,
		delay: 200 * time.Microsecond,
	}
}

func (e *engine) run(ctx context.Context) error {
	if err := e.prepare(); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.c.Cfg.Threads; i++ {
		i := i
		g.Go(func() error {
			e.thread(ctx, i)
			return nil
		})
	}
	return g.Wait()
}

func (e *engine) prepare() error {
	cfg, st := e.c.Cfg, &e.c.Stats
	files, err := countInputs(cfg.Input)
	if err != nil {
		return err
	}
	st.Files.Set(files)
	if cfg.Feedback.SanCov {
		st.SanCov.TotalBB.Set(sancovTotalBB)
		st.SanCov.DSOs.Set(1)
	}
	log.Logf(0, "loaded %v input files from %v", files, cfg.Input)
	return nil
}

func countInputs(input string) (uint64, error) {
	info, err := os.Stat(input)
	if err != nil {
		return 0, fmt.Errorf("failed to stat input: %w", err)
	}
	if !info.IsDir() {
		return 1, nil
	}
	entries, err := os.ReadDir(input)
	if err != nil {
		return 0, fmt.Errorf("failed to read input dir: %w", err)
	}
	var files uint64
	for _, ent := range entries {
		if ent.Type().IsRegular() {
			files++
		}
	}
	return files, nil
}

// limit returns the number of iterations to run, 0 means no limit.
// A dry run replays every input file once.
func (e *engine) limit() uint64 {
	cfg := e.c.Cfg
	if cfg.FlipRate == 0 && cfg.Verifier {
		return e.c.Stats.Files.Get()
	}
	return cfg.MutationsMax
}

func (e *engine) thread(ctx context.Context, id int) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
	limit := e.limit()
	for ctx.Err() == nil {
		// The counter is incremented before the check, so it may end up
		// slightly above the limit. The status screen clamps it.
		n := e.c.Stats.Mutations.Inc()
		if limit != 0 && n > limit {
			return
		}
		e.iteration(rnd, id, n)
		if e.delay != 0 {
			time.Sleep(e.delay)
		}
	}
}

func (e *engine) iteration(rnd *rand.Rand, id int, n uint64) {
	cfg, st := e.c.Cfg, &e.c.Stats
	fb := cfg.Feedback
	if fb.Any() {
		if rnd.Intn(improveOdds) == 0 {
			e.improve(rnd, n)
		} else if st.DynFileIterExpire.Inc() >= cfg.MaxDynFileIter {
			st.DynFileIterExpire.Set(0)
		}
	}
	if rnd.Intn(timeoutOdds) == 0 {
		st.Timeouts.Inc()
	}
	if rnd.Intn(crashOdds) != 0 {
		return
	}
	st.Crashes.Inc()
	if fb.SanCov {
		st.SanCov.Crashes.Inc()
	}
	if rnd.Intn(10) == 0 {
		st.BlacklistedCrashes.Inc()
		return
	}
	if cfg.Verifier {
		st.VerifiedCrashes.Inc()
	}
	if rnd.Intn(4) == 0 {
		unique := st.UniqueCrashes.Inc()
		log.Logf(0, "thread %v: new crash #%v at iteration %v", id, unique, n)
	}
}

// improve records a new best dynamic input.
func (e *engine) improve(rnd *rand.Rand, n uint64) {
	cfg, st := e.c.Cfg, &e.c.Stats
	fb := cfg.Feedback
	st.DynFileBestSize.Set(uint64(rnd.Int63n(int64(cfg.MaxFileSize))) + 1)
	st.DynFileIterExpire.Set(0)
	hw := []struct {
		enabled bool
		ctr     *campaign.Counter
	}{
		{fb.InstrCount, &st.HW.CPUInstr},
		{fb.BranchCount, &st.HW.CPUBranch},
		{fb.BTSBlock, &st.HW.BTSBlock},
		{fb.BTSEdge, &st.HW.BTSEdge},
		{fb.IPTBlock, &st.HW.IPTBlock},
		{fb.Custom, &st.HW.Custom},
	}
	for _, h := range hw {
		if h.enabled {
			h.ctr.SetMax(uint64(rnd.Int63n(int64(n) + 1)))
		}
	}
	if fb.SanCov {
		newBB := uint64(rnd.Intn(16)) + 1
		if st.SanCov.HitBB.Get()+newBB <= st.SanCov.TotalBB.Get() {
			st.SanCov.HitBB.Add(newBB)
		}
		st.SanCov.NewBB.Set(newBB)
	}
}
