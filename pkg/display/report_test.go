// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/fuzzstat/pkg/campaign"
	"github.com/google/fuzzstat/pkg/mgrconfig"
	"github.com/google/fuzzstat/pkg/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func composeAt(c *campaign.Campaign, elapsed time.Duration, style Style) []string {
	var st State
	snap := Take(c, testStart.Add(elapsed))
	snap.Rate = st.Update(snap.Mutations)
	return Compose(&snap, style)
}

func TestComposeMinimal(t *testing.T) {
	c := testCampaign()
	got := composeAt(c, 100*time.Second, Plain)
	want := []string{
		"============================== STAT ==============================",
		"Iterations: 1200",
		"Start time: 2026-10-17 12:30:00 (100 seconds elapsed)",
		"Input file/dir: '/corpus'",
		"Fuzzed cmd: '/bin/target ___FILE___'",
		"Fuzzing threads: 4",
		"Execs per second: 1200 (avg: 12)",
		"Crashes: 3 (unique: 2, blacklist: 1, verified: 0)",
		"Timeouts: 5",
		"============================== LOGS ==============================",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestComposeFull(t *testing.T) {
	c := testCampaign()
	c.Cfg.MutationsMax = 1000
	c.Cfg.PID = 77
	c.Cfg.PIDCmd = "/usr/sbin/server -d"
	c.Cfg.FlipRate = 0
	c.Cfg.Verifier = true
	c.Cfg.Feedback = allFeedback()
	st := &c.Stats
	st.Files.Set(42)
	st.VerifiedCrashes.Set(1)
	st.DynFileBestSize.Set(512)
	st.DynFileIterExpire.Set(17)
	st.HW.CPUInstr.Set(1001)
	st.HW.CPUBranch.Set(1002)
	st.HW.BTSBlock.Set(1003)
	st.HW.BTSEdge.Set(1004)
	st.HW.IPTBlock.Set(1005)
	st.HW.Custom.Set(1006)
	st.SanCov.HitBB.Set(50)
	st.SanCov.TotalBB.Set(200)
	st.SanCov.DSOs.Set(3)
	st.SanCov.NewBB.Set(7)
	st.SanCov.Crashes.Set(1)

	got := composeAt(c, 100*time.Second, Plain)
	want := []string{
		"============================== STAT ==============================",
		"Iterations: 1000 (out of: 1000)",
		"Start time: 2026-10-17 12:30:00 (100 seconds elapsed)",
		"Input file/dir: '/corpus'",
		"Fuzzed cmd: '/bin/target ___FILE___'",
		"Remote cmd [77]: '/usr/sbin/server -d'",
		"Fuzzing threads: 4",
		"Execs per second: 1000 (avg: 10)",
		"Input Files: '42'",
		"Crashes: 3 (unique: 2, blacklist: 1, verified: 1)",
		"Timeouts: 5",
		"Dynamic file size: 512 (max: 1048576)",
		"Dynamic file max iterations keep for chosen seed (17/8192)",
		"Coverage (max):",
		"  - cpu instructions:   1001",
		"  - cpu branches:       1002",
		"  - BTS unique blocks:  1003",
		"  - BTS unique edges:   1004",
		"  - PT unique blocks:   1005",
		"  - custom counter:     1006",
		"  - total hit #bb:      50 (coverage 25%)",
		"  - total #dso:         3 (instrumented only)",
		"  - discovered #bb:     7 (new from input seed)",
		"  - crashes:            1",
		"============================== LOGS ==============================",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
	// The raw counter is not modified by clamping.
	assert.Equal(t, uint64(1200), c.Stats.Mutations.Get())
}

func TestComposeClamp(t *testing.T) {
	c := testCampaign()
	c.Cfg.MutationsMax = 1000
	lines := composeAt(c, time.Second, Plain)
	assert.Equal(t, "Iterations: 1000 (out of: 1000)", lines[1])
	assert.Equal(t, "Execs per second: 1000 (avg: 1000)", lines[6])

	c.Cfg.MutationsMax = 5000
	lines = composeAt(c, time.Second, Plain)
	assert.Equal(t, "Iterations: 1200 (out of: 5000)", lines[1])

	// The second frame crosses the cap: the rate is taken from the clamped values.
	c.Cfg.MutationsMax = 1000
	c.Stats.Mutations.Set(900)
	var st State
	var buf bytes.Buffer
	scr := NewScreen(&buf, 4<<10)
	Render(c, &st, scr, testStart.Add(time.Second))
	assert.Contains(t, buf.String(), "Execs per second: "+escBold+"900"+escReset)
	c.Stats.Mutations.Set(1200)
	buf.Reset()
	Render(c, &st, scr, testStart.Add(2*time.Second))
	assert.Contains(t, buf.String(), "Iterations: "+escBold+"1000"+escReset)
	assert.Contains(t, buf.String(), "Execs per second: "+escBold+"100"+escReset)
	assert.Equal(t, uint64(1200), c.Stats.Mutations.Get())
}

func TestComposeZeroElapsed(t *testing.T) {
	c := testCampaign()
	lines := composeAt(c, 0, Plain)
	assert.Contains(t, lines, "Execs per second: 1200 (avg: 0)")
	assert.Contains(t, lines, "Start time: 2026-10-17 12:30:00 (0 seconds elapsed)")
	// Clock going backwards is treated as zero elapsed time.
	lines = composeAt(c, -time.Minute, Plain)
	assert.Contains(t, lines, "Execs per second: 1200 (avg: 0)")
}

func TestComposeInputFiles(t *testing.T) {
	tests := []struct {
		flipRate float64
		verifier bool
		shown    bool
	}{
		{0, true, true},
		{0, false, false},
		{0.001, true, false},
		{0.5, false, false},
	}
	for _, test := range tests {
		c := testCampaign()
		c.Cfg.FlipRate = test.flipRate
		c.Cfg.Verifier = test.verifier
		c.Stats.Files.Set(9)
		lines := composeAt(c, time.Second, Plain)
		assert.Equal(t, test.shown, hasPrefix(lines, "Input Files:"),
			"flip=%v verifier=%v", test.flipRate, test.verifier)
	}
}

func TestComposeRemoteCmd(t *testing.T) {
	for _, pid := range []int{-1, 0, 1, 4242} {
		c := testCampaign()
		c.Cfg.PID = pid
		c.Cfg.PIDCmd = "cmd"
		lines := composeAt(c, time.Second, Plain)
		assert.Equal(t, pid > 0, hasPrefix(lines, "Remote cmd"), "pid=%v", pid)
		if pid > 0 {
			assert.Contains(t, lines, fmt.Sprintf("Remote cmd [%v]: 'cmd'", pid))
		}
	}
}

func TestComposeFeedbackSections(t *testing.T) {
	tests := []struct {
		feedback []string
		present  []string
		absent   []string
	}{
		{
			feedback: nil,
			absent: []string{"Dynamic file size", "Coverage (max)", "  - cpu", "  - BTS",
				"  - PT", "  - custom", "  - total hit"},
		},
		{
			feedback: []string{"instr"},
			present:  []string{"Dynamic file size", "Coverage (max)", "  - cpu instructions"},
			absent:   []string{"  - cpu branches", "  - total hit"},
		},
		{
			feedback: []string{"sancov"},
			present:  []string{"Dynamic file size", "  - total hit #bb", "  - total #dso", "  - discovered #bb"},
			absent:   []string{"  - cpu", "  - BTS", "  - PT", "  - custom"},
		},
		{
			feedback: []string{"bts_edge", "custom"},
			present:  []string{"  - BTS unique edges", "  - custom counter"},
			absent:   []string{"  - BTS unique blocks", "  - PT", "  - total hit"},
		},
	}
	for _, test := range tests {
		fb, err := mgrconfig.ParseFeedback(test.feedback)
		if err != nil {
			t.Fatal(err)
		}
		c := testCampaign()
		c.Cfg.Feedback = fb
		lines := composeAt(c, time.Second, Plain)
		for _, p := range test.present {
			assert.True(t, hasPrefix(lines, p), "feedback %v: missing %q", test.feedback, p)
		}
		for _, p := range test.absent {
			assert.False(t, hasPrefix(lines, p), "feedback %v: unexpected %q", test.feedback, p)
		}
	}
}

func TestComposeNoFeedbackLayout(t *testing.T) {
	c := testCampaign()
	lines := composeAt(c, time.Second, Plain)
	// Banner, iterations, time, input, cmd, threads, rate, crashes, timeouts, banner.
	assert.Len(t, lines, 10)
	assert.Equal(t, header, lines[0])
	assert.Equal(t, footer, lines[len(lines)-1])
}

func TestComposeCoverageANSI(t *testing.T) {
	c := testCampaign()
	c.Cfg.Feedback = mgrconfig.Feedback{BranchCount: true, SanCov: true}
	c.Stats.SanCov.HitBB.Set(50)
	c.Stats.SanCov.TotalBB.Set(200)
	lines := composeAt(c, time.Second, ANSI)
	want := "  - total hit #bb:      " + escBold + "50" + escReset +
		" (coverage " + escBold + "25" + escReset + "%)"
	assert.Contains(t, lines, want)
	assert.Contains(t, lines, "Iterations: "+escBold+"1200"+escReset)
	assert.Contains(t, lines, "Crashes: "+escBold+"3"+escReset+" (unique: "+escBold+"2"+escReset+
		", blacklist: "+escBold+"1"+escReset+", verified: "+escBold+"0"+escReset+")")
	for _, line := range composeAt(c, time.Second, Plain) {
		assert.NotContains(t, line, "\033")
	}
}

func TestComposeZeroCoverage(t *testing.T) {
	c := testCampaign()
	c.Cfg.Feedback = mgrconfig.Feedback{SanCov: true}
	c.Stats.SanCov.HitBB.Set(10)
	lines := composeAt(c, time.Second, Plain)
	assert.Contains(t, lines, "  - total hit #bb:      10 (coverage 0%)")
}

func hasPrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func TestComposeRandom(t *testing.T) {
	rnd := rand.New(testutil.RandSource(t))
	names := []string{"instr", "branch", "bts_block", "bts_edge", "ipt_block", "custom", "sancov"}
	for i := 0; i < testutil.IterCount(); i++ {
		var enabled []string
		for _, name := range names {
			if rnd.Intn(3) == 0 {
				enabled = append(enabled, name)
			}
		}
		fb, err := mgrconfig.ParseFeedback(enabled)
		if err != nil {
			t.Fatal(err)
		}
		c := testCampaign()
		c.Cfg.Feedback = fb
		c.Cfg.PID = rnd.Intn(3) - 1
		c.Cfg.Verifier = rnd.Intn(2) == 0
		if rnd.Intn(2) == 0 {
			c.Cfg.FlipRate = 0
		}
		c.Cfg.MutationsMax = uint64(rnd.Intn(3000))
		total := uint64(rnd.Intn(1000))
		c.Stats.SanCov.TotalBB.Set(total)
		c.Stats.SanCov.HitBB.Set(uint64(rnd.Int63n(int64(total) + 1)))
		lines := composeAt(c, time.Duration(rnd.Intn(1000))*time.Second, Plain)

		want := 10
		if c.Cfg.PID > 0 {
			want++
		}
		if c.Cfg.FlipRate == 0 && c.Cfg.Verifier {
			want++
		}
		if fb.Any() {
			want += 3
		}
		for _, on := range []bool{fb.InstrCount, fb.BranchCount, fb.BTSBlock, fb.BTSEdge, fb.IPTBlock, fb.Custom} {
			if on {
				want++
			}
		}
		if fb.SanCov {
			want += 4
		}
		assert.Len(t, lines, want, "feedback %v", fb)
		assert.Equal(t, header, lines[0])
		assert.Equal(t, footer, lines[len(lines)-1])
		iters := fmt.Sprintf("Iterations: %v", campaign.Clamp(1200, c.Cfg.MutationsMax))
		if c.Cfg.MutationsMax != 0 {
			iters += fmt.Sprintf(" (out of: %v)", c.Cfg.MutationsMax)
		}
		assert.Equal(t, iters, lines[1])
		for _, line := range lines {
			assert.NotContains(t, line, "\033")
		}
	}
}
