// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

import (
	"fmt"
)

const (
	escBold  = "\033[1m"
	escReset = "\033[0m"

	header = "============================== STAT =============================="
	footer = "============================== LOGS =============================="

	timeFormat = "2006-01-02 15:04:05"
)

// Style defines how dynamic values are emphasized.
type Style struct {
	Bold  string
	Reset string
}

var (
	ANSI  = Style{Bold: escBold, Reset: escReset}
	Plain = Style{}
)

func (style Style) b(v any) string {
	return style.Bold + fmt.Sprint(v) + style.Reset
}

// Compose formats the status report. Optional sections are included depending on
// campaign mode and enabled feedback mechanisms. The output is meant for humans only.
func Compose(s *Snapshot, style Style) []string {
	b := style.b
	lines := []string{header}
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	iters := "Iterations: " + b(s.Mutations)
	if s.MutationsMax > 0 {
		iters += " (out of: " + b(s.MutationsMax) + ")"
	}
	lines = append(lines, iters)
	add("Start time: %v (%v seconds elapsed)", b(s.Start.Local().Format(timeFormat)), b(s.Elapsed))
	add("Input file/dir: '%v'", b(s.Input))
	add("Fuzzed cmd: '%v'", b(s.Cmdline))
	if s.PID > 0 {
		add("Remote cmd [%v]: '%v'", b(s.PID), b(s.PIDCmd))
	}
	add("Fuzzing threads: %v", b(s.Threads))
	add("Execs per second: %v (avg: %v)", b(s.Rate), b(s.AvgRate))
	if s.DryRun {
		add("Input Files: '%v'", b(s.Files))
	}
	add("Crashes: %v (unique: %v, blacklist: %v, verified: %v)",
		b(s.Crashes), b(s.UniqueCrashes), b(s.BlacklistedCrashes), b(s.VerifiedCrashes))
	add("Timeouts: %v", b(s.Timeouts))

	fb := s.Feedback
	if fb.Any() {
		add("Dynamic file size: %v (max: %v)", b(s.DynFileBestSize), b(s.MaxFileSize))
		add("Dynamic file max iterations keep for chosen seed (%v/%v)",
			b(s.DynFileIterExpire), b(s.MaxDynFileIter))
		add("Coverage (max):")
	}
	hw := []struct {
		enabled bool
		name    string
		val     uint64
	}{
		{fb.InstrCount, "cpu instructions", s.HW.CPUInstr},
		{fb.BranchCount, "cpu branches", s.HW.CPUBranch},
		{fb.BTSBlock, "BTS unique blocks", s.HW.BTSBlock},
		{fb.BTSEdge, "BTS unique edges", s.HW.BTSEdge},
		{fb.IPTBlock, "PT unique blocks", s.HW.IPTBlock},
		{fb.Custom, "custom counter", s.HW.Custom},
	}
	for _, h := range hw {
		if h.enabled {
			add("  - %-19v %v", h.name+":", b(h.val))
		}
	}
	if fb.SanCov {
		cov := &s.SanCov
		add("  - %-19v %v (coverage %v%%)", "total hit #bb:", b(cov.HitBB),
			b(coveragePercent(cov.HitBB, cov.TotalBB)))
		add("  - %-19v %v (instrumented only)", "total #dso:", b(cov.DSOs))
		add("  - %-19v %v (new from input seed)", "discovered #bb:", b(cov.NewBB))
		add("  - %-19v %v", "crashes:", b(cov.Crashes))
	}
	lines = append(lines, footer)
	return lines
}
