// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package mgrconfig

import (
	"fmt"
	"strings"
)

// Feedback describes which feedback mechanisms steer mutation.
// Fields are independent, the status screen checks them in declaration order.
type Feedback struct {
	// Hardware perf counters.
	InstrCount  bool
	BranchCount bool
	// Intel BTS unique basic blocks and edges.
	BTSBlock bool
	BTSEdge  bool
	// Intel PT unique basic blocks.
	IPTBlock bool
	// Custom counter reported by the target.
	Custom bool
	// Software coverage (sanitizer coverage instrumentation).
	SanCov bool
}

var feedbackNames = []struct {
	name string
	get  func(*Feedback) *bool
}{
	{"instr", func(fb *Feedback) *bool { return &fb.InstrCount }},
	{"branch", func(fb *Feedback) *bool { return &fb.BranchCount }},
	{"bts_block", func(fb *Feedback) *bool { return &fb.BTSBlock }},
	{"bts_edge", func(fb *Feedback) *bool { return &fb.BTSEdge }},
	{"ipt_block", func(fb *Feedback) *bool { return &fb.IPTBlock }},
	{"custom", func(fb *Feedback) *bool { return &fb.Custom }},
	{"sancov", func(fb *Feedback) *bool { return &fb.SanCov }},
}

func ParseFeedback(names []string) (Feedback, error) {
	var fb Feedback
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || name == "none" {
			continue
		}
		found := false
		for _, fn := range feedbackNames {
			if fn.name == name {
				*fn.get(&fb) = true
				found = true
				break
			}
		}
		if !found {
			return Feedback{}, fmt.Errorf("unknown feedback mechanism %q", name)
		}
	}
	return fb, nil
}

// HW returns true if any hardware-based feedback is enabled.
func (fb Feedback) HW() bool {
	return fb.InstrCount || fb.BranchCount || fb.BTSBlock || fb.BTSEdge || fb.IPTBlock || fb.Custom
}

// Any returns true if any feedback mechanism is enabled.
func (fb Feedback) Any() bool {
	return fb.HW() || fb.SanCov
}

func (fb Feedback) String() string {
	var res []string
	for _, fn := range feedbackNames {
		if *fn.get(&fb) {
			res = append(res, fn.name)
		}
	}
	if len(res) == 0 {
		return "none"
	}
	return strings.Join(res, ",")
}
