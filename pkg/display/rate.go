// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

// State is carried between frames to compute the per-frame rate.
// It is not synchronized: it must be used by a single goroutine.
type State struct {
	prev uint64
}

// Update returns the number of iterations since the previous call and remembers cur.
// The first call returns cur itself.
func (st *State) Update(cur uint64) uint64 {
	var rate uint64
	if cur >= st.prev {
		rate = cur - st.prev
	}
	st.prev = cur
	return rate
}

func avgRate(count, elapsed uint64) uint64 {
	if elapsed == 0 {
		return 0
	}
	return count / elapsed
}

func coveragePercent(hit, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	return hit * 100 / total
}
