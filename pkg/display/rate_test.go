// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateColdStart(t *testing.T) {
	var st State
	assert.Equal(t, uint64(1234), st.Update(1234))
}

func TestStateConsecutive(t *testing.T) {
	var st State
	rnd := rand.New(rand.NewSource(0))
	cur := uint64(0)
	st.Update(cur)
	for i := 0; i < 1000; i++ {
		next := cur + uint64(rnd.Intn(100000))
		assert.Equal(t, next-cur, st.Update(next))
		cur = next
	}
}

func TestStateUpdatesUnconditionally(t *testing.T) {
	var st State
	st.Update(100)
	// The counter can't go backwards, but the clamped value can if the cap is lowered.
	assert.Equal(t, uint64(0), st.Update(50))
	assert.Equal(t, uint64(10), st.Update(60))
	assert.Equal(t, uint64(0), st.Update(60))
}

func TestAvgRate(t *testing.T) {
	tests := []struct {
		count, elapsed, want uint64
	}{
		{0, 0, 0},
		{1000, 0, 0},
		{1000, 1, 1000},
		{1000, 3, 333},
		{5, 10, 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, avgRate(test.count, test.elapsed), "count=%v elapsed=%v", test.count, test.elapsed)
	}
}

func TestCoveragePercent(t *testing.T) {
	tests := []struct {
		hit, total, want uint64
	}{
		{0, 0, 0},
		{10, 0, 0},
		{0, 200, 0},
		{50, 200, 25},
		{1, 3, 33},
		{2, 3, 66},
		{200, 200, 100},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, coveragePercent(test.hit, test.total), "hit=%v total=%v", test.hit, test.total)
	}
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		total := uint64(rnd.Intn(1<<20)) + 1
		hit := uint64(rnd.Int63n(int64(total) + 1))
		pct := coveragePercent(hit, total)
		assert.LessOrEqual(t, pct, uint64(100))
		assert.Equal(t, hit*100/total, pct)
	}
}
