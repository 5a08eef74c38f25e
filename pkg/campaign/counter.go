// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package campaign

import (
	"sync/atomic"
)

// Counter is a campaign counter updated concurrently by fuzzing threads.
// All accesses are atomic, readers never block writers.
type Counter struct {
	v atomic.Uint64
}

func (c *Counter) Get() uint64 {
	return c.v.Load()
}

func (c *Counter) Inc() uint64 {
	return c.v.Add(1)
}

func (c *Counter) Add(v uint64) uint64 {
	return c.v.Add(v)
}

func (c *Counter) Set(v uint64) {
	c.v.Store(v)
}

// SetMax raises the counter to v if v is larger.
func (c *Counter) SetMax(v uint64) {
	for {
		old := c.v.Load()
		if v <= old || c.v.CompareAndSwap(old, v) {
			return
		}
	}
}
