// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

import (
	"io"
	"time"

	"github.com/google/fuzzstat/pkg/campaign"
	"github.com/google/fuzzstat/pkg/mgrconfig"
)

var testStart = time.Date(2026, 10, 17, 12, 30, 0, 0, time.Local)

func testCampaign() *campaign.Campaign {
	cfg := &mgrconfig.Config{
		Name:           "test",
		Input:          "/corpus",
		Cmdline:        []string{"/bin/target", "___FILE___"},
		CmdlineText:    "/bin/target ___FILE___",
		Threads:        4,
		FlipRate:       mgrconfig.DefaultFlipRate,
		MaxFileSize:    mgrconfig.DefaultMaxFileSize,
		MaxDynFileIter: mgrconfig.DefaultMaxDynFileIter,
		ScreenBuffer:   mgrconfig.DefaultScreenBuffer,
	}
	c := campaign.New(cfg, testStart)
	c.Stats.Mutations.Set(1200)
	c.Stats.Crashes.Set(3)
	c.Stats.UniqueCrashes.Set(2)
	c.Stats.BlacklistedCrashes.Set(1)
	c.Stats.Timeouts.Set(5)
	return c
}

func allFeedback() mgrconfig.Feedback {
	return mgrconfig.Feedback{
		InstrCount:  true,
		BranchCount: true,
		BTSBlock:    true,
		BTSEdge:     true,
		IPTBlock:    true,
		Custom:      true,
		SanCov:      true,
	}
}

func testDisplay(c *campaign.Campaign, w io.Writer) *Display {
	return New(c, NewScreen(w, c.Cfg.ScreenBuffer))
}
