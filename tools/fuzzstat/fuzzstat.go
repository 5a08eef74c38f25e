// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// fuzzstat shows the live status screen of a fuzzing campaign described by a config file.
// With -simulate the campaign is driven by synthetic fuzzing threads.
// When stdout is not a terminal, a one-line summary is logged every period instead.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/fuzzstat/pkg/campaign"
	"github.com/google/fuzzstat/pkg/display"
	"github.com/google/fuzzstat/pkg/log"
	"github.com/google/fuzzstat/pkg/mgrconfig"
	"github.com/google/fuzzstat/pkg/osutil"
	"github.com/google/fuzzstat/pkg/stat"
	"github.com/google/fuzzstat/pkg/statserver"
	"github.com/google/fuzzstat/pkg/tool"
	"golang.org/x/sync/errgroup"
)

var (
	flagConfig   = flag.String("config", "", "campaign config file (JSON or YAML)")
	flagSimulate = flag.Bool("simulate", false, "drive the campaign with synthetic fuzzing threads")
	flagDuration = flag.Duration("duration", 0, "stop after this time (0 means run until interrupted)")
	flagFeedback tool.ListFlag
)

func init() {
	flag.Var(&flagFeedback, "feedback", "comma-separated feedback mechanisms (overrides the config)")
}

func main() {
	defer tool.Init(flag.CommandLine, os.Args[1:])()
	cfg, err := mgrconfig.LoadFile(*flagConfig)
	if err != nil {
		tool.Fail(err)
	}
	if len(flagFeedback) != 0 {
		if cfg.Feedback, err = mgrconfig.ParseFeedback(flagFeedback); err != nil {
			tool.Fail(err)
		}
		cfg.FeedbackList = flagFeedback
	}
	// Cached lines are shown under the status screen and served on /logs.
	log.EnableLogCaching(max(cfg.LogTail, 1000), 1<<20)
	c := campaign.New(cfg, time.Now())
	c.Register(stat.Default())
	log.Logf(0, "campaign %v: fuzzing %q with %v threads, feedback: %v",
		cfg.Name, cfg.CmdlineText, cfg.Threads, cfg.Feedback)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	shutdown := make(chan struct{})
	osutil.HandleInterrupts(shutdown)
	go func() {
		<-shutdown
		cancel()
	}()
	if *flagDuration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, *flagDuration)
		defer stop()
	}
	if err := run(ctx, c, *flagSimulate); err != nil {
		log.Fatal(err)
	}
	log.Logf(0, "campaign %v finished: %v", cfg.Name, stat.Heartbeat(stat.Console))
}

func run(ctx context.Context, c *campaign.Campaign, simulate bool) error {
	cfg := c.Cfg
	g, groupCtx := errgroup.WithContext(ctx)
	// The status output outlives the fuzzing threads to show the final numbers.
	uiCtx, uiCancel := context.WithCancel(groupCtx)
	defer uiCancel()
	if simulate {
		g.Go(func() error {
			defer uiCancel()
			return newEngine(c).run(groupCtx)
		})
	}
	period := time.Duration(cfg.RefreshMs) * time.Millisecond
	g.Go(func() error {
		if osutil.IsTerminal(os.Stdout) {
			display.Loop(uiCtx, display.New(c, display.NewTerminal(os.Stdout, cfg.ScreenBuffer)), period)
		} else {
			heartbeat(uiCtx, period)
		}
		return nil
	})
	if cfg.HTTP != "" {
		serv := &statserver.HTTPServer{
			Addr:     cfg.HTTP,
			Campaign: c,
		}
		g.Go(func() error {
			return serv.Serve(uiCtx)
		})
	}
	return g.Wait()
}

func heartbeat(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Logf(0, "STAT %v", stat.Heartbeat(stat.Console))
			return
		case <-ticker.C:
			log.Logf(0, "STAT %v", stat.Heartbeat(stat.Console))
		}
	}
}
