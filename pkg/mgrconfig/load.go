// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package mgrconfig

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/google/fuzzstat/pkg/config"
	"github.com/google/fuzzstat/pkg/osutil"
	"github.com/google/uuid"
)

const (
	DefaultMaxFileSize    = 1 << 20
	DefaultMaxDynFileIter = 0x2000
	DefaultFlipRate       = 0.001
	DefaultRefreshMs      = 1000
	DefaultScreenBuffer   = 4 << 10
	maxThreads            = 1024
)

func LoadData(data []byte) (*Config, error) {
	cfg := defaultValues()
	if err := config.LoadData(data, cfg); err != nil {
		return nil, err
	}
	if err := Complete(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFile(filename string) (*Config, error) {
	cfg := defaultValues()
	if err := config.LoadFile(filename, cfg); err != nil {
		return nil, err
	}
	if err := Complete(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultValues() *Config {
	return &Config{
		Threads:        max(1, runtime.NumCPU()/2),
		MaxFileSize:    DefaultMaxFileSize,
		FlipRate:       DefaultFlipRate,
		MaxDynFileIter: DefaultMaxDynFileIter,
		RefreshMs:      DefaultRefreshMs,
		ScreenBuffer:   DefaultScreenBuffer,
	}
}

func Complete(cfg *Config) error {
	if cfg.Input == "" {
		return fmt.Errorf("config param input is empty")
	}
	cfg.Input = osutil.Abs(cfg.Input)
	if err := osutil.IsAccessible(cfg.Input); err != nil {
		return fmt.Errorf("bad config param input: %w", err)
	}
	if len(cfg.Cmdline) == 0 {
		return fmt.Errorf("config param cmdline is empty")
	}
	cfg.CmdlineText = strings.Join(cfg.Cmdline, " ")
	if cfg.Threads < 1 || cfg.Threads > maxThreads {
		return fmt.Errorf("bad config param threads: '%v', want [1, %v]", cfg.Threads, maxThreads)
	}
	if cfg.FlipRate < 0 || cfg.FlipRate > 1 {
		return fmt.Errorf("bad config param flip_rate: '%v', want [0, 1]", cfg.FlipRate)
	}
	if cfg.MaxFileSize == 0 {
		return fmt.Errorf("config param max_file_size is 0")
	}
	if cfg.MaxDynFileIter == 0 {
		return fmt.Errorf("config param max_dynfile_iter is 0")
	}
	if cfg.RefreshMs < 10 {
		return fmt.Errorf("bad config param refresh_ms: '%v', want >= 10", cfg.RefreshMs)
	}
	if cfg.ScreenBuffer < 64 {
		return fmt.Errorf("bad config param screen_buffer: '%v', want >= 64", cfg.ScreenBuffer)
	}
	if cfg.LogTail < 0 {
		return fmt.Errorf("bad config param log_tail: '%v'", cfg.LogTail)
	}
	if cfg.PID < 0 {
		return fmt.Errorf("bad config param pid: '%v'", cfg.PID)
	}
	if cfg.PID > 0 && cfg.PIDCmd == "" {
		cmd, err := osutil.ProcessCmdline(cfg.PID)
		if err != nil {
			return fmt.Errorf("pid is set, but pid_cmd is empty: %w", err)
		}
		cfg.PIDCmd = cmd
	}
	fb, err := ParseFeedback(cfg.FeedbackList)
	if err != nil {
		return fmt.Errorf("bad config param feedback: %w", err)
	}
	cfg.Feedback = fb
	if cfg.Name == "" {
		cfg.Name = uuid.NewString()
	}
	return nil
}
