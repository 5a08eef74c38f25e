// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/google/fuzzstat/pkg/log"
)

// installProfiling starts CPU profiling and returns a function that stops it
// and writes the heap profile. Empty file names disable the corresponding profile.
func installProfiling(cpuprof, memprof string) func() {
	var stopCPU func()
	if cpuprof != "" {
		f, err := os.Create(cpuprof)
		if err != nil {
			Failf("failed to create cpuprofile file: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			Failf("failed to start cpu profile: %v", err)
		}
		stopCPU = func() {
			pprof.StopCPUProfile()
			f.Close()
			log.Logf(0, "wrote cpu profile to %v", cpuprof)
		}
	}
	return func() {
		if stopCPU != nil {
			stopCPU()
		}
		if memprof == "" {
			return
		}
		f, err := os.Create(memprof)
		if err != nil {
			Failf("failed to create memprofile file: %v", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			Failf("failed to write mem profile: %v", err)
		}
		log.Logf(0, "wrote memory profile to %v", memprof)
	}
}
