// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package tool contains various helper utilitites useful for implementation of command line tools.
package tool

import (
	"flag"
	"fmt"
	"os"
)

func Failf(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func Fail(err error) {
	Failf("%v", err)
}

// Init parses command line flags and adds -cpuprofile/-memprofile flags.
// The returned function must be called before exit to flush the profiles.
func Init(set *flag.FlagSet, args []string) func() {
	cpuprof := set.String("cpuprofile", "", "write CPU profile to this file")
	memprof := set.String("memprofile", "", "write memory profile to this file")
	if err := set.Parse(args); err != nil {
		Fail(err)
	}
	return installProfiling(*cpuprof, *memprof)
}
