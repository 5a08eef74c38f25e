// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build !freebsd && !netbsd && !openbsd && !linux && !darwin

package osutil

import (
	"fmt"
	"os"
	"os/signal"
)

func HandleInterrupts(shutdown chan struct{}) {
	go func() {
		c := make(chan os.Signal, 3)
		signal.Notify(c, os.Interrupt)
		<-c
		close(shutdown)
		fmt.Fprint(os.Stderr, "SIGINT: shutting down...\n")
		<-c
		<-c
		fmt.Fprint(os.Stderr, "SIGINT: terminating\n")
		os.Exit(2)
	}()
}

func WriteOnce(f *os.File, data []byte) (int, error) {
	return f.Write(data)
}
