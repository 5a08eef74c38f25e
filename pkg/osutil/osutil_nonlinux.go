// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build !linux

package osutil

import "fmt"

func ProcessCmdline(pid int) (string, error) {
	return "", fmt.Errorf("reading cmdline of pid %v is not supported on this OS", pid)
}
