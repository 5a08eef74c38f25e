// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package osutil

import (
	"bytes"
	"fmt"
	"os"
)

// ProcessCmdline returns command line of a running process with arguments separated by spaces.
func ProcessCmdline(pid int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%v/cmdline", pid))
	if err != nil {
		return "", fmt.Errorf("failed to read cmdline of pid %v: %w", pid, err)
	}
	data = bytes.TrimRight(data, "\x00")
	return string(bytes.ReplaceAll(data, []byte{0}, []byte{' '})), nil
}
