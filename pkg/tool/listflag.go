// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"errors"
	"fmt"
	"strings"
)

// ListFlag allows passing a comma-separated list of values to a flag,
// e.g. -feedback=instr,sancov.
type ListFlag []string

// String correctly converts the flag values into a string which is required to
// parse them afterwards.
func (list *ListFlag) String() string {
	return strings.Join(*list, ",")
}

// Set is used by flag.Parse to correctly parse the command line arguments.
func (list *ListFlag) Set(value string) error {
	if len(*list) > 0 {
		return errors.New("list flag was already set")
	}
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			return fmt.Errorf("empty element in list %q", value)
		}
		*list = append(*list, v)
	}
	return nil
}
