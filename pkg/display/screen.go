// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package display

import (
	"io"
	"os"

	"github.com/google/fuzzstat/pkg/osutil"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// Screen writes frames to a terminal. Each frame is assembled in a fixed-size
// buffer that is reused between frames; content that does not fit is cut off.
type Screen struct {
	out io.Writer
	buf []byte
}

// Frame describes the outcome of writing one frame.
// Failures are informational only, the next frame is written as usual.
type Frame struct {
	Size      int // bytes in the frame (after truncation)
	Written   int
	Truncated bool
	Err       error
}

func (f Frame) Dropped() bool {
	return f.Err != nil || f.Written < f.Size
}

// NewScreen returns a screen with a buffer of size bytes, negative size is treated as 0.
func NewScreen(out io.Writer, size int) *Screen {
	size = max(size, 0)
	return &Screen{
		out: out,
		buf: make([]byte, 0, size),
	}
}

// NewTerminal returns a screen writing to f with a single write(2) per frame.
func NewTerminal(f *os.File, size int) *Screen {
	return NewScreen(onceWriter{f}, size)
}

type onceWriter struct {
	f *os.File
}

func (w onceWriter) Write(data []byte) (int, error) {
	return osutil.WriteOnce(w.f, data)
}

// Write clears the screen and outputs the lines with exactly one Write call on the
// underlying writer. Errors and short writes are not retried.
func (scr *Screen) Write(lines []string) Frame {
	scr.buf = scr.buf[:0]
	fits := scr.put(clearScreen)
	for _, line := range lines {
		if !fits {
			break
		}
		fits = scr.put(line) && scr.put("\n")
	}
	frame := Frame{
		Size:      len(scr.buf),
		Truncated: !fits,
	}
	frame.Written, frame.Err = scr.out.Write(scr.buf)
	return frame
}

func (scr *Screen) put(s string) bool {
	room := cap(scr.buf) - len(scr.buf)
	if len(s) > room {
		scr.buf = append(scr.buf, s[:room]...)
		return false
	}
	scr.buf = append(scr.buf, s...)
	return true
}
