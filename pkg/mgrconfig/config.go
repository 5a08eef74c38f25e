// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package mgrconfig

type Config struct {
	// Campaign name (used for identification in logs and metrics).
	// A random UUID is used if not set.
	Name string `json:"name"`
	// Input file or directory with the initial corpus.
	Input string `json:"input"`
	// Command line of the fuzzed binary, e.g. ["/usr/bin/djpeg", "___FILE___"].
	Cmdline []string `json:"cmdline"`
	// PID of an already running process to attach to (optional).
	// If set, the target is not spawned, but attached to.
	PID int `json:"pid,omitempty"`
	// Command line of the attached process (optional, read from /proc if empty).
	PIDCmd string `json:"pid_cmd,omitempty"`
	// Number of concurrent fuzzing threads (half of CPUs by default).
	Threads int `json:"threads"`
	// Maximum number of iterations, 0 means no limit.
	MutationsMax uint64 `json:"mutations_max"`
	// Maximum size of a fuzzed file (1 MB by default).
	MaxFileSize uint64 `json:"max_file_size"`
	// Fraction of bits flipped in each input, [0, 1].
	// 0 together with verifier means dry run: inputs are only replayed.
	FlipRate float64 `json:"flip_rate"`
	// Re-run crashing inputs to verify the crashes.
	Verifier bool `json:"verifier"`
	// Enabled feedback mechanisms, a subset of:
	// "instr", "branch", "bts_block", "bts_edge", "ipt_block", "custom", "sancov".
	FeedbackList []string `json:"feedback,omitempty"`
	// Number of iterations a dynamic input seed is kept before it expires.
	MaxDynFileIter uint64 `json:"max_dynfile_iter"`
	// Status screen refresh period in milliseconds.
	RefreshMs int `json:"refresh_ms"`
	// Capacity of the status screen output buffer in bytes. Frames are truncated to it.
	ScreenBuffer int `json:"screen_buffer"`
	// Number of recent log lines shown under the status screen.
	LogTail int `json:"log_tail"`
	// Address to serve /metrics and /status on (e.g. "localhost:56741"), optional.
	HTTP string `json:"http,omitempty"`

	// Derived values.
	Feedback    Feedback `json:"-"`
	CmdlineText string   `json:"-"`
}
