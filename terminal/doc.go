// @focus: #sys { term }
// Package terminal provides a minimal cross-platform terminal control session.
//
// Features:
//   - One Terminal interface: clear, absolute/relative cursor moves, print, flush, key events
//   - Escape-sequence backend for POSIX ttys, structured-call backend for Windows consoles
//   - Raw input mode acquired at construction and restored exactly once on Close
//   - Single-byte and console-record key decoding into one Event type
//   - Clean terminal restoration on panic
//
// The escape-sequence backend bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
package terminal
