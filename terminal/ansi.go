package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	csiCursorShow = []byte("\x1b[?25h")
)

// Final bytes of the relative cursor movement sequences (CUU, CUD, CUF, CUB)
const (
	finalUp      = 'A'
	finalDown    = 'B'
	finalForward = 'C'
	finalBack    = 'D'
)

// writeInt writes a non-negative integer without allocation
// Negative values are written as 0
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos writes the absolute position sequence (0-indexed input, 1-indexed on the wire)
// bufio errors are sticky, so the final write reports any earlier failure
func writeCursorPos(w *bufio.Writer, row, col int) error {
	w.Write(csi)
	writeInt(w, row+1)
	w.WriteByte(';')
	writeInt(w, col+1)
	return w.WriteByte('H')
}

// writeCursorRel writes CSI n <final>; callers guarantee n > 0 since CSI 0 A means 1
func writeCursorRel(w *bufio.Writer, n int, final byte) error {
	w.Write(csi)
	writeInt(w, n)
	return w.WriteByte(final)
}
