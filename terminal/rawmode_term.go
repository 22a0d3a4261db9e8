//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

import (
	"golang.org/x/term"
)

// termStateDevice falls back to x/term raw mode where termios ioctls are not wired
type termStateDevice struct {
	fd   int
	orig *term.State
}

func newRawDevice(fd int) modeDevice {
	return &termStateDevice{fd: fd}
}

func (d *termStateDevice) save() error {
	st, err := term.GetState(d.fd)
	if err != nil {
		return err
	}
	d.orig = st
	return nil
}

func (d *termStateDevice) makeRaw() error {
	_, err := term.MakeRaw(d.fd)
	return err
}

func (d *termStateDevice) restore() error {
	return term.Restore(d.fd, d.orig)
}

// resetTerminalMode has no state to recover without a live session here
func resetTerminalMode() {}
