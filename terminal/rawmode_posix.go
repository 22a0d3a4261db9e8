//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// rawLocalFlags are cleared from c_lflag in raw mode
const rawLocalFlags = unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN

// cookedLocalFlags are set back by crash recovery; ECHONL is off in a normal cooked tty
const cookedLocalFlags = unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN

// termiosDevice switches a tty descriptor between its saved termios and raw mode
type termiosDevice struct {
	fd   int
	orig unix.Termios
}

func newRawDevice(fd int) modeDevice {
	return &termiosDevice{fd: fd}
}

func (d *termiosDevice) save() error {
	t, err := unix.IoctlGetTermios(d.fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	d.orig = *t
	return nil
}

func (d *termiosDevice) makeRaw() error {
	raw := d.orig
	makeRawTermios(&raw)
	return unix.IoctlSetTermios(d.fd, ioctlWriteTermios, &raw)
}

func (d *termiosDevice) restore() error {
	orig := d.orig
	return unix.IoctlSetTermios(d.fd, ioctlWriteTermios, &orig)
}

// makeRawTermios disables echo, echoed newline, canonical input, signal characters
// and extended input processing; all other fields are kept verbatim
func makeRawTermios(t *unix.Termios) {
	t.Lflag &^= rawLocalFlags
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		if termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err == nil {
			resetCookedTermios(termios)
			unix.IoctlSetTermios(fd, ioctlWriteTermios, termios)
		}
	}
}

// resetCookedTermios turns line editing, echo and signals back on
func resetCookedTermios(t *unix.Termios) {
	t.Lflag |= cookedLocalFlags
	t.Iflag |= unix.ICRNL
}
