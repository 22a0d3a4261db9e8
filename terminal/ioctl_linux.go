package terminal

import "golang.org/x/sys/unix"

// TCSETSF drains output and discards pending input before applying (TCSAFLUSH)
const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETSF
)
