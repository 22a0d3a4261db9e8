//go:build windows

package terminal

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Console calls that golang.org/x/sys/windows does not wrap
var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetConsoleCursorInfo        = kernel32.NewProc("GetConsoleCursorInfo")
	procSetConsoleCursorInfo        = kernel32.NewProc("SetConsoleCursorInfo")
	procFillConsoleOutputCharacterW = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute  = kernel32.NewProc("FillConsoleOutputAttribute")
	procSetConsoleTextAttribute     = kernel32.NewProc("SetConsoleTextAttribute")
)

// consoleCursorInfo mirrors CONSOLE_CURSOR_INFO
type consoleCursorInfo struct {
	Size    uint32
	Visible int32
}

// coordArg packs a COORD into the single register it is passed by value in
func coordArg(c windows.Coord) uintptr {
	return uintptr(uint16(c.X)) | uintptr(uint16(c.Y))<<16
}

// callErr converts a BOOL-returning call result into an error
func callErr(r uintptr, err error) error {
	if r != 0 {
		return nil
	}
	if err == nil || err == windows.ERROR_SUCCESS {
		return windows.ERROR_INVALID_FUNCTION
	}
	return err
}

func getConsoleCursorInfo(h windows.Handle, info *consoleCursorInfo) error {
	r, _, err := procGetConsoleCursorInfo.Call(uintptr(h), uintptr(unsafe.Pointer(info)))
	return callErr(r, err)
}

func setConsoleCursorInfo(h windows.Handle, info *consoleCursorInfo) error {
	r, _, err := procSetConsoleCursorInfo.Call(uintptr(h), uintptr(unsafe.Pointer(info)))
	return callErr(r, err)
}

func fillConsoleOutputCharacter(h windows.Handle, ch uint16, length uint32, at windows.Coord, written *uint32) error {
	r, _, err := procFillConsoleOutputCharacterW.Call(uintptr(h), uintptr(ch), uintptr(length), coordArg(at), uintptr(unsafe.Pointer(written)))
	return callErr(r, err)
}

func fillConsoleOutputAttribute(h windows.Handle, attr uint16, length uint32, at windows.Coord, written *uint32) error {
	r, _, err := procFillConsoleOutputAttribute.Call(uintptr(h), uintptr(attr), uintptr(length), coordArg(at), uintptr(unsafe.Pointer(written)))
	return callErr(r, err)
}

func setConsoleTextAttribute(h windows.Handle, attr uint16) error {
	r, _, err := procSetConsoleTextAttribute.Call(uintptr(h), uintptr(attr))
	return callErr(r, err)
}
