//go:build !windows

package terminal

import "os"

// New opens an escape-sequence session on stdin and stdout
func New() (Terminal, error) {
	return NewANSI(os.Stdin, os.Stdout)
}
