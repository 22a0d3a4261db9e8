package terminal

import (
	"fmt"
	"sync"
)

// modeDevice reads and writes the input mode of one device
// save must query the live device and store the result before anything else is called
type modeDevice interface {
	save() error
	makeRaw() error
	restore() error
}

// RawMode guards raw input mode on one device
// The mode captured at acquisition is restored exactly once
type RawMode struct {
	dev  modeDevice
	once sync.Once
	err  error
}

// acquireRawMode stores the current mode of dev and switches it to raw mode
// On failure the device is left in (or returned to) its original mode
func acquireRawMode(dev modeDevice) (*RawMode, error) {
	if err := dev.save(); err != nil {
		return nil, fmt.Errorf("query input mode: %w", err)
	}
	if err := dev.makeRaw(); err != nil {
		if rerr := dev.restore(); rerr != nil {
			return nil, fmt.Errorf("set raw mode: %w (restore: %v)", err, rerr)
		}
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	return &RawMode{dev: dev}, nil
}

// Release restores the original mode; later calls return the first result
func (g *RawMode) Release() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		if err := g.dev.restore(); err != nil {
			g.err = fmt.Errorf("restore input mode: %w", err)
		}
	})
	return g.err
}
