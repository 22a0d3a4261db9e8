package terminal

import (
	"errors"
	"testing"
)

func TestRawMode_RestoresOriginalMode(t *testing.T) {
	dev := &fakeDevice{mode: 42}

	guard, err := acquireRawMode(dev)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if dev.mode != fakeRawMode {
		t.Fatalf("mode after acquire = %d, want raw", dev.mode)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if dev.mode != 42 {
		t.Errorf("mode after release = %d, want 42", dev.mode)
	}
}

func TestRawMode_ReleaseExactlyOnce(t *testing.T) {
	dev := &fakeDevice{mode: 7}
	guard, err := acquireRawMode(dev)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := guard.Release(); err != nil {
			t.Fatalf("release %d: %v", i, err)
		}
	}
	if dev.restores != 1 {
		t.Errorf("restore called %d times, want 1", dev.restores)
	}

	// A later external mode change must not be overwritten by a stray Release
	dev.mode = 99
	guard.Release()
	if dev.mode != 99 {
		t.Errorf("mode = %d, stray release re-applied state", dev.mode)
	}
}

func TestRawMode_ReleaseErrorIsSticky(t *testing.T) {
	boom := errors.New("boom")
	dev := &fakeDevice{mode: 1}
	guard, err := acquireRawMode(dev)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	dev.restoreErr = boom

	if err := guard.Release(); !errors.Is(err, boom) {
		t.Errorf("first release = %v, want boom", err)
	}
	if err := guard.Release(); !errors.Is(err, boom) {
		t.Errorf("second release = %v, want same error", err)
	}
	if dev.restores != 1 {
		t.Errorf("restore called %d times, want 1", dev.restores)
	}
}

func TestRawMode_QueryFailureAborts(t *testing.T) {
	boom := errors.New("no tty")
	dev := &fakeDevice{mode: 5, saveErr: boom}

	guard, err := acquireRawMode(dev)
	if guard != nil || !errors.Is(err, boom) {
		t.Fatalf("acquire = (%v, %v), want (nil, boom)", guard, err)
	}
	if dev.sets != 0 {
		t.Errorf("device mode was written %d times after failed query", dev.sets)
	}
}

func TestRawMode_SetFailureRestores(t *testing.T) {
	boom := errors.New("denied")
	dev := &fakeDevice{mode: 5, rawErr: boom}

	guard, err := acquireRawMode(dev)
	if guard != nil || !errors.Is(err, boom) {
		t.Fatalf("acquire = (%v, %v), want (nil, denied)", guard, err)
	}
	if dev.mode != 5 {
		t.Errorf("mode = %d, want original 5", dev.mode)
	}
}

func TestRawMode_NilGuardRelease(t *testing.T) {
	var g *RawMode
	if err := g.Release(); err != nil {
		t.Errorf("nil guard release = %v", err)
	}
}
