package terminal

import (
	"fmt"
	"io"
	"iter"
)

// readBufSize bounds one raw read from the input stream
const readBufSize = 1024

// DecodeBytes decodes one raw read from a byte-stream terminal
// A single ASCII byte is a KeyRune with no modifiers; any other chunk (empty,
// multi-byte, non-ASCII) is KeyUnknown
func DecodeBytes(data []byte) Event {
	if len(data) != 1 {
		return UnknownEvent()
	}
	b := data[0]
	if b >= 0x80 {
		return UnknownEvent()
	}
	return RuneEvent(rune(b), ModNone)
}

// byteSource performs one blocking read per wait cycle and decodes it
type byteSource struct {
	in  io.Reader
	buf []byte
}

func newByteSource(in io.Reader) *byteSource {
	return &byteSource{
		in:  in,
		buf: make([]byte, readBufSize),
	}
}

// cycle returns the sequence for a single wait cycle
// The decoded event is yielded before a read error so partial reads are not lost
func (s *byteSource) cycle() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		n, err := s.in.Read(s.buf)
		if n > 0 || err == nil || err == io.EOF {
			if !yield(DecodeBytes(s.buf[:n]), nil) {
				return
			}
		}
		if err != nil {
			yield(Event{}, fmt.Errorf("read input: %w", err))
		}
	}
}
