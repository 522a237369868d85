package charstream

import (
	"bytes"
	"errors"
	"sync"
)

// ErrClosed is reported by Err after Close.
var ErrClosed = errors.New("stream closed")

// Buffer is an in-memory Stream. Input is queued with Feed; everything written
// is collected and can be read back with Output or TakeOutput.
type Buffer struct {
	mu      sync.Mutex
	input   []byte
	output  bytes.Buffer
	flushes int
	closed  bool
}

// NewBuffer creates an open, empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Feed queues s as pending input.
func (b *Buffer) Feed(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.input = append(b.input, s...)
}

// Available implements Stream.
func (b *Buffer) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.input) > 0
}

// ReadOne implements Stream.
func (b *Buffer) ReadOne() (byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.input) == 0 {
		return 0, false
	}
	c := b.input[0]
	b.input = b.input[1:]
	return c, true
}

// Write implements Stream.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrClosed
	}
	return b.output.Write(p)
}

// Flush implements Stream. It only counts calls.
func (b *Buffer) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushes++
	return nil
}

// Flushes returns how many times Flush was called.
func (b *Buffer) Flushes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushes
}

// IsOpen implements Stream. A closed buffer stays open while pending input remains.
func (b *Buffer) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed || len(b.input) > 0
}

// Err implements Stream.
func (b *Buffer) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

// Close marks the buffer closed. Pending input can still be read.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// Output returns everything written so far.
func (b *Buffer) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output.String()
}

// TakeOutput returns everything written since the last call and clears it.
func (b *Buffer) TakeOutput() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.output.String()
	b.output.Reset()
	return s
}
