package charstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const terminalQueueSize = 4096

// Terminal is a Stream over a terminal file pair. When the input is a
// terminal it is switched to raw mode so keystrokes arrive unbuffered and
// unechoed; Close restores the previous mode. A background goroutine reads
// input into a queue so Available never blocks.
type Terminal struct {
	in    *os.File
	out   *bufio.Writer
	fd    int
	state *term.State
	queue chan byte

	mu     sync.Mutex
	err    error
	closed bool
}

// OpenTerminal prepares in for raw input and starts the reader goroutine.
func OpenTerminal(in *os.File, out io.Writer) (*Terminal, error) {
	t := &Terminal{
		in:    in,
		out:   bufio.NewWriter(out),
		fd:    int(in.Fd()),
		queue: make(chan byte, terminalQueueSize),
	}
	if term.IsTerminal(t.fd) {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return nil, fmt.Errorf("failed to enable raw mode: %w", err)
		}
		t.state = state
	}
	go t.readLoop()
	return t, nil
}

// IsRaw reports whether raw mode was enabled.
func (t *Terminal) IsRaw() bool {
	return t.state != nil
}

// Size returns the terminal width and height, or 80x24 when unknown.
func (t *Terminal) Size() (width, height int) {
	w, h, err := term.GetSize(t.fd)
	if err != nil || w <= 0 {
		return 80, 24
	}
	return w, h
}

func (t *Terminal) readLoop() {
	reader := bufio.NewReader(t.in)
	for {
		c, err := reader.ReadByte()
		if err != nil {
			t.mu.Lock()
			if !errors.Is(err, io.EOF) {
				t.err = err
			}
			t.closed = true
			t.mu.Unlock()
			close(t.queue)
			return
		}
		t.queue <- c
	}
}

// Available implements Stream.
func (t *Terminal) Available() bool {
	return len(t.queue) > 0
}

// ReadOne implements Stream.
func (t *Terminal) ReadOne() (byte, bool) {
	select {
	case c, ok := <-t.queue:
		return c, ok
	default:
		return 0, false
	}
}

// Write implements Stream. Output is buffered until Flush.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Flush implements Stream.
func (t *Terminal) Flush() error {
	return t.out.Flush()
}

// IsOpen implements Stream. The stream stays open while queued input remains.
func (t *Terminal) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed || len(t.queue) > 0
}

// Err implements Stream.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Close flushes output and restores the terminal mode.
func (t *Terminal) Close() error {
	flushErr := t.out.Flush()
	if t.state != nil {
		if err := term.Restore(t.fd, t.state); err != nil {
			return fmt.Errorf("failed to restore terminal: %w", err)
		}
		t.state = nil
	}
	return flushErr
}
