// Package charstream defines the character I/O capability the CLI service is
// driven by, together with an in-memory implementation and a raw terminal one.
//
// All reads are non-blocking polls: Available reports whether ReadOne will
// return a byte right now.
package charstream

import "io"

// Stream is a bidirectional byte stream polled by the input parser.
type Stream interface {
	io.Writer
	// Available reports whether at least one byte can be read without blocking.
	Available() bool
	// ReadOne returns the next byte, or false when none is buffered.
	ReadOne() (byte, bool)
	// Flush pushes buffered output to the device.
	Flush() error
	// IsOpen reports whether the stream can still deliver input.
	IsOpen() bool
	// Err returns the error that closed the stream, if any.
	Err() error
}
