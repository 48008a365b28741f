// Package comm defines the connection-oriented transport consumed by
// reconciliation sessions, along with a TCP implementation and an in-memory
// pair for tests and examples.
//
// A Conn moves opaque byte buffers between two peers and keeps running
// counters of the bytes moved. The framework owns and drives the Conn but
// places no constraint on the underlying medium.
package comm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spacemeshos/go-scale"
)

// NoListenPort is returned by ListenPort when no listener is active.
const NoListenPort = -1

// maxFrameSize bounds a single framed buffer. It must accommodate a full
// item batch, so it is larger than the maximum size of a single item.
const maxFrameSize = 1 << 26

var (
	// ErrClosed is returned when operating on a closed connection.
	ErrClosed = errors.New("connection closed")
	// ErrNotConnected is returned when sending or receiving without an
	// established connection.
	ErrNotConnected = errors.New("not connected")
)

// Conn is a connection-oriented channel to a single remote peer.
//
// Connect and Accept may block; they honor context cancellation. Send and
// Receive block until the buffer is moved or the connection fails; the base
// contract has no timeouts, so a production transport should bound them via
// net deadlines if needed.
type Conn interface {
	// Connect establishes an outbound connection to the peer.
	Connect(ctx context.Context) error
	// Accept waits for an inbound connection from the peer.
	Accept(ctx context.Context) error
	// Send transmits one opaque byte buffer.
	Send(buf []byte) error
	// Receive blocks until one byte buffer arrives and returns it.
	Receive() ([]byte, error)
	// BytesSent returns the number of bytes sent since the last reset.
	BytesSent() uint64
	// BytesReceived returns the number of bytes received since the last reset.
	BytesReceived() uint64
	// ResetCounters zeroes both byte counters.
	ResetCounters()
	// ListenPort returns the local port an active listener is bound to,
	// or NoListenPort if the Conn is not listening.
	ListenPort() int
	// Close releases the connection and any listener. The Conn must not be
	// used afterwards.
	Close() error
}

// writeFrame writes a length-prefixed buffer to w.
func writeFrame(w io.Writer, buf []byte) error {
	if _, err := scale.EncodeByteSliceWithLimit(scale.NewEncoder(w), buf, maxFrameSize); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readFrame reads a single length-prefixed buffer from r.
func readFrame(r io.Reader) ([]byte, error) {
	buf, _, err := scale.DecodeByteSliceWithLimit(scale.NewDecoder(r), maxFrameSize)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return buf, nil
}
