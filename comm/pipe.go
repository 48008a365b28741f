package comm

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
)

const pipeTransport = "pipe"

// pipeBacklog is the number of frames a side can send ahead of the peer
// consuming them. It is large enough that the strictly sequential exchanges
// of the framework never block on the channel itself.
const pipeBacklog = 1024

// Pipe is an in-memory Conn. Pipes are created in permanently connected
// pairs, so Connect and Accept complete immediately; they exist to satisfy
// the Conn contract for tests, examples and single-process setups.
type Pipe struct {
	out  chan<- []byte
	in   <-chan []byte
	done chan struct{}
	once *sync.Once

	sent atomic.Uint64
	rcvd atomic.Uint64
}

var _ Conn = &Pipe{}

// Pair creates two connected in-memory Conns.
// Closing either side closes the pair.
func Pair() (*Pipe, *Pipe) {
	ab := make(chan []byte, pipeBacklog)
	ba := make(chan []byte, pipeBacklog)
	done := make(chan struct{})
	var once sync.Once
	a := &Pipe{out: ab, in: ba, done: done, once: &once}
	b := &Pipe{out: ba, in: ab, done: done, once: &once}
	return a, b
}

// Connect implements Conn.
func (p *Pipe) Connect(ctx context.Context) error {
	select {
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Accept implements Conn.
func (p *Pipe) Accept(ctx context.Context) error {
	return p.Connect(ctx)
}

// Send implements Conn.
func (p *Pipe) Send(buf []byte) error {
	// frame the buffer exactly like a stream transport would so that the
	// byte accounting matches
	var b bytes.Buffer
	if err := writeFrame(&b, buf); err != nil {
		return err
	}
	frame := b.Bytes()
	select {
	case <-p.done:
		return ErrClosed
	case p.out <- frame:
		p.sent.Add(uint64(len(frame)))
		sentBytes.WithLabelValues(pipeTransport).Add(float64(len(frame)))
		return nil
	}
}

// Receive implements Conn.
func (p *Pipe) Receive() ([]byte, error) {
	select {
	case <-p.done:
		return nil, ErrClosed
	case frame := <-p.in:
		p.rcvd.Add(uint64(len(frame)))
		receivedBytes.WithLabelValues(pipeTransport).Add(float64(len(frame)))
		return readFrame(bytes.NewReader(frame))
	}
}

// BytesSent implements Conn.
func (p *Pipe) BytesSent() uint64 {
	return p.sent.Load()
}

// BytesReceived implements Conn.
func (p *Pipe) BytesReceived() uint64 {
	return p.rcvd.Load()
}

// ResetCounters implements Conn.
func (p *Pipe) ResetCounters() {
	p.sent.Store(0)
	p.rcvd.Store(0)
}

// ListenPort implements Conn.
func (p *Pipe) ListenPort() int {
	return NoListenPort
}

// Close implements Conn.
func (p *Pipe) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}
