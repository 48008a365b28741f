package comm

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const tcpTransport = "tcp"

// TCPOpt specifies an option for a TCP connection.
type TCPOpt func(*TCP)

// WithLogger sets the logger for the TCP connection.
func WithLogger(logger *zap.Logger) TCPOpt {
	return func(t *TCP) {
		t.logger = logger
	}
}

// TCP is a Conn that moves buffers over a TCP connection.
//
// The same address is used for both roles: Connect dials it, Accept listens
// on its port. Each Connect or Accept call establishes a fresh session
// connection, replacing the previous one; the listener persists across
// sessions until Close.
type TCP struct {
	logger *zap.Logger
	addr   string

	mu       sync.Mutex
	listener net.Listener
	conn     net.Conn
	closed   bool

	sent atomic.Uint64
	rcvd atomic.Uint64
}

var _ Conn = &TCP{}

// NewTCP creates a TCP Conn for the peer at addr ("host:port").
func NewTCP(addr string, opts ...TCPOpt) *TCP {
	t := &TCP{
		logger: zap.NewNop(),
		addr:   addr,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Connect implements Conn.
func (t *TCP) Connect(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.mu.Unlock()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", t.addr, err)
	}
	t.setConn(conn)
	connections.WithLabelValues(tcpTransport, "client").Inc()
	t.logger.Debug("connected to peer", zap.String("addr", t.addr))
	return nil
}

// Accept implements Conn.
func (t *TCP) Accept(ctx context.Context) error {
	ln, err := t.ensureListener()
	if err != nil {
		return err
	}
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := ln.Accept()
		ch <- result{conn: conn, err: err}
	}()
	select {
	case <-ctx.Done():
		// unblock the pending Accept; the listener is recreated on the
		// next call
		ln.Close()
		t.mu.Lock()
		t.listener = nil
		t.mu.Unlock()
		<-ch
		return ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("accept on %s: %w", ln.Addr(), r.err)
		}
		t.setConn(r.conn)
		connections.WithLabelValues(tcpTransport, "server").Inc()
		t.logger.Debug("accepted peer connection",
			zap.Stringer("local", r.conn.LocalAddr()),
			zap.Stringer("remote", r.conn.RemoteAddr()))
		return nil
	}
}

// Send implements Conn.
func (t *TCP) Send(buf []byte) error {
	conn, err := t.curConn()
	if err != nil {
		return err
	}
	before := t.sent.Load()
	if err := writeFrame(&countingWriter{w: conn, n: &t.sent}, buf); err != nil {
		return err
	}
	sentBytes.WithLabelValues(tcpTransport).Add(float64(t.sent.Load() - before))
	return nil
}

// Receive implements Conn.
func (t *TCP) Receive() ([]byte, error) {
	conn, err := t.curConn()
	if err != nil {
		return nil, err
	}
	before := t.rcvd.Load()
	buf, err := readFrame(&countingReader{r: conn, n: &t.rcvd})
	if err != nil {
		return nil, err
	}
	receivedBytes.WithLabelValues(tcpTransport).Add(float64(t.rcvd.Load() - before))
	return buf, nil
}

// BytesSent implements Conn.
func (t *TCP) BytesSent() uint64 {
	return t.sent.Load()
}

// BytesReceived implements Conn.
func (t *TCP) BytesReceived() uint64 {
	return t.rcvd.Load()
}

// ResetCounters implements Conn.
func (t *TCP) ResetCounters() {
	t.sent.Store(0)
	t.rcvd.Store(0)
}

// ListenPort implements Conn.
func (t *TCP) ListenPort() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return NoListenPort
	}
	return t.listener.Addr().(*net.TCPAddr).Port
}

// Close implements Conn.
func (t *TCP) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	var err error
	if t.conn != nil {
		err = t.conn.Close()
		t.conn = nil
	}
	if t.listener != nil {
		if lerr := t.listener.Close(); err == nil {
			err = lerr
		}
		t.listener = nil
	}
	return err
}

func (t *TCP) ensureListener() (net.Listener, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrClosed
	}
	if t.listener != nil {
		return t.listener, nil
	}
	_, port, err := net.SplitHostPort(t.addr)
	if err != nil {
		return nil, fmt.Errorf("bad peer address %q: %w", t.addr, err)
	}
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	t.listener = ln
	t.logger.Debug("listening", zap.Stringer("addr", ln.Addr()))
	return ln, nil
}

func (t *TCP) setConn(conn net.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		t.conn.Close()
	}
	t.conn = conn
}

func (t *TCP) curConn() (net.Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.closed:
		return nil, ErrClosed
	case t.conn == nil:
		return nil, ErrNotConnected
	}
	return t.conn, nil
}

type countingWriter struct {
	w io.Writer
	n *atomic.Uint64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n.Add(uint64(n))
	return n, err
}

type countingReader struct {
	r io.Reader
	n *atomic.Uint64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n.Add(uint64(n))
	return n, err
}
