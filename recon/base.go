package recon

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/yku12cn/cpisync/codec"
	"github.com/yku12cn/cpisync/comm"
	"github.com/yku12cn/cpisync/item"
)

// sessionState is a phase of the per-session state machine.
type sessionState uint8

const (
	stateInit sessionState = iota
	stateNegotiate
	stateExchange
	stateReconcile
	stateDone
	stateFailed
)

// String implements fmt.Stringer.
func (st sessionState) String() string {
	switch st {
	case stateInit:
		return "init"
	case stateNegotiate:
		return "negotiate"
	case stateExchange:
		return "exchange"
	case stateReconcile:
		return "reconcile"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", uint8(st))
	}
}

// Opt specifies an option for a Base.
type Opt func(*Base)

// WithLogger sets the logger used for session tracing.
func WithLogger(logger *zap.Logger) Opt {
	return func(b *Base) {
		b.logger = logger
	}
}

// WithClock sets the clock backing the session statistics.
func WithClock(clock clockwork.Clock) Opt {
	return func(b *Base) {
		b.stats = NewStatsWithClock(clock)
	}
}

// WithParams sets the strategy-specific parameter blob transmitted during
// negotiation. Peers must be configured with equal blobs for a session to
// proceed.
func WithParams(params []byte) Opt {
	return func(b *Base) {
		b.params = bytes.Clone(params)
	}
}

// WithOneWay makes sessions initiated by this strategy one-way: no
// negotiation acknowledgment is awaited and the initiator proceeds
// optimistically.
func WithOneWay(oneWay bool) Opt {
	return func(b *Base) {
		b.oneWay = oneWay
	}
}

// WithMaxElementSize restricts the size of elements this strategy accepts,
// for strategies whose encoding cannot represent arbitrarily long items.
func WithMaxElementSize(n int) Opt {
	return func(b *Base) {
		b.maxElemSize = n
	}
}

// Base carries the parts of the Strategy contract that do not depend on the
// exchange algorithm: the element view, the session statistics, the protocol
// identity and the negotiation handshake. Concrete strategies embed a Base
// and drive their exchange through RunClient and RunServer.
type Base struct {
	logger      *zap.Logger
	id          ProtocolID
	name        string
	params      []byte
	oneWay      bool
	maxElemSize int
	stats       *Stats
	elements    item.List
}

// NewBase creates a Base for the strategy with the given protocol identity
// and human-readable name.
func NewBase(id ProtocolID, name string, opts ...Opt) Base {
	b := Base{
		logger:      zap.NewNop(),
		id:          id,
		name:        name,
		maxElemSize: item.MaxSize,
		stats:       NewStats(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// ID returns the protocol identifier used during negotiation.
func (b *Base) ID() ProtocolID {
	return b.id
}

// Name returns the human-readable strategy name.
func (b *Base) Name() string {
	return b.name
}

// Stats returns the statistics of the most recent session.
func (b *Base) Stats() *Stats {
	return b.stats
}

// Elements returns a copy of the element view, in insertion order.
func (b *Base) Elements() item.List {
	return slices.Clone(b.elements)
}

// NumElements returns the number of stored elements.
func (b *Base) NumElements() int {
	return len(b.elements)
}

// AddElement appends an item to the element view.
func (b *Base) AddElement(it item.Item) error {
	if it.Size() > b.maxElemSize {
		return fmt.Errorf("%w: %d bytes exceed the %d byte strategy limit",
			ErrInvalidItem, it.Size(), b.maxElemSize)
	}
	b.elements = append(b.elements, it)
	return nil
}

// DeleteElement removes the first stored element equal to it, reporting
// whether the element view shrank.
func (b *Base) DeleteElement(it item.Item) bool {
	for i, other := range b.elements {
		if other.Equal(it) {
			b.elements = slices.Delete(b.elements, i, i+1)
			return true
		}
	}
	return false
}

// RunClient drives one initiator-role session: it resets the statistics and
// the transport byte counters, connects, negotiates parameters and then hands
// control to the strategy-specific exchange closure. The transport byte
// counters are folded into the statistics on every exit path, so a failed
// session retains the cost incurred up to the failure point.
func (b *Base) RunClient(ctx context.Context, c comm.Conn, exchange func(ctx context.Context) error) error {
	return b.run(ctx, c, "client", c.Connect, b.sendParams, exchange)
}

// RunServer drives one responder-role session, accepting the inbound
// connection and answering the initiator's negotiation.
func (b *Base) RunServer(ctx context.Context, c comm.Conn, exchange func(ctx context.Context) error) error {
	return b.run(ctx, c, "server", c.Accept, b.recvParams, exchange)
}

func (b *Base) run(
	ctx context.Context,
	c comm.Conn,
	role string,
	establish func(context.Context) error,
	negotiate func(comm.Conn) error,
	exchange func(ctx context.Context) error,
) error {
	st := stateInit
	logger := b.logger.With(zap.String("strategy", b.name), zap.String("role", role))
	trace := func(next sessionState) {
		logger.Debug("session state", zap.Stringer("from", st), zap.Stringer("to", next))
		st = next
	}

	b.stats.Reset(AllStats)
	c.ResetCounters()
	defer func() {
		b.stats.Increment(XmitBytes, float64(c.BytesSent()))
		b.stats.Increment(RecvBytes, float64(c.BytesReceived()))
		result := "ok"
		if st != stateDone {
			result = "failed"
		}
		sessions.WithLabelValues(b.name, role, result).Inc()
		logger.Debug("session finished", zap.Stringer("state", st), zap.Object("stats", b.stats))
	}()

	if err := func() error {
		// waiting for the peer to become reachable counts as idle time
		defer b.stats.StartTimer(IdleTime).Stop()
		return establish(ctx)
	}(); err != nil {
		trace(stateFailed)
		return fmt.Errorf("establish connection: %w", err)
	}

	trace(stateNegotiate)
	if err := negotiate(c); err != nil {
		trace(stateFailed)
		negotiationFailures.WithLabelValues(b.name, role).Inc()
		return fmt.Errorf("negotiate: %w", err)
	}

	trace(stateExchange)
	if err := exchange(ctx); err != nil {
		trace(stateFailed)
		return fmt.Errorf("exchange: %w", err)
	}

	trace(stateDone)
	return nil
}

// sendParams transmits this strategy's identity and tunables and, unless the
// session is one-way, waits for the peer's verdict.
func (b *Base) sendParams(c comm.Conn) error {
	msg := ParamsMessage{
		Protocol: uint16(b.id),
		Params:   b.params,
		OneWay:   b.oneWay,
	}
	if err := func() error {
		defer b.stats.StartTimer(CommTime).Stop()
		return c.Send(codec.MustEncode(&msg))
	}(); err != nil {
		return fmt.Errorf("send parameters: %w", err)
	}
	if b.oneWay {
		return nil
	}
	var ack AckMessage
	if err := func() error {
		defer b.stats.StartTimer(IdleTime).Stop()
		buf, err := c.Receive()
		if err != nil {
			return err
		}
		return codec.Decode(buf, &ack)
	}(); err != nil {
		return fmt.Errorf("receive acknowledgment: %w", err)
	}
	if !ack.Match {
		return &MismatchError{Local: b.id, Remote: ProtocolID(ack.Protocol)}
	}
	return nil
}

// recvParams receives the initiator's parameters, compares them against this
// strategy's own and, unless the initiator requested one-way mode, reports
// the verdict back.
func (b *Base) recvParams(c comm.Conn) error {
	var msg ParamsMessage
	if err := func() error {
		defer b.stats.StartTimer(IdleTime).Stop()
		buf, err := c.Receive()
		if err != nil {
			return err
		}
		return codec.Decode(buf, &msg)
	}(); err != nil {
		return fmt.Errorf("receive parameters: %w", err)
	}
	match := ProtocolID(msg.Protocol) == b.id && bytes.Equal(msg.Params, b.params)
	if !msg.OneWay {
		ack := AckMessage{Match: match, Protocol: uint16(b.id)}
		if err := func() error {
			defer b.stats.StartTimer(CommTime).Stop()
			return c.Send(codec.MustEncode(&ack))
		}(); err != nil {
			return fmt.Errorf("send acknowledgment: %w", err)
		}
	}
	if !match {
		return &MismatchError{Local: b.id, Remote: ProtocolID(msg.Protocol)}
	}
	return nil
}
