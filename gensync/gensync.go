// Package gensync implements the reconciliation orchestrator. A GenSync owns
// a local element store, an ordered list of remote peers and an ordered list
// of candidate strategies, and drives sessions between them: StartSync
// initiates a session with every registered peer in turn, ListenSync accepts
// one from each.
//
// Sessions are strictly sequential, so the store is never touched by two
// sessions concurrently; GenSync relies on that instead of locking and is not
// safe for concurrent use.
package gensync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/yku12cn/cpisync/comm"
	"github.com/yku12cn/cpisync/item"
	"github.com/yku12cn/cpisync/recon"
)

// AtEnd appends to the peer or strategy list when passed as the index of
// AddPeer or AddStrategy.
const AtEnd = -1

// ErrNoSuchIndex is returned when a peer or strategy index is out of range.
var ErrNoSuchIndex = errors.New("no peer or strategy at this index")

// ElementLog is a durable, append-only record of store additions. GenSync
// replays it on construction and appends every later addition to it.
type ElementLog interface {
	// Append durably records one added element.
	Append(it item.Item) error
	// All calls yield for every recorded element in insertion order,
	// stopping early if yield returns false.
	All(yield func(item.Item) bool) error
}

// Opt specifies an option for a GenSync.
type Opt func(*GenSync)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(g *GenSync) {
		g.logger = logger
	}
}

// WithPeers registers the initial peers, in sync order.
func WithPeers(peers ...comm.Conn) Opt {
	return func(g *GenSync) {
		g.peers = append(g.peers, peers...)
		g.lastStats = make([]*recon.Stats, len(g.peers))
	}
}

// WithStrategies registers the initial strategies, in index order.
func WithStrategies(strategies ...recon.Strategy) Opt {
	return func(g *GenSync) {
		g.strategies = append(g.strategies, strategies...)
	}
}

// WithElements seeds the store. Seed items are routed through the normal add
// path so that per-strategy bookkeeping stays consistent.
func WithElements(items ...item.Item) Opt {
	return func(g *GenSync) {
		g.seed = append(g.seed, items...)
	}
}

// WithElementLog attaches a durable backing log. Entries already present in
// the log are loaded through the normal add path before any seed items, and
// every later addition is appended to the log.
func WithElementLog(log ElementLog) Opt {
	return func(g *GenSync) {
		g.elemLog = log
	}
}

// WithAbortOnFailure makes StartSync and ListenSync stop at the first failed
// peer session instead of continuing with the remaining peers.
func WithAbortOnFailure() Opt {
	return func(g *GenSync) {
		g.abortOnFailure = true
	}
}

// WithoutSetSemantics disables the post-session merge of received items into
// the store. By default the store behaves as a set: after a successful
// session every item the peer had and we lacked is added through the normal
// add path, with duplicates skipped.
func WithoutSetSemantics() Opt {
	return func(g *GenSync) {
		g.noMerge = true
	}
}

// GenSync orchestrates reconciliation sessions between the local store and a
// set of remote peers.
type GenSync struct {
	logger         *zap.Logger
	peers          []comm.Conn
	strategies     []recon.Strategy
	elements       item.List
	seed           item.List
	elemLog        ElementLog
	abortOnFailure bool
	noMerge        bool

	// most recent session statistics per peer slot, nil before the first
	// session
	lastStats []*recon.Stats
}

// New creates a GenSync, replaying the backing log (if any) and seeding the
// store through the normal add path.
func New(opts ...Opt) (*GenSync, error) {
	g := &GenSync{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	if len(g.lastStats) != len(g.peers) {
		g.lastStats = make([]*recon.Stats, len(g.peers))
	}
	if g.elemLog != nil {
		var loadErr error
		err := g.elemLog.All(func(it item.Item) bool {
			loadErr = g.addElem(it, false)
			return loadErr == nil
		})
		if err == nil {
			err = loadErr
		}
		if err != nil {
			return nil, fmt.Errorf("replay element log: %w", err)
		}
	}
	seed := g.seed
	g.seed = nil
	for _, it := range seed {
		if err := g.AddElem(it); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}
	return g, nil
}

// AddElem validates the item against every registered strategy, appends it to
// the shared store and records it in the backing log. On failure the store
// and every strategy view stay unchanged.
func (g *GenSync) AddElem(it item.Item) error {
	return g.addElem(it, true)
}

func (g *GenSync) addElem(it item.Item, logged bool) error {
	for i, s := range g.strategies {
		if err := s.AddElement(it); err != nil {
			// roll the strategies already updated back so that their
			// views stay consistent with the store
			for _, prev := range g.strategies[:i] {
				prev.DeleteElement(it)
			}
			return fmt.Errorf("strategy %s rejected item: %w", s.Name(), err)
		}
	}
	if logged && g.elemLog != nil {
		if err := g.elemLog.Append(it); err != nil {
			for _, s := range g.strategies {
				s.DeleteElement(it)
			}
			return fmt.Errorf("append to element log: %w", err)
		}
	}
	g.elements = append(g.elements, it)
	g.logger.Debug("element added", zap.Object("item", it), zap.Int("store_size", len(g.elements)))
	return nil
}

// DelElem is not supported by this orchestrator: element removal would leave
// per-strategy derived state (cached encodings, sketches) inconsistent with
// the backing log. It always returns an error wrapping errors.ErrUnsupported
// and never mutates the store.
func (g *GenSync) DelElem(item.Item) error {
	return fmt.Errorf("delete element: %w", errors.ErrUnsupported)
}

// DumpElements returns a copy of the store contents in insertion order.
func (g *GenSync) DumpElements() item.List {
	return slices.Clone(g.elements)
}

// AddPeer registers a peer at the given position in the sync order, or at the
// end for AtEnd.
func (g *GenSync) AddPeer(c comm.Conn, index int) error {
	if index == AtEnd {
		index = len(g.peers)
	}
	if index < 0 || index > len(g.peers) {
		return ErrNoSuchIndex
	}
	g.peers = slices.Insert(g.peers, index, c)
	g.lastStats = slices.Insert(g.lastStats, index, nil)
	return nil
}

// RemovePeer unregisters the peer at the given index. Only that slot is
// invalidated; the remaining peers keep their relative order.
func (g *GenSync) RemovePeer(index int) error {
	if index < 0 || index >= len(g.peers) {
		return ErrNoSuchIndex
	}
	g.peers = slices.Delete(g.peers, index, index+1)
	g.lastStats = slices.Delete(g.lastStats, index, index+1)
	return nil
}

// RemovePeerConn unregisters every slot holding exactly this Conn and
// returns the number of slots removed.
func (g *GenSync) RemovePeerConn(c comm.Conn) int {
	removed := 0
	for i := len(g.peers) - 1; i >= 0; i-- {
		if g.peers[i] == c {
			g.peers = slices.Delete(g.peers, i, i+1)
			g.lastStats = slices.Delete(g.lastStats, i, i+1)
			removed++
		}
	}
	return removed
}

// NumPeers returns the number of registered peers.
func (g *GenSync) NumPeers() int {
	return len(g.peers)
}

// AddStrategy registers a strategy at the given index, or at the end for
// AtEnd. The new strategy's element view is brought up to date with the
// store.
func (g *GenSync) AddStrategy(s recon.Strategy, index int) error {
	if index == AtEnd {
		index = len(g.strategies)
	}
	if index < 0 || index > len(g.strategies) {
		return ErrNoSuchIndex
	}
	for _, it := range g.elements {
		if err := s.AddElement(it); err != nil {
			return fmt.Errorf("strategy %s rejected stored item: %w", s.Name(), err)
		}
	}
	g.strategies = slices.Insert(g.strategies, index, s)
	return nil
}

// RemoveStrategy unregisters the strategy at the given index.
func (g *GenSync) RemoveStrategy(index int) error {
	if index < 0 || index >= len(g.strategies) {
		return ErrNoSuchIndex
	}
	g.strategies = slices.Delete(g.strategies, index, index+1)
	return nil
}

// Strategy returns the strategy at the given index.
func (g *GenSync) Strategy(index int) (recon.Strategy, error) {
	if index < 0 || index >= len(g.strategies) {
		return nil, ErrNoSuchIndex
	}
	return g.strategies[index], nil
}

// NumStrategies returns the number of registered strategies.
func (g *GenSync) NumStrategies() int {
	return len(g.strategies)
}

// StartSync initiates a client-role session with every registered peer in
// registration order, using the strategy at strategyIndex. A failed session
// does not abort the remaining peers unless WithAbortOnFailure was set. The
// result is nil iff every session succeeded; individual failures are joined
// and per-peer statistics remain queryable either way.
func (g *GenSync) StartSync(ctx context.Context, strategyIndex int) error {
	return g.syncAll(ctx, strategyIndex, "start", recon.Strategy.SyncClient)
}

// ListenSync mirrors StartSync in the responder role, blocking to accept a
// connection from each registered peer in turn.
func (g *GenSync) ListenSync(ctx context.Context, strategyIndex int) error {
	return g.syncAll(ctx, strategyIndex, "listen", recon.Strategy.SyncServer)
}

func (g *GenSync) syncAll(
	ctx context.Context,
	strategyIndex int,
	mode string,
	sync func(recon.Strategy, context.Context, comm.Conn, *item.List, *item.List) error,
) error {
	s, err := g.Strategy(strategyIndex)
	if err != nil {
		return err
	}
	logger := g.logger.With(zap.String("mode", mode), zap.String("strategy", s.Name()))
	var errs []error
	for i, peer := range g.peers {
		var selfMinusOther, otherMinusSelf item.List
		err := sync(s, ctx, peer, &selfMinusOther, &otherMinusSelf)
		snap := *s.Stats()
		g.lastStats[i] = &snap
		if err != nil {
			logger.Warn("peer session failed", zap.Int("peer", i), zap.Error(err))
			errs = append(errs, fmt.Errorf("peer %d: %w", i, err))
			if g.abortOnFailure {
				break
			}
			continue
		}
		logger.Info("peer session complete",
			zap.Int("peer", i),
			zap.Int("self_minus_other", len(selfMinusOther)),
			zap.Int("other_minus_self", len(otherMinusSelf)),
			zap.Object("stats", s.Stats()))
		if !g.noMerge {
			if err := recon.MergeSet(otherMinusSelf, g.mergeAdd); err != nil {
				errs = append(errs, fmt.Errorf("peer %d: merge: %w", i, err))
				if g.abortOnFailure {
					break
				}
			}
		}
	}
	return errors.Join(errs...)
}

// mergeAdd is the store add hook used by set-semantics postprocessing: it
// enforces uniqueness by skipping items already present.
func (g *GenSync) mergeAdd(it item.Item) error {
	if g.elements.Contains(it) {
		return nil
	}
	return g.AddElem(it)
}

// BytesSent returns the bytes transmitted to the peer during its most recent
// completed or failed session, as tracked by the strategy that processed it.
func (g *GenSync) BytesSent(peerIndex int) (uint64, error) {
	s, err := g.peerStats(peerIndex)
	if err != nil || s == nil {
		return 0, err
	}
	return uint64(s.Get(recon.XmitBytes)), nil
}

// BytesReceived returns the bytes received from the peer during its most
// recent completed or failed session.
func (g *GenSync) BytesReceived(peerIndex int) (uint64, error) {
	s, err := g.peerStats(peerIndex)
	if err != nil || s == nil {
		return 0, err
	}
	return uint64(s.Get(recon.RecvBytes)), nil
}

// SyncTime returns the total duration of the peer's most recent session.
func (g *GenSync) SyncTime(peerIndex int) (time.Duration, error) {
	s, err := g.peerStats(peerIndex)
	if err != nil || s == nil {
		return 0, err
	}
	return s.TotalDuration(), nil
}

// ListenPort returns the local port on which a listener is active for the
// peer, or comm.NoListenPort if there is none (including out-of-range
// indices).
func (g *GenSync) ListenPort(peerIndex int) int {
	if peerIndex < 0 || peerIndex >= len(g.peers) {
		return comm.NoListenPort
	}
	return g.peers[peerIndex].ListenPort()
}

func (g *GenSync) peerStats(peerIndex int) (*recon.Stats, error) {
	if peerIndex < 0 || peerIndex >= len(g.peers) {
		return nil, ErrNoSuchIndex
	}
	return g.lastStats[peerIndex], nil
}

// Describe returns a human-readable summary of the orchestrator state.
func (g *GenSync) Describe() string {
	names := make([]string, len(g.strategies))
	for i, s := range g.strategies {
		names[i] = s.Name()
	}
	return fmt.Sprintf("gensync: %d elements, %d peers, strategies %v",
		len(g.elements), len(g.peers), names)
}

// Close releases every registered peer and the backing log. The orchestrator
// exclusively owns their lifetime.
func (g *GenSync) Close() error {
	var errs []error
	for i, peer := range g.peers {
		if err := peer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close peer %d: %w", i, err))
		}
	}
	if c, ok := g.elemLog.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close element log: %w", err))
		}
	}
	return errors.Join(errs...)
}
