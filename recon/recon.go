// Package recon defines the contract every set reconciliation strategy
// implements: the client and server session roles, the parameter negotiation
// handshake that precedes every exchange, and the per-session statistics.
//
// A session walks a fixed state machine:
//
//	init → negotiate → exchange → reconcile → done
//
// with a terminal failed state reachable from negotiate (protocol mismatch)
// and exchange (transport error). The exchange phase is strategy-specific;
// everything else is provided by Base, which concrete strategies embed.
package recon

import (
	"context"

	"github.com/yku12cn/cpisync/comm"
	"github.com/yku12cn/cpisync/item"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./recon.go

// ProtocolID identifies a reconciliation protocol during negotiation.
// Two peers refuse to run a session unless their ProtocolIDs and parameter
// blobs agree; the ID does not by itself determine the exchange wire format.
type ProtocolID uint16

const (
	// ProtocolInvalid is the zero ProtocolID; no strategy uses it.
	ProtocolInvalid ProtocolID = iota
	// ProtocolFullSync is the full-collection exchange reference strategy.
	ProtocolFullSync
	// ProtocolCPISync is reserved for a polynomial interpolation based
	// strategy.
	ProtocolCPISync
	// ProtocolIBLTSync is reserved for a sketch based strategy.
	ProtocolIBLTSync
)

// String implements fmt.Stringer.
func (p ProtocolID) String() string {
	switch p {
	case ProtocolFullSync:
		return "fullsync"
	case ProtocolCPISync:
		return "cpisync"
	case ProtocolIBLTSync:
		return "ibltsync"
	default:
		return "invalid"
	}
}

// Strategy is a pluggable reconciliation protocol.
//
// SyncClient and SyncServer run one session each. Both reset the strategy's
// Stats and the peer transport's byte counters, then negotiate parameters and
// run the strategy-specific exchange. Discovered asymmetric items are
// appended to the two output lists; pre-existing list contents are preserved,
// so a caller reconciling against several peers collects the union of
// differences. A nil return means the session reached its successful terminal
// state; on error the Stats accumulated up to the failure point are retained,
// since they represent real cost incurred.
//
// SyncClient requires that the peer is running SyncServer; the framework does
// not verify this out-of-band precondition.
type Strategy interface {
	// AddElement appends an item to the strategy's view of the store.
	// It fails only if the strategy rejects the item, e.g. for violating a
	// size constraint of its encoding.
	AddElement(it item.Item) error
	// DeleteElement removes the first stored element equal to it, and
	// reports whether the store actually shrank.
	DeleteElement(it item.Item) bool
	// SyncClient runs a session in the initiator role over c.
	SyncClient(ctx context.Context, c comm.Conn, selfMinusOther, otherMinusSelf *item.List) error
	// SyncServer runs a session in the responder role over c.
	SyncServer(ctx context.Context, c comm.Conn, selfMinusOther, otherMinusSelf *item.List) error
	// ID returns the protocol identifier used during negotiation.
	ID() ProtocolID
	// Name returns a human-readable strategy name.
	Name() string
	// Stats returns the statistics of the most recent session.
	Stats() *Stats
	// Elements returns a copy of the strategy's element view, in insertion
	// order.
	Elements() item.List
}

// MergeSet applies set-semantics postprocessing after a completed session:
// every item the peer had and we lacked is routed through the store's add
// hook. It is only meaningful for stores that enforce uniqueness on add.
func MergeSet(otherMinusSelf item.List, add func(item.Item) error) error {
	for _, it := range otherMinusSelf {
		if err := add(it); err != nil {
			return err
		}
	}
	return nil
}
