// Package fullsync implements the reference reconciliation strategy: each
// peer transmits its entire collection and the symmetric difference is
// computed by direct comparison. It moves a linear amount of data and exists
// as a correctness oracle for the strategy contract, and as a usable baseline
// for stores small enough that a smarter strategy's fixed overhead would
// dominate.
package fullsync

import (
	"context"
	"fmt"

	"github.com/yku12cn/cpisync/codec"
	"github.com/yku12cn/cpisync/comm"
	"github.com/yku12cn/cpisync/item"
	"github.com/yku12cn/cpisync/recon"
)

// Name is the human-readable name of the strategy.
const Name = "fullsync"

// FullSync reconciles by exchanging entire collections. The client sends its
// collection first and then receives the server's; the server mirrors that
// order. Both sides compute the difference locally, so the result is
// symmetric by construction.
type FullSync struct {
	recon.Base
}

var _ recon.Strategy = &FullSync{}

// New creates a FullSync strategy.
func New(opts ...recon.Opt) *FullSync {
	return &FullSync{Base: recon.NewBase(recon.ProtocolFullSync, Name, opts...)}
}

// SyncClient implements recon.Strategy.
func (f *FullSync) SyncClient(
	ctx context.Context,
	c comm.Conn,
	selfMinusOther, otherMinusSelf *item.List,
) error {
	return f.RunClient(ctx, c, func(context.Context) error {
		if err := f.sendCollection(c); err != nil {
			return err
		}
		return f.receiveAndReconcile(c, selfMinusOther, otherMinusSelf)
	})
}

// SyncServer implements recon.Strategy.
func (f *FullSync) SyncServer(
	ctx context.Context,
	c comm.Conn,
	selfMinusOther, otherMinusSelf *item.List,
) error {
	return f.RunServer(ctx, c, func(context.Context) error {
		if err := f.receiveAndReconcile(c, selfMinusOther, otherMinusSelf); err != nil {
			return err
		}
		return f.sendCollection(c)
	})
}

func (f *FullSync) sendCollection(c comm.Conn) error {
	msg := ItemBatchMessage{Items: f.Elements()}
	defer f.Stats().StartTimer(recon.CommTime).Stop()
	if err := c.Send(codec.MustEncode(&msg)); err != nil {
		return fmt.Errorf("send collection: %w", err)
	}
	return nil
}

func (f *FullSync) receiveAndReconcile(c comm.Conn, selfMinusOther, otherMinusSelf *item.List) error {
	buf, err := func() ([]byte, error) {
		// the peer may be busy computing before it sends, so the wait is
		// idle time rather than communication time
		defer f.Stats().StartTimer(recon.IdleTime).Stop()
		return c.Receive()
	}()
	if err != nil {
		return fmt.Errorf("receive collection: %w", err)
	}

	defer f.Stats().StartTimer(recon.CompTime).Stop()
	var msg ItemBatchMessage
	if err := codec.Decode(buf, &msg); err != nil {
		return fmt.Errorf("decode collection: %w", err)
	}
	mine, theirs := diff(f.Elements(), msg.Items)
	*selfMinusOther = append(*selfMinusOther, mine...)
	*otherMinusSelf = append(*otherMinusSelf, theirs...)
	return nil
}

// diff computes the multiset symmetric difference of the two collections.
func diff(local, remote item.List) (localOnly, remoteOnly item.List) {
	counts := make(map[item.Digest]int, len(remote))
	for _, it := range remote {
		counts[it.Hash()]++
	}
	for _, it := range local {
		if counts[it.Hash()] > 0 {
			counts[it.Hash()]--
		} else {
			localOnly = append(localOnly, it)
		}
	}
	// counts now holds, per digest, the number of unmatched remote copies
	for _, it := range remote {
		if counts[it.Hash()] > 0 {
			counts[it.Hash()]--
			remoteOnly = append(remoteOnly, it)
		}
	}
	return localOnly, remoteOnly
}
