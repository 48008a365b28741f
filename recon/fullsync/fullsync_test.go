package fullsync_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/yku12cn/cpisync/comm"
	"github.com/yku12cn/cpisync/item"
	"github.com/yku12cn/cpisync/recon"
	"github.com/yku12cn/cpisync/recon/fullsync"
)

func items(vals ...string) item.List {
	var l item.List
	for _, v := range vals {
		l = append(l, item.FromString(v))
	}
	return l
}

func fill(t *testing.T, s recon.Strategy, vals ...string) {
	t.Helper()
	for _, it := range items(vals...) {
		require.NoError(t, s.AddElement(it))
	}
}

// runPair runs one session between the two strategies over an in-memory
// transport and returns the differences each side observed.
func runPair(t *testing.T, client, server recon.Strategy) (
	clientOnly, serverSeesClientOnly, serverOnly, clientSeesServerOnly item.List,
	clientErr, serverErr error,
) {
	t.Helper()
	cc, sc := comm.Pair()
	defer cc.Close()
	var eg errgroup.Group
	eg.Go(func() error {
		serverErr = server.SyncServer(context.Background(), sc, &serverOnly, &serverSeesClientOnly)
		return nil
	})
	clientErr = client.SyncClient(context.Background(), cc, &clientOnly, &clientSeesServerOnly)
	require.NoError(t, eg.Wait())
	return
}

func TestFullSync(t *testing.T) {
	logger := zaptest.NewLogger(t)
	client := fullsync.New(recon.WithLogger(logger))
	server := fullsync.New(recon.WithLogger(logger))
	fill(t, client, "a", "b", "c")
	fill(t, server, "b", "c", "d")

	clientOnly, serverSeesClientOnly, serverOnly, clientSeesServerOnly, clientErr, serverErr :=
		runPair(t, client, server)
	require.NoError(t, clientErr)
	require.NoError(t, serverErr)

	require.Equal(t, items("a"), clientOnly)
	require.Equal(t, items("d"), clientSeesServerOnly)
	require.Equal(t, items("d"), serverOnly)
	require.Equal(t, items("a"), serverSeesClientOnly)

	// reconciliation reports differences, it does not mutate the stores
	require.Equal(t, items("a", "b", "c"), client.Elements())
	require.Equal(t, items("b", "c", "d"), server.Elements())

	for _, s := range []recon.Strategy{client, server} {
		st := s.Stats()
		require.NotZero(t, st.Get(recon.XmitBytes))
		require.NotZero(t, st.Get(recon.RecvBytes))
		require.Equal(t,
			st.Get(recon.CommTime)+st.Get(recon.IdleTime)+st.Get(recon.CompTime),
			st.Total())
	}
}

func TestFullSyncIdentical(t *testing.T) {
	client := fullsync.New()
	server := fullsync.New()
	fill(t, client, "x", "y")
	fill(t, server, "y", "x")

	clientOnly, serverSeesClientOnly, serverOnly, clientSeesServerOnly, clientErr, serverErr :=
		runPair(t, client, server)
	require.NoError(t, clientErr)
	require.NoError(t, serverErr)
	require.Empty(t, clientOnly)
	require.Empty(t, clientSeesServerOnly)
	require.Empty(t, serverOnly)
	require.Empty(t, serverSeesClientOnly)
}

func TestFullSyncEmptySides(t *testing.T) {
	t.Run("empty client", func(t *testing.T) {
		client := fullsync.New()
		server := fullsync.New()
		fill(t, server, "a", "b")
		clientOnly, _, _, clientSeesServerOnly, clientErr, serverErr := runPair(t, client, server)
		require.NoError(t, clientErr)
		require.NoError(t, serverErr)
		require.Empty(t, clientOnly)
		require.Equal(t, items("a", "b"), clientSeesServerOnly)
	})
	t.Run("both empty", func(t *testing.T) {
		clientOnly, _, _, clientSeesServerOnly, clientErr, serverErr :=
			runPair(t, fullsync.New(), fullsync.New())
		require.NoError(t, clientErr)
		require.NoError(t, serverErr)
		require.Empty(t, clientOnly)
		require.Empty(t, clientSeesServerOnly)
	})
}

func TestFullSyncDuplicates(t *testing.T) {
	client := fullsync.New()
	server := fullsync.New()
	fill(t, client, "a", "a", "b")
	fill(t, server, "a", "b", "b")

	clientOnly, _, _, clientSeesServerOnly, clientErr, serverErr := runPair(t, client, server)
	require.NoError(t, clientErr)
	require.NoError(t, serverErr)
	// multiset semantics: the unmatched copies differ, not the values
	require.Equal(t, items("a"), clientOnly)
	require.Equal(t, items("b"), clientSeesServerOnly)
}

func TestFullSyncAccumulates(t *testing.T) {
	client := fullsync.New()
	fill(t, client, "a")

	var selfMinusOther, otherMinusSelf item.List
	for _, vals := range [][]string{{"b"}, {"c"}} {
		server := fullsync.New()
		fill(t, server, vals...)
		cc, sc := comm.Pair()
		var eg errgroup.Group
		eg.Go(func() error {
			var sm, om item.List
			return server.SyncServer(context.Background(), sc, &sm, &om)
		})
		require.NoError(t, client.SyncClient(context.Background(), cc, &selfMinusOther, &otherMinusSelf))
		require.NoError(t, eg.Wait())
		require.NoError(t, cc.Close())
	}

	// outputs grow across sessions rather than being overwritten
	require.Equal(t, items("a", "a"), selfMinusOther)
	require.Equal(t, items("b", "c"), otherMinusSelf)
}

func TestFullSyncParamsMismatch(t *testing.T) {
	client := fullsync.New(recon.WithParams([]byte("compress")))
	server := fullsync.New()
	fill(t, client, "a")
	fill(t, server, "b")

	clientOnly, _, _, clientSeesServerOnly, clientErr, serverErr := runPair(t, client, server)
	require.ErrorIs(t, clientErr, recon.ErrProtocolMismatch)
	require.ErrorIs(t, serverErr, recon.ErrProtocolMismatch)
	require.Empty(t, clientOnly)
	require.Empty(t, clientSeesServerOnly)
	// only the handshake went over the wire
	require.Less(t, client.Stats().Get(recon.XmitBytes), 128.0)
}
