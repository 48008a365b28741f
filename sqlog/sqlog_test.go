package sqlog_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yku12cn/cpisync/gensync"
	"github.com/yku12cn/cpisync/item"
	"github.com/yku12cn/cpisync/sqlog"
)

func collect(t *testing.T, l *sqlog.Log) item.List {
	t.Helper()
	var items item.List
	require.NoError(t, l.All(func(it item.Item) bool {
		items = append(items, it)
		return true
	}))
	return items
}

func TestLogRoundTrip(t *testing.T) {
	l := sqlog.InMemory()
	defer l.Close()

	n, err := l.Len()
	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, collect(t, l))

	a, b := item.FromString("a"), item.FromString("b")
	require.NoError(t, l.Append(a))
	require.NoError(t, l.Append(b))
	require.NoError(t, l.Append(b)) // duplicates are the caller's business

	n, err = l.Len()
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, item.List{a, b, b}, collect(t, l))
}

func TestLogEarlyStop(t *testing.T) {
	l := sqlog.InMemory()
	defer l.Close()
	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, l.Append(item.FromString(v)))
	}

	var seen int
	require.NoError(t, l.All(func(item.Item) bool {
		seen++
		return seen < 2
	}))
	require.Equal(t, 2, seen)
}

func TestLogPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.db")
	logger := zaptest.NewLogger(t)

	l, err := sqlog.Open(path, sqlog.WithLogger(logger))
	require.NoError(t, err)
	a, b := item.FromString("a"), item.FromString("b")
	require.NoError(t, l.Append(a))
	require.NoError(t, l.Append(b))
	require.NoError(t, l.Close())

	l, err = sqlog.Open(path, sqlog.WithLogger(logger))
	require.NoError(t, err)
	defer l.Close()
	require.Equal(t, item.List{a, b}, collect(t, l))
}

// The log plugs into the orchestrator as its ElementLog; a restart over the
// same file recovers the store.
func TestLogBacksOrchestrator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.db")
	seed := item.List{item.FromString("a"), item.FromString("b")}

	l, err := sqlog.Open(path)
	require.NoError(t, err)
	g, err := gensync.New(gensync.WithElementLog(l), gensync.WithElements(seed...))
	require.NoError(t, err)
	require.Equal(t, seed, g.DumpElements())
	require.NoError(t, g.Close())

	l, err = sqlog.Open(path)
	require.NoError(t, err)
	g, err = gensync.New(gensync.WithElementLog(l))
	require.NoError(t, err)
	defer g.Close()
	require.Equal(t, seed, g.DumpElements())
}
