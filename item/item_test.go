package item_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yku12cn/cpisync/codec"
	"github.com/yku12cn/cpisync/item"
)

func TestNew(t *testing.T) {
	buf := []byte("payload")
	it, err := item.New(buf)
	require.NoError(t, err)
	require.Equal(t, buf, it.Bytes())
	require.Equal(t, len(buf), it.Size())

	// the item is decoupled from the caller's buffer
	buf[0] = 'X'
	require.Equal(t, []byte("payload"), it.Bytes())

	_, err = item.New(make([]byte, item.MaxSize+1))
	require.ErrorIs(t, err, item.ErrTooLarge)
}

func TestEquality(t *testing.T) {
	a1 := item.FromString("a")
	a2, err := item.New([]byte("a"))
	require.NoError(t, err)
	b := item.FromString("b")

	require.True(t, a1.Equal(a2))
	require.False(t, a1.Equal(b))
	require.Equal(t, a1.Hash(), a2.Hash())
	require.NotEqual(t, a1.Hash(), b.Hash())

	require.Negative(t, a1.Compare(b))
	require.Positive(t, b.Compare(a1))
	require.Zero(t, a1.Compare(a2))
}

func TestCodecRoundTrip(t *testing.T) {
	orig := item.FromString("some payload")
	buf := codec.MustEncode(&orig)

	var got item.Item
	require.NoError(t, codec.Decode(buf, &got))
	require.Equal(t, orig.Bytes(), got.Bytes())
	// the digest is recomputed on decode, not trusted from the wire
	require.Equal(t, orig.Hash(), got.Hash())
	require.True(t, orig.Equal(got))
}

func TestString(t *testing.T) {
	require.Equal(t, "61", item.FromString("a").String())
	require.Equal(t, "3031323334353637...", item.FromString("0123456789").String())
}

func TestListContains(t *testing.T) {
	l := item.List{item.FromString("a"), item.FromString("b")}
	require.True(t, l.Contains(item.FromString("a")))
	require.False(t, l.Contains(item.FromString("c")))
	require.False(t, item.List(nil).Contains(item.FromString("a")))
}
