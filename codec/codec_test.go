package codec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yku12cn/cpisync/codec"
	"github.com/yku12cn/cpisync/recon"
)

// xdrMessage has no scale codec, so it exercises the XDR fallback.
type xdrMessage struct {
	Name  string
	Count uint32
}

func TestScaleRoundTrip(t *testing.T) {
	orig := recon.ParamsMessage{
		Protocol: uint16(recon.ProtocolFullSync),
		Params:   []byte("m=64"),
		OneWay:   true,
	}
	buf, err := codec.Encode(&orig)
	require.NoError(t, err)

	var got recon.ParamsMessage
	require.NoError(t, codec.Decode(buf, &got))
	require.Equal(t, orig, got)
}

func TestXDRFallback(t *testing.T) {
	orig := xdrMessage{Name: "fallback", Count: 7}
	buf, err := codec.Encode(&orig)
	require.NoError(t, err)

	var got xdrMessage
	require.NoError(t, codec.Decode(buf, &got))
	require.Equal(t, orig, got)
}

func TestStreaming(t *testing.T) {
	var b bytes.Buffer
	orig := recon.AckMessage{Match: true, Protocol: uint16(recon.ProtocolFullSync)}
	n, err := codec.EncodeTo(&b, &orig)
	require.NoError(t, err)
	require.Equal(t, b.Len(), n)

	var got recon.AckMessage
	m, err := codec.DecodeFrom(&b, &got)
	require.NoError(t, err)
	require.Equal(t, n, m)
	require.Equal(t, orig, got)
}

func TestDecodeGarbage(t *testing.T) {
	var msg recon.ParamsMessage
	require.Error(t, codec.Decode([]byte{0xff, 0xff, 0xff, 0xff, 0xff}, &msg))
}

func TestMustEncode(t *testing.T) {
	var msg recon.AckMessage
	require.NotEmpty(t, codec.MustEncode(&msg))
}
