package recon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yku12cn/cpisync/recon"
	"github.com/yku12cn/cpisync/recon/fullsync"
)

func TestRegistry(t *testing.T) {
	r := recon.NewRegistry()
	require.Empty(t, r.IDs())

	_, err := r.New(recon.ProtocolFullSync)
	require.Error(t, err)

	factory := func() recon.Strategy { return fullsync.New() }
	require.NoError(t, r.Register(recon.ProtocolFullSync, factory))
	require.Error(t, r.Register(recon.ProtocolFullSync, factory),
		"duplicate registration is rejected")
	require.Equal(t, []recon.ProtocolID{recon.ProtocolFullSync}, r.IDs())

	s, err := r.New(recon.ProtocolFullSync)
	require.NoError(t, err)
	require.Equal(t, recon.ProtocolFullSync, s.ID())
	require.Equal(t, fullsync.Name, s.Name())

	_, err = r.New(recon.ProtocolIBLTSync)
	require.Error(t, err)
}
