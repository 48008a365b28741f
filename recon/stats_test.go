package recon_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/yku12cn/cpisync/recon"
)

func TestStatsResetAll(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := recon.NewStatsWithClock(clock)
	s.Increment(recon.XmitBytes, 100)
	s.Increment(recon.RecvBytes, 200)
	tm := s.StartTimer(recon.CommTime)
	clock.Advance(time.Second)
	tm.Stop()

	s.Reset(recon.AllStats)
	for _, id := range []recon.StatID{
		recon.XmitBytes, recon.RecvBytes, recon.CommTime, recon.IdleTime, recon.CompTime,
	} {
		require.Zero(t, s.Get(id), "counter %s", id)
	}
	require.Zero(t, s.Total())
	require.Zero(t, s.TotalDuration())
}

func TestStatsResetSingle(t *testing.T) {
	s := recon.NewStats()
	s.Increment(recon.XmitBytes, 10)
	s.Increment(recon.RecvBytes, 20)
	s.Reset(recon.XmitBytes)
	require.Zero(t, s.Get(recon.XmitBytes))
	require.Equal(t, float64(20), s.Get(recon.RecvBytes))
}

func TestStatsIncrement(t *testing.T) {
	s := recon.NewStats()

	// fractional byte counts are truncated toward zero
	s.Increment(recon.XmitBytes, 10.9)
	require.Equal(t, float64(10), s.Get(recon.XmitBytes))

	s.Increment(recon.CompTime, 0.5)
	require.Equal(t, 0.5, s.Get(recon.CompTime))

	s.Increment(recon.AllStats, 1.5)
	require.Equal(t, float64(11), s.Get(recon.XmitBytes))
	require.Equal(t, float64(1), s.Get(recon.RecvBytes))
	require.Equal(t, 1.5, s.Get(recon.IdleTime))
	require.Equal(t, 2.0, s.Get(recon.CompTime))
}

func TestStatsTotalInvariant(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := recon.NewStatsWithClock(clock)
	check := func() {
		require.Equal(t,
			s.Get(recon.CommTime)+s.Get(recon.IdleTime)+s.Get(recon.CompTime),
			s.Total())
	}
	check()
	s.Increment(recon.CommTime, 1)
	check()
	tm := s.StartTimer(recon.IdleTime)
	check()
	clock.Advance(3 * time.Second)
	tm.Stop()
	check()
	s.Increment(recon.XmitBytes, 1000)
	check()
	require.Equal(t, 4.0, s.Total())
}

func TestScopedTimer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := recon.NewStatsWithClock(clock)

	t.Run("stops exactly once", func(t *testing.T) {
		s.Reset(recon.AllStats)
		tm := s.StartTimer(recon.CommTime)
		clock.Advance(2 * time.Second)
		tm.Stop()
		clock.Advance(5 * time.Second)
		tm.Stop() // no effect
		require.Equal(t, 2.0, s.Get(recon.CommTime))
	})

	t.Run("closes on failure path", func(t *testing.T) {
		s.Reset(recon.AllStats)
		fail := func() (err error) {
			defer s.StartTimer(recon.CompTime).Stop()
			clock.Advance(time.Second)
			return errFail
		}
		require.ErrorIs(t, fail(), errFail)
		require.Equal(t, 1.0, s.Get(recon.CompTime))
		require.Equal(t, s.Total(), s.Get(recon.CompTime))
	})

	t.Run("different counters nest", func(t *testing.T) {
		s.Reset(recon.AllStats)
		outer := s.StartTimer(recon.IdleTime)
		clock.Advance(time.Second)
		inner := s.StartTimer(recon.CommTime)
		clock.Advance(2 * time.Second)
		inner.Stop()
		clock.Advance(time.Second)
		outer.Stop()
		require.Equal(t, 2.0, s.Get(recon.CommTime))
		require.Equal(t, 4.0, s.Get(recon.IdleTime))
		require.Equal(t, 6.0, s.Total())
	})
}
