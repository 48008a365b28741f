package recon

import (
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap/zapcore"
)

// StatID selects one of the per-session counters kept by Stats.
type StatID int

const (
	// XmitBytes is the total number of bytes the session has transmitted.
	XmitBytes StatID = iota
	// RecvBytes is the total number of bytes the session has received.
	RecvBytes
	// CommTime is the time spent sending and receiving.
	CommTime
	// IdleTime is the time spent waiting for the peer (listening, waiting
	// for the peer's computation etc).
	IdleTime
	// CompTime is the time spent on local computation.
	CompTime

	numStats

	// AllStats addresses every counter at once in Reset and Increment.
	AllStats StatID = -1
)

// String implements fmt.Stringer.
func (id StatID) String() string {
	switch id {
	case XmitBytes:
		return "xmitBytes"
	case RecvBytes:
		return "recvBytes"
	case CommTime:
		return "commTime"
	case IdleTime:
		return "idleTime"
	case CompTime:
		return "compTime"
	case AllStats:
		return "all"
	default:
		return fmt.Sprintf("statID(%d)", int(id))
	}
}

func (id StatID) isBytes() bool {
	return id == XmitBytes || id == RecvBytes
}

// Stats collects the communication and timing counters of a single
// reconciliation session. Byte counters are counted in bytes, time counters
// in seconds. Counters are reset at the start of every session, so they
// always describe the most recent one.
//
// Stats is not safe for concurrent use; sessions are strictly sequential by
// construction.
type Stats struct {
	clock   clockwork.Clock
	vals    [numStats]float64
	started [numStats]time.Time
}

// NewStats creates a Stats instance using the wall clock.
func NewStats() *Stats {
	return NewStatsWithClock(clockwork.NewRealClock())
}

// NewStatsWithClock creates a Stats instance with the specified clock.
// Tests use a fake clock to verify timing behavior.
func NewStatsWithClock(clock clockwork.Clock) *Stats {
	return &Stats{clock: clock}
}

// Reset zeroes the specified counter, or every counter for AllStats.
func (s *Stats) Reset(id StatID) {
	if id == AllStats {
		for i := range s.vals {
			s.vals[i] = 0
		}
		return
	}
	s.vals[id] = 0
}

// Increment adds v to the specified counter, or to every counter for
// AllStats. Fractional byte counts are not meaningful, so for the two byte
// counters the increment is truncated toward zero.
func (s *Stats) Increment(id StatID, v float64) {
	for i := StatID(0); i < numStats; i++ {
		if i != id && id != AllStats {
			continue
		}
		if i.isBytes() {
			s.vals[i] += math.Trunc(v)
		} else {
			s.vals[i] += v
		}
	}
}

// Get returns the value of the specified counter. AllStats is not supported.
func (s *Stats) Get(id StatID) float64 {
	return s.vals[id]
}

// Total returns the total session time in seconds, that is, the sum of the
// communication, idle and computation time counters.
func (s *Stats) Total() float64 {
	return s.vals[CommTime] + s.vals[IdleTime] + s.vals[CompTime]
}

// TotalDuration returns Total as a time.Duration.
func (s *Stats) TotalDuration() time.Duration {
	return time.Duration(s.Total() * float64(time.Second))
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s *Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("xmitBytes", uint64(s.vals[XmitBytes]))
	enc.AddUint64("recvBytes", uint64(s.vals[RecvBytes]))
	enc.AddFloat64("commTime", s.vals[CommTime])
	enc.AddFloat64("idleTime", s.vals[IdleTime])
	enc.AddFloat64("compTime", s.vals[CompTime])
	return nil
}

// timerStart records the start of a timed interval for the specified time
// counter. It is kept unexported; callers use StartTimer so that start/stop
// pairing cannot be broken.
func (s *Stats) timerStart(id StatID) {
	s.started[id] = s.clock.Now()
}

// timerEnd adds the time elapsed since the matching timerStart to the
// specified time counter.
func (s *Stats) timerEnd(id StatID) {
	s.vals[id] += s.clock.Since(s.started[id]).Seconds()
}

// ScopedTimer is an active timing scope bound to one time counter.
// It is returned by Stats.StartTimer and finished by Stop, which is safe to
// call more than once; the elapsed time is added to the counter exactly once.
type ScopedTimer struct {
	s       *Stats
	id      StatID
	stopped bool
}

// StartTimer starts a timing scope for the specified time counter.
// The usual pattern is:
//
//	defer s.StartTimer(recon.CompTime).Stop()
//
// or, when the scope ends before the function does, assigning the timer to a
// variable and calling Stop on every exit path, typically via defer.
// Timers for different counters may be nested; two timers for the same
// counter must not be active at the same time.
func (s *Stats) StartTimer(id StatID) *ScopedTimer {
	s.timerStart(id)
	return &ScopedTimer{s: s, id: id}
}

// Stop finishes the timing scope, adding the elapsed time to the counter.
// Only the first call has an effect.
func (t *ScopedTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.s.timerEnd(t.id)
}
