package udpclient

import (
	"sync/atomic"

	"github.com/SyntropyNet/udp-probe/pkg/schedule"
)

// Snapshot is a point in time copy of session statistics.
// Round trip times are in microseconds.
type Snapshot struct {
	TotalSent       uint32 `json:"total_sent"`
	TotalReceived   uint32 `json:"total_received"`
	TotalDuplicates uint32 `json:"total_duplicates"`
	TotalOutOfOrder uint32 `json:"total_out_of_order"`
	TotalLost       uint32 `json:"total_lost"`
	LastSequence    uint32 `json:"last_sequence"`
	MinRoundTrip    int64  `json:"min_round_trip_us"`
	MaxRoundTrip    int64  `json:"max_round_trip_us"`
	Started         bool   `json:"started"`
}

func (s *Session) Snapshot() Snapshot {
	s.Lock()
	defer s.Unlock()

	return Snapshot{
		TotalSent:       s.nextSeq - 1,
		TotalReceived:   s.stats.Received(),
		TotalDuplicates: s.stats.Duplicates(),
		TotalOutOfOrder: s.stats.OutOfOrder(),
		TotalLost:       atomic.LoadUint32(&s.lost),
		LastSequence:    s.stats.LastSequence(),
		MinRoundTrip:    s.stats.MinLatency(),
		MaxRoundTrip:    s.stats.MaxLatency(),
		Started:         s.sched.State() == schedule.Scheduled && s.sched.AutoStart(),
	}
}
