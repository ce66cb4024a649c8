package probe

import (
	"fmt"
	"time"
)

// Reply classification returned by LatencyStats.OnReply
type ReplyKind int

const (
	ReplyFirst ReplyKind = iota
	ReplyInOrder
	ReplyDuplicate
	ReplyOutOfOrder
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyFirst:
		return "first"
	case ReplyInOrder:
		return "in-order"
	case ReplyDuplicate:
		return "duplicate"
	case ReplyOutOfOrder:
		return "out-of-order"
	default:
		return "unknown"
	}
}

// LatencyStats aggregates probe replies of a single session.
// Zero value is ready to use.
type LatencyStats struct {
	lastSeq    uint32
	rx         uint32
	dup        uint32
	unordered  uint32
	minLatency int64
	maxLatency int64
}

// Reset statistics to zero values
func (s *LatencyStats) Reset() {
	*s = LatencyStats{}
}

// OnReply classifies a reply against the highest sequence seen so far
// and updates latency extrema. Latency is in microseconds, never negative.
func (s *LatencyStats) OnReply(pkt Packet, now time.Time) (ReplyKind, int64) {
	latency := NewTimestamp(now).Micros() - pkt.SendTime.Micros()
	if latency < 0 {
		// clock skew between send and receive
		latency = 0
	}

	if s.lastSeq == 0 {
		s.lastSeq = pkt.Sequence
		s.rx++
		s.minLatency = latency
		s.maxLatency = latency
		return ReplyFirst, latency
	}

	var kind ReplyKind
	switch {
	case pkt.Sequence == s.lastSeq:
		s.dup++
		return ReplyDuplicate, latency
	case pkt.Sequence < s.lastSeq:
		s.unordered++
		s.rx++
		kind = ReplyOutOfOrder
	default:
		s.lastSeq = pkt.Sequence
		s.rx++
		kind = ReplyInOrder
	}

	if latency < s.minLatency {
		s.minLatency = latency
	}
	if latency > s.maxLatency {
		s.maxLatency = latency
	}

	return kind, latency
}

// LastSequence returns high-water mark. Zero means no reply was observed.
func (s *LatencyStats) LastSequence() uint32 {
	return s.lastSeq
}

func (s *LatencyStats) Received() uint32 {
	return s.rx
}

func (s *LatencyStats) Duplicates() uint32 {
	return s.dup
}

func (s *LatencyStats) OutOfOrder() uint32 {
	return s.unordered
}

// MinLatency returns the lowest round trip in microseconds
func (s *LatencyStats) MinLatency() int64 {
	return s.minLatency
}

// MaxLatency returns the highest round trip in microseconds
func (s *LatencyStats) MaxLatency() int64 {
	return s.maxLatency
}

func (s *LatencyStats) String() string {
	return fmt.Sprintf("last=%d, rx=%d, dup=%d, unordered=%d, min=%dus, max=%dus",
		s.lastSeq, s.rx, s.dup, s.unordered, s.minLatency, s.maxLatency)
}
