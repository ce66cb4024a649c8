package udpclient

import (
	"github.com/SyntropyNet/udp-probe/internal/logger"
	"github.com/SyntropyNet/udp-probe/pkg/probe"
	"github.com/jellydator/ttlcache/v3"
)

// transmit builds and sends a single probe.
// A probe that cannot be built does not consume a sequence number.
func (s *Session) transmit() {
	now := s.now()

	s.Lock()
	buf, err := probe.Encode(s.nextSeq, s.cfg.PayloadLength, now)
	if err != nil {
		s.Unlock()
		logger.Warning().Println(pkgName, "buffer size mismatch, expect no UDP packet:",
			err, "payload", s.cfg.PayloadLength)
		return
	}
	seq := s.nextSeq
	s.nextSeq++
	s.Unlock()

	if s.pending != nil {
		s.pending.Set(seq, now, ttlcache.DefaultTTL)
	}

	logger.Debug().Println(pkgName, "DATA send seq", seq, "size", len(buf))
	err = s.conn.Send(buf)
	if err != nil {
		// no retries, next tick will send a new probe
		logger.Warning().Println(pkgName, "send seq", seq, err)
	}
}

// receive classifies a single inbound datagram
func (s *Session) receive(b []byte) {
	pkt, err := probe.Decode(b)
	if err != nil {
		logger.Debug().Println(pkgName, "dropping", len(b), "bytes:", err)
		return
	}

	if s.pending != nil {
		s.pending.Delete(pkt.Sequence)
	}

	s.Lock()
	last := s.stats.LastSequence()
	kind, latency := s.stats.OnReply(pkt, s.now())
	minLatency := s.stats.MinLatency()
	s.Unlock()

	logger.Debug().Println(pkgName, "DATA recv seq", pkt.Sequence, "last", last, kind,
		"latency", latency, "us, min", minLatency, "us")
}
