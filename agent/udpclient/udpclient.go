// Package udpclient runs a probe session: periodic probe transmission
// towards a single peer and classification of the replies.
package udpclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SyntropyNet/udp-probe/internal/logger"
	"github.com/SyntropyNet/udp-probe/pkg/probe"
	"github.com/SyntropyNet/udp-probe/pkg/schedule"
	"github.com/SyntropyNet/udp-probe/pkg/udpconn"
	"github.com/jellydator/ttlcache/v3"
)

const (
	pkgName = "UdpClient. "
	cmd     = "UDP_CLIENT"
)

const (
	// Run state
	stopped = iota
	running
)

const rxQueueLength = 16

var ErrRunning = errors.New("session already running")

// Transport is a datagram connection to a fixed peer
type Transport interface {
	Send(b []byte) error
	ReadLoop(ctx context.Context, fn func([]byte)) error
	io.Closer
}

type Config struct {
	Period        time.Duration
	AutoStart     bool
	PayloadLength uint
	// Unanswered probes older than this are counted as lost. 0 disables.
	ReplyTimeout time.Duration
	// Used to dial a transport when none was supplied with WithTransport
	Conn udpconn.Options
}

type Session struct {
	// guards stats and nextSeq against snapshot readers
	sync.Mutex
	cfg   Config
	state uint32

	sched *schedule.Scheduler
	conn  Transport
	now   func() time.Time

	stats   probe.LatencyStats
	nextSeq uint32
	lost    uint32

	pending *ttlcache.Cache[uint32, time.Time]
	rxChan  chan []byte
}

func New(cfg Config, opts ...Option) *Session {
	o := options{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		cfg:     cfg,
		conn:    o.transport,
		now:     o.now,
		nextSeq: 1,
		rxChan:  make(chan []byte, rxQueueLength),
	}

	s.sched = schedule.New(cfg.Period, cfg.AutoStart, o.schedOpts...)
	if !s.sched.Start() {
		logger.Info().Println(pkgName, "send interval is not positive, probes stay idle")
	}

	if cfg.ReplyTimeout > 0 {
		s.pending = newPendingCache(cfg.ReplyTimeout, &s.lost)
	}

	return s
}

func (s *Session) Name() string {
	return cmd
}

// Run dials the peer (unless a transport was supplied) and starts the session
// in background. Returns udpconn.ErrConnectionUnavailable when no socket can be bound.
func (s *Session) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&s.state, stopped, running) {
		return ErrRunning
	}

	if s.conn == nil {
		conn, err := udpconn.Dial(ctx, s.cfg.Conn)
		if err != nil {
			atomic.StoreUint32(&s.state, stopped)
			return err
		}
		logger.Info().Println(pkgName, "Created a connection with the server", conn.RemoteAddr(),
			"local", conn.LocalAddr())
		s.conn = conn
	}

	go func() {
		err := s.conn.ReadLoop(ctx, func(b []byte) {
			select {
			case s.rxChan <- b:
			case <-ctx.Done():
			}
		})
		if err != nil {
			logger.Error().Println(pkgName, "receive:", err)
		}
	}()

	if s.pending != nil {
		go s.pending.Start()
	}
	go s.sched.Run(ctx)
	go s.loop(ctx)

	logger.Info().Println(pkgName, "started. Auto start:", s.sched.AutoStart(),
		"interval:", s.cfg.Period, "payload:", s.cfg.PayloadLength)
	return nil
}

// loop is the only place session state is mutated
func (s *Session) loop(ctx context.Context) {
	defer func() {
		if s.pending != nil {
			s.pending.Stop()
		}
		s.conn.Close()
		atomic.StoreUint32(&s.state, stopped)
		logger.Info().Println(pkgName, "stopping", cmd)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.sched.Events():
			s.dispatch(ev)
		case b := <-s.rxChan:
			s.receive(b)
		}
	}
}

func (s *Session) dispatch(ev schedule.Event) {
	switch ev.Type {
	case schedule.PeriodExpired:
		backoff, armed := s.sched.HandlePeriod()
		if armed {
			logger.Debug().Println(pkgName, "period expired, transmit in", backoff)
		} else {
			logger.Debug().Println(pkgName, "period expired, auto start disabled")
		}
	case schedule.BackoffExpired:
		s.transmit()
	}
}

// Start enables probe transmission when the session was configured
// without auto start. Returns false if no send interval is configured.
func (s *Session) Start() bool {
	if s.sched.Period() <= 0 {
		logger.Warning().Println(pkgName, "cannot start, send interval is not configured")
		return false
	}
	if !s.sched.AutoStart() {
		logger.Info().Println(pkgName, "starting probes, interval", s.sched.Period())
	}
	s.sched.SetAutoStart(true)
	return true
}
