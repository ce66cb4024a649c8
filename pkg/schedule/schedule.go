package schedule

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

type Scheduler struct {
	sync.Mutex
	period    time.Duration
	state     uint32
	autoStart uint32

	rnd       Random
	afterFunc AfterFunc
	pending   Stopper

	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

func New(period time.Duration, autoStart bool, opts ...Option) *Scheduler {
	s := &Scheduler{
		period:    period,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		afterFunc: timeAfterFunc,
		events:    make(chan Event, eventQueueLength),
		done:      make(chan struct{}),
	}
	s.SetAutoStart(autoStart)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Scheduler) Period() time.Duration {
	return s.period
}

func (s *Scheduler) State() State {
	return State(atomic.LoadUint32(&s.state))
}

func (s *Scheduler) AutoStart() bool {
	return atomic.LoadUint32(&s.autoStart) != 0
}

func (s *Scheduler) SetAutoStart(enable bool) {
	var val uint32
	if enable {
		val = 1
	}
	atomic.StoreUint32(&s.autoStart, val)
}

// Start moves scheduler from Idle to Scheduled.
// Returns false when period is not positive, scheduler stays Idle then.
func (s *Scheduler) Start() bool {
	if s.period <= 0 {
		return false
	}
	atomic.CompareAndSwapUint32(&s.state, uint32(Idle), uint32(Scheduled))
	return true
}

// Events delivers period and backoff timer firings
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Backoff returns a random delay in [period/4, period/2)
func (s *Scheduler) Backoff() time.Duration {
	quarter := s.period / 4
	if quarter <= 0 {
		return 0
	}
	return quarter + time.Duration(s.rnd.Int63n(int64(quarter)))
}

// HandlePeriod processes a period timer firing. When auto start is enabled
// a one-shot backoff timer is armed and its delay returned.
func (s *Scheduler) HandlePeriod() (time.Duration, bool) {
	if !s.AutoStart() {
		return 0, false
	}

	backoff := s.Backoff()
	s.Lock()
	defer s.Unlock()
	s.pending = s.afterFunc(backoff, func() {
		s.post(BackoffExpired)
	})

	return backoff, true
}

// Run drives the period timer until ctx is done. Returns immediately when Idle.
func (s *Scheduler) Run(ctx context.Context) {
	if s.State() != Scheduled {
		return
	}
	defer s.stop()

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.post(PeriodExpired)
		}
	}
}

func (s *Scheduler) post(t EventType) {
	select {
	case s.events <- Event{Type: t, Time: time.Now()}:
	case <-s.done:
	}
}

func (s *Scheduler) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.Lock()
	defer s.Unlock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
