// Package schedule fires probe transmissions every period, each one delayed
// by a random backoff so nodes sharing a period do not transmit in bursts.
package schedule

import "time"

// Scheduler state. There is no terminal state: once scheduled,
// the period timer recurs until the context is cancelled.
type State uint32

const (
	Idle State = iota
	Scheduled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

type EventType int

const (
	// Recurring period timer fired
	PeriodExpired EventType = iota
	// One-shot backoff timer fired, time to transmit
	BackoffExpired
)

type Event struct {
	Type EventType
	Time time.Time
}

// Random is a uniform integer source. Int63n returns a value in [0, n).
// *math/rand.Rand satisfies it.
type Random interface {
	Int63n(n int64) int64
}

// Stopper is a one-shot timer handle. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// AfterFunc arms a one-shot timer calling f after d
type AfterFunc func(d time.Duration, f func()) Stopper

func timeAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

const eventQueueLength = 8
