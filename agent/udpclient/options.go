package udpclient

import (
	"time"

	"github.com/SyntropyNet/udp-probe/pkg/schedule"
)

type options struct {
	transport Transport
	now       func() time.Time
	schedOpts []schedule.Option
}

type Option func(*options)

// WithTransport uses an already connected transport instead of dialing one
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithClock replaces wall clock used for probe timestamps and latency
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithScheduleOptions(opts ...schedule.Option) Option {
	return func(o *options) {
		o.schedOpts = append(o.schedOpts, opts...)
	}
}
