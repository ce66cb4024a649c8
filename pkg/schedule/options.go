package schedule

type Option func(*Scheduler)

func WithRandom(r Random) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.rnd = r
		}
	}
}

func WithAfterFunc(f AfterFunc) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.afterFunc = f
		}
	}
}
