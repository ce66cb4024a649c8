package probe

import "time"

// Timestamp is a wall clock time split the way gettimeofday reports it.
type Timestamp struct {
	Seconds      int64
	Microseconds int64
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Seconds:      t.Unix(),
		Microseconds: int64(t.Nanosecond() / 1000),
	}
}

func (t Timestamp) GetTime() time.Time {
	return time.Unix(t.Seconds, t.Microseconds*1000)
}

// Micros returns the timestamp as microseconds since Unix epoch
func (t Timestamp) Micros() int64 {
	return t.Seconds*1000000 + t.Microseconds
}

func (t Timestamp) String() string {
	return t.GetTime().String()
}
