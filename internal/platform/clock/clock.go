package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// NowMillis returns the clock reading as epoch milliseconds.
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}
