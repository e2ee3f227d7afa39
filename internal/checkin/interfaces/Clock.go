package interfaces

import "time"

// Clock abstracts time retrieval so rotation is deterministic in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func NewRealClock() Clock {
	return RealClock{}
}
