package utils

import (
	"time"
)

// Clock lets handlers that stamp newsfeed events take time as a dependency
// instead of calling time.Now directly. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}
