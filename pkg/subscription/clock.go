package subscription

import "time"

// Clock supplies the current instant. Every active-check, creation, renewal
// and sweep comparison goes through the same injected clock so eligibility is
// never computed against mixed time sources.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock returns the UTC wall clock.
func SystemClock() Clock {
	return systemClock{}
}
