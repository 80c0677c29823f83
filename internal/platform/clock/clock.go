package clock

import "time"

// Clock is injected wherever a timestamp is stored or compared.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant; tests pin time with it.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
