package core

import "time"

// Unit is the time unit of a delay
type Unit uint8

const (
	Millisecond Unit = iota
	Microsecond
)

// Duration converts n units into a time.Duration
func (u Unit) Duration(n uint32) time.Duration {
	if u == Microsecond {
		return time.Duration(n) * time.Microsecond
	}
	return time.Duration(n) * time.Millisecond
}

func (u Unit) String() string {
	if u == Microsecond {
		return "us"
	}
	return "ms"
}

// Delayer blocks the caller for a number of time units.
type Delayer interface {
	Wait(n uint32, unit Unit)
}

// SleepDelayer is the platform delay.
// See delay_go.go and delay_tinygo.go for the implementations.
type SleepDelayer struct{}
