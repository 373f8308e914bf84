//go:build !tinygo

package core

import "time"

// Wait sleeps for n units (regular Go implementation)
func (SleepDelayer) Wait(n uint32, unit Unit) {
	time.Sleep(unit.Duration(n))
}
