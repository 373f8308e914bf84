//go:build tinygo

package core

import (
	"time"

	"tinygo.org/x/drivers/delay"
)

// Wait blocks for n units.
// Microsecond delays are cycle counted, millisecond delays go through the timer.
func (SleepDelayer) Wait(n uint32, unit Unit) {
	if unit == Microsecond {
		delay.Sleep(unit.Duration(n))
		return
	}
	time.Sleep(unit.Duration(n))
}
