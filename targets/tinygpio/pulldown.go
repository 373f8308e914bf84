//go:build tinygo && !avr

package tinygpio

import (
	"machine"

	"dimmer/core"
)

func (d *Driver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPulldown)
}
