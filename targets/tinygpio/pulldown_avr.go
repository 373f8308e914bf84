//go:build tinygo && avr

package tinygpio

import (
	"errors"

	"dimmer/core"
)

var ErrNoPullDown = errors.New("pull-down not supported on AVR")

// ConfigureInputPullDown fails, AVR ports only have pull-up resistors
func (d *Driver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return ErrNoPullDown
}
