//go:build tinygo

// Package tinygpio implements core.GPIODriver on TinyGo's machine.Pin.
package tinygpio

import (
	"machine"

	"dimmer/core"
)

// Driver implements the GPIODriver interface on machine pins
type Driver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
}

// New creates a new GPIO driver
func New() *Driver {
	return &Driver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// Pin converts a machine pin into the core pin number
func Pin(p machine.Pin) core.GPIOPin {
	return core.GPIOPin(p)
}

func (d *Driver) configure(pin core.GPIOPin, mode machine.PinMode) error {
	// Check if already configured
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: mode})
	d.configuredPins[pin] = machinePin
	return nil
}

// ConfigureOutput configures a pin as a digital output
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinOutput)
}

// ConfigureInput configures a pin as a floating input
func (d *Driver) ConfigureInput(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInput)
}

// ConfigureInputPullUp configures a pin as an input with the internal pull-up
func (d *Driver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPullup)
}

// SetPin sets the pin to high (true) or low (false)
func (d *Driver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// Pin isn't configured - configure it first
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		machinePin = d.configuredPins[pin]
	}

	machinePin.Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// Pin not configured
		return false, nil
	}

	return machinePin.Get(), nil
}
