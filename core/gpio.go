// GPIO (General Purpose Input/Output) support
// LED bank outputs and the gating button input
package core

import "errors"

// Level is a digital logic level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Pull selects the input bias of a button pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// LEDBank is a growable set of output pins driven together.
type LEDBank struct {
	gpio GPIODriver
	pins []GPIOPin
}

// NewLEDBank creates an empty bank on the given driver
func NewLEDBank(gpio GPIODriver) *LEDBank {
	return &LEDBank{gpio: gpio}
}

// Push configures pin as an output, drives it low and adds it to the bank.
func (b *LEDBank) Push(pin GPIOPin) error {
	if err := b.gpio.ConfigureOutput(pin); err != nil {
		return err
	}
	if err := b.gpio.SetPin(pin, false); err != nil {
		return err
	}
	b.pins = append(b.pins, pin)
	return nil
}

// Len returns the number of pins in the bank
func (b *LEDBank) Len() int {
	return len(b.pins)
}

// Pins returns the pins in the order they were pushed
func (b *LEDBank) Pins() []GPIOPin {
	return b.pins
}

// SetAll drives every pin in the bank to level.
// A failing pin does not stop the others from being driven.
func (b *LEDBank) SetAll(level Level) error {
	var errs []error
	for _, pin := range b.pins {
		if err := b.gpio.SetPin(pin, bool(level)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// On drives the whole bank high
func (b *LEDBank) On() error {
	return b.SetAll(High)
}

// Off drives the whole bank low
func (b *LEDBank) Off() error {
	return b.SetAll(Low)
}

// ButtonConfig describes how a button is wired
type ButtonConfig struct {
	Pin  GPIOPin
	Pull Pull

	// ActiveLow inverts the pin level, for buttons that pull the line to ground.
	ActiveLow bool
}

// Button is a single raw (not debounced) digital input
type Button struct {
	gpio GPIODriver
	cfg  ButtonConfig
}

// NewButton configures the button pin as an input
func NewButton(gpio GPIODriver, cfg ButtonConfig) (*Button, error) {
	var err error
	switch cfg.Pull {
	case PullUp:
		err = gpio.ConfigureInputPullUp(cfg.Pin)
	case PullDown:
		err = gpio.ConfigureInputPullDown(cfg.Pin)
	default:
		err = gpio.ConfigureInput(cfg.Pin)
	}
	if err != nil {
		return nil, err
	}
	return &Button{gpio: gpio, cfg: cfg}, nil
}

// IsAsserted reports whether the button is currently pressed.
// A read error counts as not pressed.
func (b *Button) IsAsserted() bool {
	level, err := b.gpio.GetPin(b.cfg.Pin)
	if err != nil {
		return false
	}
	return level != b.cfg.ActiveLow
}
