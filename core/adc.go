// ADC (Analog to Digital Converter) support
// Drives a single analog channel and derives PWM on/off times from it
package core

import "errors"

var (
	ErrChannelUnbound    = errors.New("adc channel not bound")
	ErrConversionTimeout = errors.New("adc conversion did not complete")
)

// DefaultADCResolution is the resolution of the reference 10-bit converter.
const DefaultADCResolution = 10

// ADCConfig holds converter settings that are fixed for its lifetime.
type ADCConfig struct {
	// Resolution in bits. 0 selects DefaultADCResolution.
	Resolution uint8

	// MaxPolls bounds the busy-wait on conversion-complete.
	// 0 spins until the hardware completes, however long that takes.
	MaxPolls uint32
}

// Split is an on/off time split of one PWM period.
type Split struct {
	On  uint32
	Off uint32
}

// Measurement is one conversion together with everything derived from it.
type Measurement struct {
	Raw    ADCValue
	Duty   float64
	Period uint32
	Split  Split
}

// AnalogConverter represents an ADC bound to one analog input channel
type AnalogConverter struct {
	hw       ADCHardware
	binding  Binding
	max      float64
	maxPolls uint32
}

// NewAnalogConverter binds a converter to ch.
// The channel is not validated; an out-of-range channel gives whatever
// the hardware returns for it. One conversion is run and discarded to put
// the hardware into a known state.
func NewAnalogConverter(hw ADCHardware, ch ADCChannel, cfg ADCConfig) *AnalogConverter {
	res := cfg.Resolution
	if res == 0 {
		res = DefaultADCResolution
	}
	a := &AnalogConverter{
		hw:       hw,
		binding:  Bound(ch),
		max:      float64(uint32(1)<<res - 1),
		maxPolls: cfg.MaxPolls,
	}
	_, _ = a.Read()
	return a
}

// Close releases the channel. The converter itself is left powered.
func (a *AnalogConverter) Close() {
	a.binding = Unbound
}

// Pin returns the bound channel.
// Once unbound it returns 0, which is also a valid channel; use Binding to
// tell the two apart.
func (a *AnalogConverter) Pin() ADCChannel {
	ch, _ := a.binding.Channel()
	return ch
}

// Binding returns the current channel binding
func (a *AnalogConverter) Binding() Binding {
	return a.binding
}

// MaxValue returns the highest raw value the converter can produce.
func (a *AnalogConverter) MaxValue() float64 {
	return a.max
}

// Read performs one full conversion on the bound channel and returns the raw result.
func (a *AnalogConverter) Read() (ADCValue, error) {
	ch, ok := a.binding.Channel()
	if !ok {
		return 0, ErrChannelUnbound
	}

	a.hw.SelectChannel(ch)
	a.hw.StartConversion()
	if !PollUntil(a.hw.ConversionComplete, a.maxPolls) {
		return 0, ErrConversionTimeout
	}
	a.hw.AcknowledgeCompletion()

	return a.hw.Result(), nil
}

// DutyCycle performs a conversion and returns it as a fraction of MaxValue.
func (a *AnalogConverter) DutyCycle() (float64, error) {
	raw, err := a.Read()
	if err != nil {
		return 0, err
	}
	return DutyCycleOf(raw, a.max), nil
}

// SplitPeriod performs a conversion and splits period into on and off time,
// rounded to the nearest whole unit.
func (a *AnalogConverter) SplitPeriod(period uint32) (Split, error) {
	m, err := a.Measure(period)
	if err != nil {
		return Split{}, err
	}
	return m.Split, nil
}

// Measure is SplitPeriod that also returns the raw reading and duty cycle.
func (a *AnalogConverter) Measure(period uint32) (Measurement, error) {
	raw, err := a.Read()
	if err != nil {
		return Measurement{}, err
	}
	duty := DutyCycleOf(raw, a.max)
	return Measurement{
		Raw:    raw,
		Duty:   duty,
		Period: period,
		Split:  SplitDuty(duty, period),
	}, nil
}

// DutyCycleOf converts a raw reading into a duty cycle.
func DutyCycleOf(raw ADCValue, max float64) float64 {
	return float64(raw) / max
}

// SplitDuty splits period by duty using round-half-up.
// duty is clamped to [0, 1] so On never exceeds period.
func SplitDuty(duty float64, period uint32) Split {
	if duty < 0 {
		duty = 0
	} else if duty > 1 {
		duty = 1
	}
	on := uint32(duty*float64(period) + 0.5)
	if on > period {
		on = period
	}
	return Split{On: on, Off: period - on}
}
