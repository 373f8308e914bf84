package core

// ADCChannel identifies one analog input line of the converter.
type ADCChannel uint8

// ADCValue is the raw conversion result as read from the result register.
type ADCValue uint16

// ADCHardware is the register-level view of a single ADC peripheral.
// Targets implement it on top of their device registers; tests use a fake.
//
// One conversion is always SelectChannel, StartConversion, poll
// ConversionComplete, AcknowledgeCompletion, Result. The interface keeps no
// state between conversions.
type ADCHardware interface {
	// SelectChannel routes the input mux to ch and selects the
	// reference voltage.
	SelectChannel(ch ADCChannel)

	// StartConversion enables the converter and starts a single
	// conversion with the target's clock prescaler.
	StartConversion()

	// ConversionComplete reports whether the hardware has raised its
	// conversion-complete flag.
	ConversionComplete() bool

	// AcknowledgeCompletion clears the conversion-complete flag.
	AcknowledgeCompletion()

	// Result returns the last conversion result.
	Result() ADCValue
}

// Binding is the channel an AnalogConverter is bound to, or Unbound.
type Binding struct {
	ch    ADCChannel
	bound bool
}

// Unbound is the binding of a released converter.
var Unbound = Binding{}

// Bound returns a binding to ch.
func Bound(ch ADCChannel) Binding {
	return Binding{ch: ch, bound: true}
}

// Channel returns the bound channel. ok is false when unbound.
func (b Binding) Channel() (ch ADCChannel, ok bool) {
	return b.ch, b.bound
}

// IsBound reports whether b refers to a channel.
func (b Binding) IsBound() bool {
	return b.bound
}

// PollUntil calls done until it returns true.
// With maxPolls == 0 it never gives up; otherwise it returns false after
// maxPolls unsuccessful calls.
func PollUntil(done func() bool, maxPolls uint32) bool {
	if maxPolls == 0 {
		for !done() {
		}
		return true
	}
	for i := uint32(0); i < maxPolls; i++ {
		if done() {
			return true
		}
	}
	return false
}
