//go:build arduino

package main

import (
	"device/avr"

	"dimmer/core"
)

// avrADC drives the ATmega328P converter registers directly.
// Reference is AVcc, the prescaler divides the clock by 128.
type avrADC struct{}

func (avrADC) SelectChannel(ch core.ADCChannel) {
	avr.ADMUX.Set(uint8(avr.ADMUX_REFS0) | uint8(ch))
}

func (avrADC) StartConversion() {
	avr.ADCSRA.Set(uint8(avr.ADCSRA_ADEN | avr.ADCSRA_ADSC |
		avr.ADCSRA_ADPS2 | avr.ADCSRA_ADPS1 | avr.ADCSRA_ADPS0))
}

func (avrADC) ConversionComplete() bool {
	return avr.ADCSRA.HasBits(uint8(avr.ADCSRA_ADIF))
}

// AcknowledgeCompletion clears ADIF by writing a one to it.
// This also clears ADEN; StartConversion enables the converter again.
func (avrADC) AcknowledgeCompletion() {
	avr.ADCSRA.Set(uint8(avr.ADCSRA_ADIF))
}

func (avrADC) Result() core.ADCValue {
	// ADCL must be read first, it latches ADCH
	low := avr.ADCL.Get()
	high := avr.ADCH.Get()
	return core.ADCValue(uint16(high)<<8 | uint16(low))
}
