//go:build rp2040

package main

import (
	"device/rp"
	"machine"

	"dimmer/core"
)

// ADCResolution is the RP2040 SAR width
const ADCResolution = 12

// rpADC runs single conversions through the ADC CS register.
type rpADC struct{}

// newRPADC powers the ADC block and routes pin to the converter.
func newRPADC(pin machine.Pin) rpADC {
	machine.InitADC()
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return rpADC{}
}

func (rpADC) SelectChannel(ch core.ADCChannel) {
	rp.ADC.CS.ReplaceBits(
		uint32(ch)<<rp.ADC_CS_AINSEL_Pos,
		rp.ADC_CS_AINSEL_Msk,
		0,
	)
}

func (rpADC) StartConversion() {
	rp.ADC.CS.SetBits(rp.ADC_CS_EN | rp.ADC_CS_START_ONCE)
}

func (rpADC) ConversionComplete() bool {
	return rp.ADC.CS.HasBits(rp.ADC_CS_READY)
}

// READY drops on the next START_ONCE, there is no flag to clear
func (rpADC) AcknowledgeCompletion() {}

func (rpADC) Result() core.ADCValue {
	return core.ADCValue(rp.ADC.RESULT.Get() & 0x0FFF)
}
