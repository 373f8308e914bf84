//go:build rp2040

package main

import (
	"machine"

	"dimmer/core"
)

var (
	LED1   = machine.GP8
	LED2   = machine.GP9
	LED3   = machine.GP10
	Button = machine.GP13
	Pot    = machine.ADC0 // GP26
)

const (
	PotChannel core.ADCChannel = 0

	// Debug lines go out on UART0 (GP0/GP1), samples on USB CDC
	DebugBaud   = 115200
	ReportEvery = 50
)

var dimmerConfig = core.DimmerConfig{
	Period:      core.DefaultPeriod,
	Unit:        core.Millisecond,
	ReportEvery: ReportEvery,
}

// Button to ground, internal pull-up
var buttonConfig = core.ButtonConfig{
	Pull:      core.PullUp,
	ActiveLow: true,
}
