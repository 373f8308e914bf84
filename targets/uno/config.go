//go:build arduino

package main

import (
	"machine"

	"dimmer/core"
)

var (
	LED1   = machine.D8
	LED2   = machine.D9
	LED3   = machine.D10
	Button = machine.D13
)

const (
	// PotChannel is A0 / PC0
	PotChannel core.ADCChannel = 0

	TelemetryBaud = 115200
	ReportEvery   = 10
)

var dimmerConfig = core.DimmerConfig{
	Period:      core.DefaultPeriod,
	Unit:        core.Millisecond,
	ReportEvery: ReportEvery,
}

// The button pulls D13 high against an external pull-down
var buttonConfig = core.ButtonConfig{
	Pull: core.PullNone,
}
