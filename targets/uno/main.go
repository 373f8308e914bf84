//go:build arduino

package main

import (
	"machine"

	"dimmer/core"
	"dimmer/protocol"
	"dimmer/targets/tinygpio"
)

//go:generate tinygo flash -target=arduino

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: TelemetryBaud})

	gpio := tinygpio.New()

	leds := core.NewLEDBank(gpio)
	for _, pin := range []machine.Pin{LED1, LED2, LED3} {
		if err := leds.Push(tinygpio.Pin(pin)); err != nil {
			halt()
		}
	}

	cfg := buttonConfig
	cfg.Pin = tinygpio.Pin(Button)
	button, err := core.NewButton(gpio, cfg)
	if err != nil {
		halt()
	}

	adc := core.NewAnalogConverter(avrADC{}, PotChannel, core.ADCConfig{})
	defer adc.Close()

	dimmer := core.NewDimmer(adc, leds, button, core.SleepDelayer{}, dimmerConfig,
		protocol.NewFrameWriter(machine.Serial))
	dimmer.Run()
}

// halt parks the MCU when wiring fails; there is nothing to report to.
func halt() {
	for {
	}
}
