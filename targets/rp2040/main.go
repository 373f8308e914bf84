//go:build rp2040

package main

import (
	"machine"

	"dimmer/core"
	"dimmer/protocol"
	"dimmer/targets/tinygpio"
)

func main() {
	// Clear any watchdog state left over from a previous image
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	initDebug()

	gpio := tinygpio.New()

	leds := core.NewLEDBank(gpio)
	for _, pin := range []machine.Pin{LED1, LED2, LED3} {
		if err := leds.Push(tinygpio.Pin(pin)); err != nil {
			core.DebugPrintln("leds: " + err.Error())
			return
		}
	}

	cfg := buttonConfig
	cfg.Pin = tinygpio.Pin(Button)
	button, err := core.NewButton(gpio, cfg)
	if err != nil {
		core.DebugPrintln("button: " + err.Error())
		return
	}

	adc := core.NewAnalogConverter(newRPADC(Pot), PotChannel, core.ADCConfig{
		Resolution: ADCResolution,
	})
	defer adc.Close()

	dimmer := core.NewDimmer(adc, leds, button, core.SleepDelayer{}, dimmerConfig,
		protocol.NewFrameWriter(machine.Serial))
	dimmer.Run()
}

func initDebug() {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: DebugBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s))
		uart.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
}
