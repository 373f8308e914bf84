// Dimmer - the firmware's polling loop
// While the button is held, the potentiometer reading sets the share of each
// PWM period the LED bank spends on.
package core

import "dimmer/protocol"

// Default dimmer timing
const (
	DefaultPeriod = 10
	DefaultUnit   = Millisecond
)

// Reporter receives one sample per reported PWM cycle
type Reporter interface {
	Report(s protocol.Sample) error
}

// DimmerConfig holds the loop timing
type DimmerConfig struct {
	// Period is the PWM period in Unit. 0 selects DefaultPeriod.
	Period uint32
	Unit   Unit

	// ReportEvery sends a sample every N cycles. 0 disables reporting.
	ReportEvery uint32
}

// Dimmer drives an LED bank from an analog reading while a button is asserted.
type Dimmer struct {
	adc      *AnalogConverter
	leds     *LEDBank
	button   *Button
	delay    Delayer
	reporter Reporter
	cfg      DimmerConfig

	active bool
	cycles uint32
}

// NewDimmer wires the loop collaborators together. reporter may be nil.
func NewDimmer(adc *AnalogConverter, leds *LEDBank, button *Button, delay Delayer, cfg DimmerConfig, reporter Reporter) *Dimmer {
	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	return &Dimmer{
		adc:      adc,
		leds:     leds,
		button:   button,
		delay:    delay,
		reporter: reporter,
		cfg:      cfg,
	}
}

// Config returns the effective configuration
func (d *Dimmer) Config() DimmerConfig {
	return d.cfg
}

// Cycles returns the number of PWM cycles run so far
func (d *Dimmer) Cycles() uint32 {
	return d.cycles
}

// Step runs one loop iteration.
// With the button asserted it runs one full PWM cycle. Otherwise no
// conversion happens and the bank is left off, switched off once on release.
func (d *Dimmer) Step() error {
	if !d.button.IsAsserted() {
		if d.active {
			d.active = false
			DebugPrintln("dimmer: released")
			return d.leds.Off()
		}
		return nil
	}
	if !d.active {
		d.active = true
		DebugPrintln("dimmer: pressed")
	}

	m, err := d.adc.Measure(d.cfg.Period)
	if err != nil {
		return err
	}

	if m.Split.On > 0 {
		if err := d.leds.On(); err != nil {
			return err
		}
		d.delay.Wait(m.Split.On, d.cfg.Unit)
	}
	if err := d.leds.Off(); err != nil {
		return err
	}
	if m.Split.Off > 0 {
		d.delay.Wait(m.Split.Off, d.cfg.Unit)
	}

	d.cycles++
	return d.report(m)
}

func (d *Dimmer) report(m Measurement) error {
	if d.reporter == nil || d.cfg.ReportEvery == 0 || d.cycles%d.cfg.ReportEvery != 0 {
		return nil
	}
	return d.reporter.Report(protocol.Sample{
		Channel: uint8(d.adc.Pin()),
		Raw:     uint16(m.Raw),
		Max:     uint16(d.adc.MaxValue()),
		Period:  m.Period,
		On:      m.Split.On,
		Off:     m.Split.Off,
	})
}

// Run loops forever. Errors are logged and the loop carries on.
func (d *Dimmer) Run() {
	DebugPrintln("dimmer: period=" + utoa(d.cfg.Period) + d.cfg.Unit.String())
	for {
		if err := d.Step(); err != nil {
			DebugPrintln("dimmer: " + err.Error())
		}
	}
}
