package core

import (
	"math"
	"testing"
)

// fakeADC simulates the conversion registers of a single ADC.
type fakeADC struct {
	value ADCValue

	// pollsToComplete is how many ConversionComplete calls return false
	// before the flag is raised. Negative means never.
	pollsToComplete int

	selected     ADCChannel
	polls        int
	flag         bool
	conversions  int
	acknowledged int
	ops          []string
}

func newFakeADC(value ADCValue) *fakeADC {
	return &fakeADC{value: value}
}

func (f *fakeADC) SelectChannel(ch ADCChannel) {
	f.selected = ch
	f.ops = append(f.ops, "select")
}

func (f *fakeADC) StartConversion() {
	f.polls = 0
	f.flag = false
	f.conversions++
	f.ops = append(f.ops, "start")
}

func (f *fakeADC) ConversionComplete() bool {
	f.ops = append(f.ops, "poll")
	if f.pollsToComplete < 0 {
		return false
	}
	if f.polls >= f.pollsToComplete {
		f.flag = true
	}
	f.polls++
	return f.flag
}

func (f *fakeADC) AcknowledgeCompletion() {
	f.flag = false
	f.acknowledged++
	f.ops = append(f.ops, "ack")
}

func (f *fakeADC) Result() ADCValue {
	f.ops = append(f.ops, "result")
	return f.value
}

func TestNewAnalogConverterWarmUp(t *testing.T) {
	hw := newFakeADC(300)
	adc := NewAnalogConverter(hw, 3, ADCConfig{})

	if adc.Pin() != 3 {
		t.Errorf("Expected pin 3, got %d", adc.Pin())
	}
	if hw.conversions != 1 {
		t.Errorf("Expected 1 warm-up conversion, got %d", hw.conversions)
	}
	if hw.selected != 3 {
		t.Errorf("Expected channel 3 selected, got %d", hw.selected)
	}
	if !adc.Binding().IsBound() {
		t.Error("Expected converter to be bound")
	}
}

func TestReadSequence(t *testing.T) {
	hw := newFakeADC(512)
	hw.pollsToComplete = 2
	adc := NewAnalogConverter(hw, 0, ADCConfig{})
	hw.ops = nil

	raw, err := adc.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if raw != 512 {
		t.Errorf("Expected raw 512, got %d", raw)
	}

	expected := []string{"select", "start", "poll", "poll", "poll", "ack", "result"}
	if len(hw.ops) != len(expected) {
		t.Fatalf("Expected ops %v, got %v", expected, hw.ops)
	}
	for i := range expected {
		if hw.ops[i] != expected[i] {
			t.Errorf("Op %d: expected %s, got %s", i, expected[i], hw.ops[i])
		}
	}
	if hw.flag {
		t.Error("Completion flag not cleared after read")
	}
}

func TestReadTimeout(t *testing.T) {
	hw := newFakeADC(100)
	hw.pollsToComplete = -1
	adc := NewAnalogConverter(hw, 1, ADCConfig{MaxPolls: 16})

	_, err := adc.Read()
	if err != ErrConversionTimeout {
		t.Errorf("Expected ErrConversionTimeout, got %v", err)
	}
	if hw.acknowledged != 0 {
		t.Errorf("Expected no acknowledge on timeout, got %d", hw.acknowledged)
	}
	if _, err := adc.SplitPeriod(10); err != ErrConversionTimeout {
		t.Errorf("Expected ErrConversionTimeout from SplitPeriod, got %v", err)
	}
}

func TestReadSlowHardwareWithinBound(t *testing.T) {
	hw := newFakeADC(77)
	hw.pollsToComplete = 15
	adc := NewAnalogConverter(hw, 0, ADCConfig{MaxPolls: 16})

	raw, err := adc.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if raw != 77 {
		t.Errorf("Expected raw 77, got %d", raw)
	}
}

func TestPollUntil(t *testing.T) {
	calls := 0
	ok := PollUntil(func() bool {
		calls++
		return calls == 1000
	}, 0)
	if !ok || calls != 1000 {
		t.Errorf("Unbounded poll: expected ok after 1000 calls, got ok=%v calls=%d", ok, calls)
	}

	calls = 0
	ok = PollUntil(func() bool {
		calls++
		return false
	}, 5)
	if ok || calls != 5 {
		t.Errorf("Bounded poll: expected failure after 5 calls, got ok=%v calls=%d", ok, calls)
	}
}

func TestClose(t *testing.T) {
	hw := newFakeADC(1023)
	adc := NewAnalogConverter(hw, 2, ADCConfig{})
	adc.Close()

	if adc.Binding() != Unbound {
		t.Errorf("Expected Unbound after Close, got %+v", adc.Binding())
	}
	if _, ok := adc.Binding().Channel(); ok {
		t.Error("Expected no channel after Close")
	}
	if adc.Pin() != 0 {
		t.Errorf("Expected pin 0 once unbound, got %d", adc.Pin())
	}

	conversions := hw.conversions
	if _, err := adc.Read(); err != ErrChannelUnbound {
		t.Errorf("Expected ErrChannelUnbound, got %v", err)
	}
	if hw.conversions != conversions {
		t.Error("Hardware touched after Close")
	}
}

func TestPinAndMaxValueIdempotent(t *testing.T) {
	hw := newFakeADC(10)
	adc := NewAnalogConverter(hw, 5, ADCConfig{})
	conversions := hw.conversions

	for i := 0; i < 3; i++ {
		if adc.Pin() != 5 {
			t.Errorf("Expected pin 5, got %d", adc.Pin())
		}
		if adc.MaxValue() != 1023.0 {
			t.Errorf("Expected max 1023, got %f", adc.MaxValue())
		}
	}
	if hw.conversions != conversions {
		t.Error("Pin/MaxValue started a conversion")
	}
}

func TestMaxValueResolution(t *testing.T) {
	testCases := []struct {
		resolution uint8
		expected   float64
	}{
		{0, 1023},
		{8, 255},
		{10, 1023},
		{12, 4095},
		{16, 65535},
	}

	for _, tc := range testCases {
		adc := NewAnalogConverter(newFakeADC(0), 0, ADCConfig{Resolution: tc.resolution})
		if adc.MaxValue() != tc.expected {
			t.Errorf("Resolution %d: expected max %f, got %f", tc.resolution, tc.expected, adc.MaxValue())
		}
	}
}

func TestDutyCycleAllReadings(t *testing.T) {
	hw := newFakeADC(0)
	adc := NewAnalogConverter(hw, 0, ADCConfig{})

	for r := 0; r <= 1023; r++ {
		hw.value = ADCValue(r)
		duty, err := adc.DutyCycle()
		if err != nil {
			t.Fatalf("DutyCycle failed: %v", err)
		}
		if duty != float64(r)/1023.0 {
			t.Errorf("Raw %d: expected duty %v, got %v", r, float64(r)/1023.0, duty)
		}
	}
}

func TestSplitDutySumsToPeriod(t *testing.T) {
	for p := uint32(0); p <= 255; p++ {
		for i := 0; i <= 100; i++ {
			d := float64(i) / 100
			s := SplitDuty(d, p)
			if s.On+s.Off != p {
				t.Fatalf("d=%v p=%d: on %d + off %d != %d", d, p, s.On, s.Off, p)
			}
			if s.On > p {
				t.Fatalf("d=%v p=%d: on %d exceeds period", d, p, s.On)
			}
			if want := uint32(math.Floor(d*float64(p) + 0.5)); s.On != want {
				t.Fatalf("d=%v p=%d: expected on %d, got %d", d, p, want, s.On)
			}
		}
	}
}

func TestSplitDutyRounding(t *testing.T) {
	testCases := []struct {
		name   string
		duty   float64
		period uint32
		on     uint32
		off    uint32
	}{
		{"half", 0.5, 10, 5, 5},
		{"third rounds down", 0.33, 10, 3, 7},
		{"full", 1.0, 10, 10, 0},
		{"zero", 0.0, 10, 0, 10},
		{"zero period", 0.7, 0, 0, 0},
		{"rounds up", 0.66, 10, 7, 3},
		{"above one clamps", 1.5, 10, 10, 0},
		{"negative clamps", -0.2, 10, 0, 10},
		{"quarter of two rounds up", 0.25, 2, 1, 1},
		{"0.45 of ten rounds up", 0.45, 10, 5, 5},
		{"eighth of four rounds up", 0.125, 4, 1, 3},
		{"1.5 rounds up", 0.375, 4, 2, 2},
		{"2.5 rounds up", 0.25, 10, 3, 7},
		{"just below half", 0.049, 10, 0, 10},
		{"just above half", 0.051, 10, 1, 9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := SplitDuty(tc.duty, tc.period)
			if s.On != tc.on || s.Off != tc.off {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tc.on, tc.off, s.On, s.Off)
			}
		})
	}
}

func TestSplitPeriodScenarios(t *testing.T) {
	testCases := []struct {
		name string
		raw  ADCValue
		duty float64
		on   uint32
		off  uint32
	}{
		{"mid scale", 512, 512.0 / 1023.0, 5, 5},
		{"zero", 0, 0.0, 0, 10},
		{"full scale", 1023, 1.0, 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hw := newFakeADC(tc.raw)
			adc := NewAnalogConverter(hw, 0, ADCConfig{})

			duty, err := adc.DutyCycle()
			if err != nil {
				t.Fatalf("DutyCycle failed: %v", err)
			}
			if duty != tc.duty {
				t.Errorf("Expected duty %v, got %v", tc.duty, duty)
			}

			s, err := adc.SplitPeriod(10)
			if err != nil {
				t.Fatalf("SplitPeriod failed: %v", err)
			}
			if s.On != tc.on || s.Off != tc.off {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tc.on, tc.off, s.On, s.Off)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	hw := newFakeADC(256)
	adc := NewAnalogConverter(hw, 0, ADCConfig{})

	m, err := adc.Measure(20)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if m.Raw != 256 || m.Period != 20 {
		t.Errorf("Unexpected measurement %+v", m)
	}
	if m.Split.On != 5 || m.Split.Off != 15 {
		t.Errorf("Expected split (5, 15), got (%d, %d)", m.Split.On, m.Split.Off)
	}
}
