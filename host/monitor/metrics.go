package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dimmer"

// Metrics exported for the telemetry stream.
type Metrics struct {
	Raw          prometheus.Gauge
	Duty         prometheus.Gauge
	OnTime       prometheus.Gauge
	OffTime      prometheus.Gauge
	Period       prometheus.Gauge
	Frames       prometheus.Counter
	FrameErrors  prometheus.Counter
	DecodeErrors prometheus.Counter
	Dropped      prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Raw: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "adc_raw",
			Help: "Last raw ADC reading",
		}),
		Duty: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "duty_cycle",
			Help: "Last duty cycle (0-1)",
		}),
		OnTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "on_time_units",
			Help: "On time of the last PWM period",
		}),
		OffTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "off_time_units",
			Help: "Off time of the last PWM period",
		}),
		Period: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "period_units",
			Help: "PWM period",
		}),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "frames_total",
			Help: "Valid telemetry frames received",
		}),
		FrameErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "frame_errors_total",
			Help: "Framing errors (bad length, CRC or trailer)",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "decode_errors_total",
			Help: "Frames whose payload could not be decoded",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "dropped_samples_total",
			Help: "Samples missing from the sequence",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.Raw, m.Duty, m.OnTime, m.OffTime, m.Period,
		m.Frames, m.FrameErrors, m.DecodeErrors, m.Dropped,
	} {
		if err := reg.Register(c); err != nil {
			return nil, maskAny(err)
		}
	}
	return m, nil
}
