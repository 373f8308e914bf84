package monitor

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"dimmer/protocol"
)

var maskAny = errors.WithStack

const (
	readBufferSize = 256
	decoderSize    = 512
	idleWait       = 50 * time.Millisecond
)

// Monitor decodes the dimmer telemetry stream into metrics.
type Monitor struct {
	log     zerolog.Logger
	port    io.Reader
	metrics *Metrics
	decoder *protocol.FrameDecoder

	frames      atomic.Uint64
	frameErrors uint32

	mu       sync.Mutex
	last     protocol.Sample
	haveLast bool
}

// New creates a monitor reading frames from port.
func New(port io.Reader, metrics *Metrics, log zerolog.Logger) *Monitor {
	return &Monitor{
		log:     log,
		port:    port,
		metrics: metrics,
		decoder: protocol.NewFrameDecoder(decoderSize),
	}
}

// Frames returns the number of valid frames received.
func (m *Monitor) Frames() uint64 {
	return m.frames.Load()
}

// Last returns the most recent sample.
func (m *Monitor) Last() (protocol.Sample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.haveLast
}

// Run reads the port until ctx is canceled or a read fails.
// io.EOF is treated as an idle port, the read is retried.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, readBufferSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := m.port.Read(buf)
		if n > 0 {
			m.Process(buf[:n])
		}
		if err == io.EOF {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(idleWait):
			}
			continue
		}
		if err != nil {
			return maskAny(err)
		}
	}
}

// Process feeds received bytes through the frame decoder and handles every
// complete frame.
func (m *Monitor) Process(data []byte) {
	for len(data) > 0 {
		n := m.decoder.Write(data)
		data = data[n:]
		m.drain()
	}
}

func (m *Monitor) drain() {
	for {
		frame, ok := m.decoder.Next()
		if errs := m.decoder.Errors(); errs != m.frameErrors {
			m.metrics.FrameErrors.Add(float64(errs - m.frameErrors))
			m.log.Debug().Uint32("errors", errs).Msg("Framing error, resynchronizing")
			m.frameErrors = errs
		}
		if !ok {
			return
		}
		m.handle(frame)
	}
}

func (m *Monitor) handle(frame protocol.Frame) {
	s, err := protocol.DecodeSample(frame.Payload)
	if err != nil {
		m.metrics.DecodeErrors.Inc()
		m.log.Warn().Err(err).Uint8("seq", frame.Sequence).Msg("Failed to decode frame payload")
		return
	}
	m.frames.Add(1)
	m.metrics.Frames.Inc()

	m.mu.Lock()
	if m.haveLast && s.Seq > m.last.Seq+1 {
		missing := s.Seq - m.last.Seq - 1
		m.metrics.Dropped.Add(float64(missing))
		m.log.Warn().Uint32("missing", missing).Uint32("seq", s.Seq).Msg("Samples dropped")
	}
	m.last = s
	m.haveLast = true
	m.mu.Unlock()

	m.metrics.Raw.Set(float64(s.Raw))
	m.metrics.Duty.Set(s.Duty())
	m.metrics.OnTime.Set(float64(s.On))
	m.metrics.OffTime.Set(float64(s.Off))
	m.metrics.Period.Set(float64(s.Period))

	m.log.Debug().
		Uint32("seq", s.Seq).
		Uint8("channel", s.Channel).
		Uint16("raw", s.Raw).
		Float64("duty", s.Duty()).
		Uint32("on", s.On).
		Uint32("off", s.Off).
		Msg("Sample")
}
