package protocol

import (
	"errors"
	"io"
)

// MsgSample is the message id of a dimmer sample
const MsgSample = 1

var ErrUnknownMessage = errors.New("unknown message id")

// Sample is one PWM cycle as reported by the firmware.
type Sample struct {
	Seq     uint32 // Running sample counter, assigned by the writer
	Channel uint8
	Raw     uint16
	Max     uint16 // Highest raw value of the converter
	Period  uint32
	On      uint32
	Off     uint32
}

// Duty returns Raw as a fraction of Max.
func (s Sample) Duty() float64 {
	if s.Max == 0 {
		return 0
	}
	return float64(s.Raw) / float64(s.Max)
}

// EncodeSample writes a sample message payload.
func EncodeSample(output OutputBuffer, s Sample) {
	EncodeVLQUint(output, MsgSample)
	EncodeVLQUint(output, s.Seq)
	EncodeVLQUint(output, uint32(s.Channel))
	EncodeVLQUint(output, uint32(s.Raw))
	EncodeVLQUint(output, uint32(s.Max))
	EncodeVLQUint(output, s.Period)
	EncodeVLQUint(output, s.On)
	EncodeVLQUint(output, s.Off)
}

// DecodeSample parses a sample message payload.
func DecodeSample(payload []byte) (Sample, error) {
	data := payload
	var fields [8]uint32
	for i := range fields {
		v, err := DecodeVLQUint(&data)
		if err != nil {
			return Sample{}, err
		}
		fields[i] = v
	}
	if fields[0] != MsgSample {
		return Sample{}, ErrUnknownMessage
	}
	return Sample{
		Seq:     fields[1],
		Channel: uint8(fields[2]),
		Raw:     uint16(fields[3]),
		Max:     uint16(fields[4]),
		Period:  fields[5],
		On:      fields[6],
		Off:     fields[7],
	}, nil
}

// FrameWriter frames samples onto a byte stream such as a UART.
type FrameWriter struct {
	w       io.Writer
	payload *ScratchOutput
	output  *ScratchOutput
	seq     uint32
}

// NewFrameWriter creates a writer sending frames to w
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{
		w:       w,
		payload: NewScratchOutput(),
		output:  NewScratchOutput(),
	}
}

// Report sends s as one frame, numbering it with the writer's sequence.
func (f *FrameWriter) Report(s Sample) error {
	s.Seq = f.seq
	f.payload.Reset()
	EncodeSample(f.payload, s)

	f.output.Reset()
	if err := EncodeFrame(f.output, uint8(f.seq), f.payload.Result()); err != nil {
		return err
	}
	f.seq++

	_, err := f.w.Write(f.output.Result())
	return err
}
