package protocol

import (
	"bytes"
	"errors"
)

var ErrFrameTooLarge = errors.New("payload does not fit in a frame")

// EncodeFrame appends one frame carrying payload to output.
func EncodeFrame(output OutputBuffer, seq uint8, payload []byte) error {
	if len(payload)+MessageLengthMin > MessageLengthMax {
		return ErrFrameTooLarge
	}
	cursor := output.CurPosition()

	// Write header (length placeholder and sequence)
	output.Output([]byte{0, MessageDest | seq&MessageSeqMask})
	output.Output(payload)

	// Update length field
	changed := len(output.DataSince(cursor))
	output.Update(cursor, uint8(changed+MessageTrailerSize))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
	return nil
}

// FrameDecoder splits a byte stream into validated frames.
// On a bad length, trailer or CRC it drops bytes up to the next sync byte.
type FrameDecoder struct {
	input  *FifoBuffer
	synced bool
	errors uint32
}

// NewFrameDecoder creates a decoder buffering up to capacity-1 bytes.
// capacity must be larger than MessageLengthMax.
func NewFrameDecoder(capacity int) *FrameDecoder {
	return &FrameDecoder{
		input:  NewFifoBuffer(capacity),
		synced: true,
	}
}

// Write buffers received bytes. It returns how many were accepted; the rest
// must be offered again after Next has drained the buffer.
func (d *FrameDecoder) Write(data []byte) int {
	return d.input.Write(data)
}

// Free returns how many bytes Write will accept.
func (d *FrameDecoder) Free() int {
	return d.input.Free()
}

// Errors returns the number of framing errors seen so far.
func (d *FrameDecoder) Errors() uint32 {
	return d.errors
}

// Next returns the next complete frame, or false when more data is needed.
func (d *FrameDecoder) Next() (Frame, bool) {
	for {
		if d.input.IsEmpty() {
			return Frame{}, false
		}
		data := d.input.Data()

		if !d.synced {
			syncPos := bytes.IndexByte(data, MessageValueSync)
			if syncPos < 0 {
				d.input.Reset()
				return Frame{}, false
			}
			d.input.Pop(syncPos + 1)
			d.synced = true
			continue
		}

		// Skip leading sync bytes
		if len(data) > 0 && data[0] == MessageValueSync {
			d.input.Pop(1)
			continue
		}

		if len(data) < MessageLengthMin {
			return Frame{}, false
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}
		if len(data) < msgLen {
			return Frame{}, false
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}
		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		frame := Frame{
			Sequence: data[MessagePositionSeq] & MessageSeqMask,
			Payload:  append([]byte(nil), data[MessageHeaderSize:msgLen-MessageTrailerSize]...),
		}
		d.input.Pop(msgLen)
		return frame, true
	}
}

func (d *FrameDecoder) desync() {
	d.errors++
	d.synced = false
	d.input.Pop(1)
}
