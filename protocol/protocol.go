// Package protocol implements the telemetry framing between the dimmer
// firmware and the host monitor.
//
// A frame is [len][seq] payload [crc16 hi][crc16 lo][0x7E], where len counts
// the whole frame and the CRC covers len, seq and payload. Payload fields are
// VLQ encoded.
package protocol

// Version represents the telemetry protocol version
const Version = "1"

// Protocol constants
const (
	MessageMax = 64 // Scratch buffer size, one frame

	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = MessageMax
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// Frame is one validated frame
type Frame struct {
	Sequence uint8
	Payload  []byte
}
