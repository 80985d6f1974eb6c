// Package packet implements the five fixed HKDS wire shapes (§4.6):
// serialization is a flat byte layout with a 4-byte header, decoders
// reject any packet whose length or protocol_id disagrees with its
// declared flag.
package packet

import (
	"hkds/params"
)

// Flag values identify the packet shape (§4.6).
const (
	FlagClientTokenRequest   byte = 0x01
	FlagServerTokenResponse  byte = 0x02
	FlagClientMessageRequest byte = 0x03
	FlagServerMessageResponse byte = 0x04
	FlagAdministrativeMessage byte = 0x05
	FlagErrorMessage          byte = 0x06
)

// Sequence values (§4.6): client-originated packets carry 0x01,
// server-originated carry 0x02. ErrorMessage instead carries the
// error kind in the sequence byte.
const (
	SeqClient byte = 0x01
	SeqServer byte = 0x02
)

// Error kind bytes carried in an ErrorMessage's sequence field.
const (
	ErrKindAuthFailure     byte = 0x01
	ErrKindCacheExhausted  byte = 0x02
	ErrKindInvalidFormat   byte = 0x03
	ErrKindEntropyFailure  byte = 0x04
	ErrKindCounterOverflow byte = 0x05
)

// header is the 4-byte prefix common to every packet shape:
// [flag:1][protocol_id:1][sequence:1][length:1].
type header struct {
	Flag       byte
	ProtocolID byte
	Sequence   byte
	Length     byte
}

func (h header) marshal() [params.HeaderSize]byte {
	return [params.HeaderSize]byte{h.Flag, h.ProtocolID, h.Sequence, h.Length}
}

func parseHeader(b []byte) (header, error) {
	if len(b) < params.HeaderSize {
		return header{}, params.ErrInvalidFormat
	}
	if _, err := params.LevelByProtocolID(b[1]); err != nil {
		return header{}, params.ErrInvalidFormat
	}
	return header{Flag: b[0], ProtocolID: b[1], Sequence: b[2], Length: b[3]}, nil
}

// lengthByte computes the wire length field, §4.6's "4+body" tally.
// It truncates to a byte as the spec's table does (every body here
// is well under 256 bytes); a body that would overflow is not a
// representable packet and MarshalX functions never produce one.
func lengthByte(bodyLen int) byte {
	return byte(params.HeaderSize + bodyLen)
}
