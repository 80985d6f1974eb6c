package packet

import "hkds/params"

// ErrorMessage reports a taxonomy error back across the wire (§4.6,
// §7). The sequence byte carries the error kind rather than the
// usual client/server direction marker.
type ErrorMessage struct {
	ProtocolID byte
	Kind       byte
	MSG        [params.MessageSize]byte
}

func (p ErrorMessage) Marshal() []byte {
	h := header{Flag: FlagErrorMessage, ProtocolID: p.ProtocolID, Sequence: p.Kind, Length: lengthByte(params.MessageSize)}
	out := make([]byte, 0, params.HeaderSize+params.MessageSize)
	hb := h.marshal()
	out = append(out, hb[:]...)
	out = append(out, p.MSG[:]...)
	return out
}

func UnmarshalErrorMessage(b []byte) (ErrorMessage, error) {
	h, err := parseHeader(b)
	if err != nil {
		return ErrorMessage{}, err
	}
	if h.Flag != FlagErrorMessage || int(h.Length) != params.HeaderSize+params.MessageSize || len(b) != params.HeaderSize+params.MessageSize {
		return ErrorMessage{}, params.ErrInvalidFormat
	}
	var p ErrorMessage
	p.ProtocolID = h.ProtocolID
	p.Kind = h.Sequence
	copy(p.MSG[:], b[params.HeaderSize:])
	return p, nil
}

// Err maps a Kind byte to the corresponding sentinel error (§7).
func (p ErrorMessage) Err() error {
	switch p.Kind {
	case ErrKindAuthFailure:
		return params.ErrAuthFailure
	case ErrKindCacheExhausted:
		return params.ErrCacheExhausted
	case ErrKindInvalidFormat:
		return params.ErrInvalidFormat
	case ErrKindEntropyFailure:
		return params.ErrEntropyFailure
	case ErrKindCounterOverflow:
		return params.ErrCounterOverflow
	default:
		return params.ErrInvalidFormat
	}
}
