package packet

import "hkds/params"

// ClientMessageRequest carries an encrypted (and optionally
// authenticated) message block to the server (§4.6). For an
// unauthenticated request Tag is all-zero.
type ClientMessageRequest struct {
	ProtocolID byte
	KSN        [params.KSNSize]byte
	CT         [params.MessageSize]byte
	Tag        [params.TagSize]byte
}

const clientMessageBodyLen = params.KSNSize + params.MessageSize + params.TagSize

func (p ClientMessageRequest) Marshal() []byte {
	h := header{Flag: FlagClientMessageRequest, ProtocolID: p.ProtocolID, Sequence: SeqClient, Length: lengthByte(clientMessageBodyLen)}
	out := make([]byte, 0, params.HeaderSize+clientMessageBodyLen)
	hb := h.marshal()
	out = append(out, hb[:]...)
	out = append(out, p.KSN[:]...)
	out = append(out, p.CT[:]...)
	out = append(out, p.Tag[:]...)
	return out
}

func UnmarshalClientMessageRequest(b []byte) (ClientMessageRequest, error) {
	h, err := parseHeader(b)
	if err != nil {
		return ClientMessageRequest{}, err
	}
	if h.Flag != FlagClientMessageRequest || int(h.Length) != params.HeaderSize+clientMessageBodyLen || len(b) != params.HeaderSize+clientMessageBodyLen {
		return ClientMessageRequest{}, params.ErrInvalidFormat
	}
	var p ClientMessageRequest
	p.ProtocolID = h.ProtocolID
	body := b[params.HeaderSize:]
	copy(p.KSN[:], body[:params.KSNSize])
	copy(p.CT[:], body[params.KSNSize:params.KSNSize+params.MessageSize])
	copy(p.Tag[:], body[params.KSNSize+params.MessageSize:])
	return p, nil
}

// Authenticated reports whether Tag carries a real MAC rather than
// the all-zero unauthenticated placeholder.
func (p ClientMessageRequest) Authenticated() bool {
	for _, b := range p.Tag {
		if b != 0 {
			return true
		}
	}
	return false
}

// ServerMessageResponse carries the decrypted 16-byte plaintext block
// back to the device (§4.6).
type ServerMessageResponse struct {
	ProtocolID byte
	MSG        [params.MessageSize]byte
}

func (p ServerMessageResponse) Marshal() []byte {
	h := header{Flag: FlagServerMessageResponse, ProtocolID: p.ProtocolID, Sequence: SeqServer, Length: lengthByte(params.MessageSize)}
	out := make([]byte, 0, params.HeaderSize+params.MessageSize)
	hb := h.marshal()
	out = append(out, hb[:]...)
	out = append(out, p.MSG[:]...)
	return out
}

func UnmarshalServerMessageResponse(b []byte) (ServerMessageResponse, error) {
	h, err := parseHeader(b)
	if err != nil {
		return ServerMessageResponse{}, err
	}
	if h.Flag != FlagServerMessageResponse || int(h.Length) != params.HeaderSize+params.MessageSize || len(b) != params.HeaderSize+params.MessageSize {
		return ServerMessageResponse{}, params.ErrInvalidFormat
	}
	var p ServerMessageResponse
	p.ProtocolID = h.ProtocolID
	copy(p.MSG[:], b[params.HeaderSize:])
	return p, nil
}
