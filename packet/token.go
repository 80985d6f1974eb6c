package packet

import "hkds/params"

// ClientTokenRequest carries a device's KSN to the server (§4.6).
type ClientTokenRequest struct {
	ProtocolID byte
	KSN        [params.KSNSize]byte
}

func (p ClientTokenRequest) Marshal() []byte {
	h := header{Flag: FlagClientTokenRequest, ProtocolID: p.ProtocolID, Sequence: SeqClient, Length: lengthByte(params.KSNSize)}
	out := make([]byte, 0, params.HeaderSize+params.KSNSize)
	hb := h.marshal()
	out = append(out, hb[:]...)
	out = append(out, p.KSN[:]...)
	return out
}

func UnmarshalClientTokenRequest(b []byte) (ClientTokenRequest, error) {
	h, err := parseHeader(b)
	if err != nil {
		return ClientTokenRequest{}, err
	}
	if h.Flag != FlagClientTokenRequest || int(h.Length) != params.HeaderSize+params.KSNSize || len(b) != params.HeaderSize+params.KSNSize {
		return ClientTokenRequest{}, params.ErrInvalidFormat
	}
	var p ClientTokenRequest
	p.ProtocolID = h.ProtocolID
	copy(p.KSN[:], b[params.HeaderSize:])
	return p, nil
}

// ServerTokenResponse carries the wrapped session token back to the
// device (§4.6). Body length K+T varies with the security level, so
// callers pass it explicitly rather than relying on a fixed constant.
type ServerTokenResponse struct {
	ProtocolID byte
	ETOK       []byte
}

func (p ServerTokenResponse) Marshal() []byte {
	h := header{Flag: FlagServerTokenResponse, ProtocolID: p.ProtocolID, Sequence: SeqServer, Length: lengthByte(len(p.ETOK))}
	out := make([]byte, 0, params.HeaderSize+len(p.ETOK))
	hb := h.marshal()
	out = append(out, hb[:]...)
	out = append(out, p.ETOK...)
	return out
}

func UnmarshalServerTokenResponse(b []byte, etokSize int) (ServerTokenResponse, error) {
	h, err := parseHeader(b)
	if err != nil {
		return ServerTokenResponse{}, err
	}
	if h.Flag != FlagServerTokenResponse || int(h.Length) != params.HeaderSize+etokSize || len(b) != params.HeaderSize+etokSize {
		return ServerTokenResponse{}, params.ErrInvalidFormat
	}
	etok := make([]byte, etokSize)
	copy(etok, b[params.HeaderSize:])
	return ServerTokenResponse{ProtocolID: h.ProtocolID, ETOK: etok}, nil
}
