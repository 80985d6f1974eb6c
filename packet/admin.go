package packet

import "hkds/params"

// AdminOpcode names the first of the two opaque administrative
// message bytes (§4.6, §9: the original leaves this payload
// undefined beyond "a 2-byte message"). The second byte is an
// opcode-specific operand, e.g. a retirement reason code.
type AdminOpcode byte

const (
	AdminOpPing          AdminOpcode = 0x00
	AdminOpRetireDevice  AdminOpcode = 0x01
	AdminOpAckRotation   AdminOpcode = 0x02
)

// AdministrativeMessage is the opaque 2-byte operator channel used
// for device lifecycle signaling outside the token/message path
// (§4.6).
type AdministrativeMessage struct {
	ProtocolID byte
	Sequence   byte
	Opcode     AdminOpcode
	Operand    byte
}

const adminBodyLen = 2

func (p AdministrativeMessage) Marshal() []byte {
	h := header{Flag: FlagAdministrativeMessage, ProtocolID: p.ProtocolID, Sequence: p.Sequence, Length: lengthByte(adminBodyLen)}
	out := make([]byte, 0, params.HeaderSize+adminBodyLen)
	hb := h.marshal()
	out = append(out, hb[:]...)
	out = append(out, byte(p.Opcode), p.Operand)
	return out
}

func UnmarshalAdministrativeMessage(b []byte) (AdministrativeMessage, error) {
	h, err := parseHeader(b)
	if err != nil {
		return AdministrativeMessage{}, err
	}
	if h.Flag != FlagAdministrativeMessage || int(h.Length) != params.HeaderSize+adminBodyLen || len(b) != params.HeaderSize+adminBodyLen {
		return AdministrativeMessage{}, params.ErrInvalidFormat
	}
	body := b[params.HeaderSize:]
	return AdministrativeMessage{
		ProtocolID: h.ProtocolID,
		Sequence:   h.Sequence,
		Opcode:     AdminOpcode(body[0]),
		Operand:    body[1],
	}, nil
}
