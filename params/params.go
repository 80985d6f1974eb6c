package params

import (
	"fmt"

	"hkds/keccak"
)

// Fixed layout sizes, identical across all security levels (§3).
const (
	KIDSize     = 4
	DIDSize     = 12
	KSNSize     = 16
	TKCSize     = 4
	CTOKSize    = 23
	NameSize    = 7
	TMSSize     = KSNSize + NameSize // 23
	MessageSize = 16                 // N
	TagSize     = 16                 // T
	HeaderSize  = 4                  // H
)

// Level is the compile-time security parameter s ∈ {128, 256, 512}.
// It carries every size and customization constant derived from s
// (§3, §4.2), mirroring the teacher's per-variant constant blocks in
// algorithms/types.go generalized to a first-class selector type —
// the sealed-variant redesign called for in spec §9 in place of the
// original's preprocessor switches.
type Level struct {
	Bits       int
	KeySize    int       // K: BDK/EDK/STK size in bytes
	Rate       keccak.Rate
	ETOKSize   int       // K + T
	ProtocolID byte      // wire protocol_id / DID MODE byte
	FormalName [NameSize]byte
	MacName    [NameSize]byte
}

// MODE byte values carried in the DID (§3).
const (
	ModeShake128 byte = 0x09
	ModeShake256 byte = 0x0A
	ModeShake512 byte = 0x0B
)

// PID byte values carried in the DID (§3). Only the unauthenticated
// and KMAC-authenticated constructions are implemented; SHA3-auth is
// named but not realized (§9 open question — see DESIGN.md).
const (
	PIDUnauth  byte = 0x10
	PIDKMAC    byte = 0x11
	PIDSHA3    byte = 0x12
)

// Level128, Level256 and Level512 are the three supported security
// levels. FormalName/MacName are part of the wire protocol (§4.2) and
// must match byte-for-byte across interoperating implementations.
var (
	Level128 = Level{
		Bits: 128, KeySize: 16, Rate: keccak.Rate128, ETOKSize: 16 + TagSize,
		ProtocolID: ModeShake128,
		FormalName: [NameSize]byte{'H', 'K', 'D', 'S', '1', '2', '8'},
		MacName:    [NameSize]byte{'u', 'K', 'w', 'e', '1', '2', '8'},
	}
	Level256 = Level{
		Bits: 256, KeySize: 32, Rate: keccak.Rate256, ETOKSize: 32 + TagSize,
		ProtocolID: ModeShake256,
		FormalName: [NameSize]byte{'H', 'K', 'D', 'S', '2', '5', '6'},
		MacName:    [NameSize]byte{'u', 'K', 'w', 'e', '2', '5', '6'},
	}
	Level512 = Level{
		Bits: 512, KeySize: 64, Rate: keccak.Rate512, ETOKSize: 64 + TagSize,
		ProtocolID: ModeShake512,
		FormalName: [NameSize]byte{'H', 'K', 'D', 'S', '5', '1', '2'},
		MacName:    [NameSize]byte{'u', 'K', 'w', 'e', '5', '1', '2'},
	}
)

// LevelByProtocolID looks up a Level from its wire protocol_id byte,
// returning ErrInvalidFormat if it does not match any mode (§6).
func LevelByProtocolID(id byte) (Level, error) {
	switch id {
	case ModeShake128:
		return Level128, nil
	case ModeShake256:
		return Level256, nil
	case ModeShake512:
		return Level512, nil
	default:
		return Level{}, fmt.Errorf("%w: unknown protocol id 0x%02X", ErrInvalidFormat, id)
	}
}

// DefaultCacheMultiplier is M, the default transaction-key cache
// depth multiplier (§3); must be even per §6.
const DefaultCacheMultiplier = 4

// CacheSize returns CACHE = (M * rate) / N for this level and
// multiplier, the number of 16-byte slots in a transaction key cache.
func (l Level) CacheSize(multiplier int) int {
	return (multiplier * int(l.Rate)) / MessageSize
}

// ValidCacheMultiplier reports whether m is one of the even values
// the spec allows (§6).
func ValidCacheMultiplier(m int) bool {
	switch m {
	case 2, 4, 6, 8, 10, 12:
		return true
	default:
		return false
	}
}
