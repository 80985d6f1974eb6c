package keys

import (
	"fmt"

	"hkds/internal/zeroize"
	"hkds/params"
)

// MasterKey is the server-held BDK/STK hierarchy root (§3). It is
// read-only after construction and safe to share by reference across
// server sessions (§5); callers must call Zero when it is retired.
type MasterKey struct {
	BDK []byte
	STK []byte
	KID [params.KIDSize]byte
}

// GenerateMDK draws 2*K bytes from src and splits them into BDK and
// STK (§4.4). On entropy failure the partially-filled key material is
// zeroized before ErrEntropyFailure propagates (§7).
func GenerateMDK(src params.EntropySource, kid [params.KIDSize]byte, level params.Level) (*MasterKey, error) {
	buf := make([]byte, 2*level.KeySize)
	if !src(buf) {
		zeroize.Bytes(buf)
		return nil, params.ErrEntropyFailure
	}

	mk := &MasterKey{
		BDK: make([]byte, level.KeySize),
		STK: make([]byte, level.KeySize),
		KID: kid,
	}
	copy(mk.BDK, buf[:level.KeySize])
	copy(mk.STK, buf[level.KeySize:])
	zeroize.Bytes(buf)

	return mk, nil
}

// Zero wipes BDK and STK. The MasterKey must not be used afterward.
func (mk *MasterKey) Zero() {
	if mk == nil {
		return
	}
	zeroize.Bytes(mk.BDK)
	zeroize.Bytes(mk.STK)
}

// String renders the KID for logs/CLI output; never the key material.
func (mk *MasterKey) String() string {
	return fmt.Sprintf("mdk(kid=%x)", mk.KID[:])
}
