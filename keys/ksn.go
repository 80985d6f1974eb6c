package keys

import (
	"encoding/binary"
	"fmt"

	"hkds/params"
)

// KSN is the 16-byte key serial number (§3): [DID:12][TKC:4], TKC a
// big-endian 32-bit transaction counter that increments by one per
// transaction key the client has drawn (one per Encrypt, two per
// EncryptAuthenticate).
type KSN [params.KSNSize]byte

// NewKSN builds a fresh KSN for a provisioned device, counter at zero.
func NewKSN(did DeviceID) KSN {
	var k KSN
	copy(k[:params.DIDSize], did[:])
	return k
}

// DID returns the device-identity prefix of the KSN.
func (k KSN) DID() DeviceID {
	var d DeviceID
	copy(d[:], k[:params.DIDSize])
	return d
}

// TKC returns the current transaction key counter.
func (k KSN) TKC() uint32 {
	return binary.BigEndian.Uint32(k[params.DIDSize:])
}

// SetTKC overwrites the counter field in place.
func (k *KSN) SetTKC(v uint32) {
	binary.BigEndian.PutUint32(k[params.DIDSize:], v)
}

// Increment advances the counter by one, byte-wise with carry as the
// spec requires (§4.2), returning ErrCounterOverflow if the counter
// would wrap past 2^32-1 (§7 CounterOverflow — fatal for the device).
func (k *KSN) Increment() error {
	tkc := k.TKC()
	if tkc == 0xFFFFFFFF {
		return params.ErrCounterOverflow
	}
	k.SetTKC(tkc + 1)
	return nil
}

// TKCBlock returns the cache-epoch block number
// be32(be32(ksn.tkc) div CACHE), the value bound into CTOK (§4.2).
func (k KSN) TKCBlock(cacheSize int) uint32 {
	return k.TKC() / uint32(cacheSize)
}

// CacheIndex returns be32(ksn.tkc) mod CACHE, the slot a transaction
// key is drawn from (§4.2).
func (k KSN) CacheIndex(cacheSize int) int {
	return int(k.TKC() % uint32(cacheSize))
}

// String renders the KSN as a hex string, useful for logs/CLI output.
func (k KSN) String() string {
	return fmt.Sprintf("%x", k[:])
}
