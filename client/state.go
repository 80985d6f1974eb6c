// Package client implements the HKDS client engine (§4.3): state
// initialization, token unwrap, transaction-key-cache generation, and
// the encrypt / encrypt-authenticate message transforms.
package client

import (
	"fmt"

	"hkds/internal/zeroize"
	"hkds/keys"
	"hkds/params"
)

// State is a single device's session state (§3 ClientState). It is
// exclusively owned by its caller for the duration of any call; no
// internal locking is required or permitted (§5).
type State struct {
	Level           params.Level
	CacheMultiplier int

	edk        []byte
	ksn        keys.KSN
	cache      [][params.MessageSize]byte
	cacheEmpty bool
}

// New constructs client state for a device, provisioned with its EDK
// and DID (§4.3 init). The cache starts empty; the caller must obtain
// and install a token before the first Encrypt call.
func New(level params.Level, cacheMultiplier int, edk []byte, did keys.DeviceID) (*State, error) {
	if len(edk) != level.KeySize {
		return nil, fmt.Errorf("client: edk must be %d bytes, got %d", level.KeySize, len(edk))
	}
	if !params.ValidCacheMultiplier(cacheMultiplier) {
		return nil, fmt.Errorf("client: invalid cache multiplier %d", cacheMultiplier)
	}

	s := &State{
		Level:           level,
		CacheMultiplier: cacheMultiplier,
		edk:             make([]byte, level.KeySize),
		ksn:             keys.NewKSN(did),
		// one spare slot beyond CACHE: see token.go's generateCache
		// doc comment for why the authenticated-encrypt MAC key can
		// need it.
		cache:           make([][params.MessageSize]byte, level.CacheSize(cacheMultiplier)+1),
		cacheEmpty:      true,
	}
	copy(s.edk, edk)
	return s, nil
}

// KSN returns the current key serial number (device identity plus
// transaction counter).
func (s *State) KSN() keys.KSN { return s.ksn }

// CacheEmpty reports whether the transaction key cache has been
// fully drawn down; Encrypt/EncryptAuthenticate fail until a fresh
// token is installed.
func (s *State) CacheEmpty() bool { return s.cacheEmpty }

// cacheSize returns CACHE for this state's level/multiplier.
func (s *State) cacheSize() int { return s.Level.CacheSize(s.CacheMultiplier) }

// Zero wipes the EDK and every remaining cache slot. Call when the
// device is retired.
func (s *State) Zero() {
	zeroize.Bytes(s.edk)
	for i := range s.cache {
		zeroize.Bytes(s.cache[i][:])
	}
}
