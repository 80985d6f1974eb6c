package server

import (
	"crypto/subtle"

	"hkds/internal/zeroize"
	"hkds/keccak"
	"hkds/keys"
	"hkds/params"
)

// slotKey recomputes the single transaction key at the given cache
// index by regenerating just enough of the TOKEN∥EDK SHAKE stream to
// reach it (§4.4). EDK and TOKEN are re-derived fresh each call: the
// server holds no per-device cache of its own.
func (s State) slotKey(index int) [params.MessageSize]byte {
	did := s.KSN.DID()
	edk := keys.GenerateEDK(did, s.MDK.BDK, s.Level)
	defer zeroize.Bytes(edk)

	ctok := keys.BuildCTOK(s.KSN, s.Level, s.cacheSize())
	token := keys.DeriveToken(ctok[:], s.MDK.STK, s.Level)
	defer zeroize.Bytes(token)

	stream := keys.RegenerateSlotStream(token, edk, s.Level, index)
	defer zeroize.Bytes(stream)

	var key [params.MessageSize]byte
	copy(key[:], stream[index*params.MessageSize:(index+1)*params.MessageSize])
	return key
}

// DecryptMessage reverses a client Encrypt call (§4.4): it regenerates
// the transaction key at state.KSN's current index and XORs it with
// ciphertext.
func (s State) DecryptMessage(ciphertext [params.MessageSize]byte) [params.MessageSize]byte {
	index := s.KSN.CacheIndex(s.cacheSize())
	key := s.slotKey(index)
	defer zeroize.Bytes(key[:])

	var pt [params.MessageSize]byte
	for i := range pt {
		pt[i] = key[i] ^ ciphertext[i]
	}
	return pt
}

// DecryptVerifyMessage reverses a client EncryptAuthenticate call
// (§4.4): it regenerates the encryption key k1 at the current index
// and the MAC key k2 at index+1 (unwrapped, no CACHE-boundary
// wraparound — see client/token.go's generateCache doc comment),
// verifies the KMAC tag in constant time, and only then releases the
// plaintext. k1 and k2 are zeroized before return regardless of
// outcome.
func (s State) DecryptVerifyMessage(in [params.MessageSize + params.TagSize]byte, associatedData []byte) (pt [params.MessageSize]byte, ok bool) {
	index := s.KSN.CacheIndex(s.cacheSize())
	ct := in[:params.MessageSize]
	gotTag := in[params.MessageSize:]

	k1 := s.slotKey(index)
	k2 := s.slotKey(index + 1)
	defer zeroize.Bytes(k1[:])
	defer zeroize.Bytes(k2[:])

	expectTag := make([]byte, params.TagSize)
	keccak.Kmac(expectTag, ct, k2[:], associatedData, s.Level.Rate, keccak.DefaultConfig)

	if subtle.ConstantTimeCompare(expectTag, gotTag) != 1 {
		return pt, false
	}

	for i := range pt {
		pt[i] = k1[i] ^ ct[i]
	}
	return pt, true
}
