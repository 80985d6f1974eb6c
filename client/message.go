package client

import (
	"hkds/internal/zeroize"
	"hkds/keccak"
	"hkds/params"
)

// wouldOverflow reports whether advancing the counter n times from
// tkc would cross 2^32-1 (§7 CounterOverflow). Checked up front so
// neither Encrypt nor EncryptAuthenticate ever draws a cache slot it
// cannot also account for in the counter.
func wouldOverflow(tkc uint32, n uint32) bool {
	return uint64(tkc)+uint64(n) > 0xFFFFFFFF
}

// commitSlot zeroizes cache[idx] and flips cache_empty once the last
// ordinary slot (cacheSize-1) has been spent.
func (s *State) commitSlot(idx int) {
	zeroize.Bytes(s.cache[idx][:])
	if idx == s.cacheSize()-1 {
		s.cacheEmpty = true
	}
}

// Encrypt draws one transaction key and XORs it with a 16-byte
// plaintext block (§4.3). Returns ErrCacheExhausted if the cache is
// empty and ErrCounterOverflow if the counter cannot advance; state is
// unchanged in both cases — the key and counter are only committed
// after the ciphertext has been fully computed.
func (s *State) Encrypt(plaintext [params.MessageSize]byte) ([params.MessageSize]byte, error) {
	var ct [params.MessageSize]byte
	if s.cacheEmpty {
		return ct, params.ErrCacheExhausted
	}
	tkc := s.ksn.TKC()
	if wouldOverflow(tkc, 1) {
		return ct, params.ErrCounterOverflow
	}

	idx := s.ksn.CacheIndex(s.cacheSize())
	key := s.cache[idx]
	for i := range ct {
		ct[i] = key[i] ^ plaintext[i]
	}

	s.commitSlot(idx)
	s.ksn.SetTKC(tkc + 1)
	zeroize.Bytes(key[:])

	return ct, nil
}

// EncryptAuthenticate draws two transaction keys — one to encrypt,
// one to MAC — and returns ciphertext‖tag (§4.3). Both slots are
// consumed atomically (§4.3, §5 atomicity requirement): the key
// indices, the overflow check and the full KMAC computation all
// happen against a read-only snapshot of the KSN counter before any
// cache slot is zeroized or the counter advanced, so a failure never
// leaves the cache or KSN partially spent. When the first key lands
// on the final ordinary slot, the MAC key is drawn from the one spare
// slot beyond CACHE rather than wrapping back to index 0, matching
// the server's unwrapped index+1 derivation (§4.4, §9).
func (s *State) EncryptAuthenticate(plaintext [params.MessageSize]byte, associatedData []byte) ([params.MessageSize + params.TagSize]byte, error) {
	var out [params.MessageSize + params.TagSize]byte
	if s.cacheEmpty {
		return out, params.ErrCacheExhausted
	}
	tkc := s.ksn.TKC()
	if wouldOverflow(tkc, 2) {
		return out, params.ErrCounterOverflow
	}

	idx1 := s.ksn.CacheIndex(s.cacheSize())
	boundary := idx1 == s.cacheSize()-1
	idx2 := idx1 + 1
	if boundary {
		idx2 = s.cacheSize()
	}

	k1 := s.cache[idx1]
	k2 := s.cache[idx2]

	ct := out[:params.MessageSize]
	for i := range ct {
		ct[i] = k1[i] ^ plaintext[i]
	}
	keccak.Kmac(out[params.MessageSize:], ct, k2[:], associatedData, s.Level.Rate, keccak.DefaultConfig)

	s.commitSlot(idx1)
	s.commitSlot(idx2)
	s.ksn.SetTKC(tkc + 2)
	zeroize.Bytes(k1[:])
	zeroize.Bytes(k2[:])

	return out, nil
}
