package client

import (
	"hkds/internal/zeroize"
	"hkds/keys"
	"hkds/params"
)

// InstallToken unwraps an encrypted token issued for the state's
// current KSN and, on success, regenerates the transaction key cache
// from it (§4.2, §4.3). On tag mismatch it returns ErrAuthFailure and
// leaves the cache untouched and still empty.
func (s *State) InstallToken(etok []byte) error {
	if len(etok) != s.Level.ETOKSize {
		return params.ErrInvalidFormat
	}

	ctok := keys.BuildCTOK(s.ksn, s.Level, s.cacheSize())
	tms := keys.BuildTMS(s.ksn, s.Level)

	token, ok := keys.UnwrapToken(etok, ctok[:], s.edk, tms, s.Level)
	if !ok {
		return params.ErrAuthFailure
	}
	defer zeroize.Bytes(token)

	s.generateCache(token)
	return nil
}

// generateCache derives the CACHE-slot key stream from token and
// loads it into the cache, marking it ready for use (§4.2).
//
// It asks for one slot beyond CACHE: §4.4 has the server derive the
// MAC key of an authenticated message at raw index ksn.index+1 of the
// *same* epoch's SHAKE stream, with no wraparound at the CACHE
// boundary. EncryptAuthenticate (§4.3) must therefore source its
// second (MAC) key from that same unwrapped position when the first
// (encryption) key happened to be the last of CACHE — otherwise an
// authenticated message encrypted on that boundary would never
// verify server-side. The extra slot is the deterministic
// continuation of the identical SHAKE stream, so it costs nothing to
// derive and keeps client and server bit-for-bit aligned (§9 open
// question: resolved in favor of matching the server's unwrapped
// indexing rather than wrapping the client's array to slot 0).
func (s *State) generateCache(token []byte) {
	stream := keys.GenerateCacheStream(token, s.edk, len(s.cache), s.Level)
	defer zeroize.Bytes(stream)

	for i := range s.cache {
		copy(s.cache[i][:], stream[i*params.MessageSize:(i+1)*params.MessageSize])
	}
	s.cacheEmpty = false
}
