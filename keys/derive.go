// Package keys implements the HKDS key algebra (§4.2): the
// deterministic derivation chain from master key material down to a
// per-message transaction key. Every function here is pure/stateless;
// client.State and server.State (packages client, server) are the
// stateful callers that own key material and cache slots.
package keys

import (
	"crypto/subtle"

	"hkds/keccak"
	"hkds/params"
)

// GenerateEDK derives the embedded device key (§4.2):
//
//	EDK = SHAKE_s( DID ∥ BDK , K )
func GenerateEDK(did DeviceID, bdk []byte, level params.Level) []byte {
	in := make([]byte, len(did)+len(bdk))
	copy(in, did[:])
	copy(in[len(did):], bdk)

	edk := make([]byte, level.KeySize)
	keccak.Shake(edk, in, level.Rate, keccak.DefaultConfig)
	return edk
}

// BuildCTOK assembles the 23-byte token customization string (§4.2):
//
//	CTOK = be32(be32(ksn.tkc) div CACHE) ∥ FORMAL_NAME_s ∥ ksn.did
func BuildCTOK(ksn KSN, level params.Level, cacheSize int) [params.CTOKSize]byte {
	var ctok [params.CTOKSize]byte
	block := ksn.TKCBlock(cacheSize)
	ctok[0] = byte(block >> 24)
	ctok[1] = byte(block >> 16)
	ctok[2] = byte(block >> 8)
	ctok[3] = byte(block)
	copy(ctok[params.TKCSize:], level.FormalName[:])
	did := ksn.DID()
	copy(ctok[params.TKCSize+params.NameSize:], did[:])
	return ctok
}

// BuildTMS assembles the 23-byte token MAC customization string (§4.2):
//
//	TMS = ksn ∥ MAC_NAME_s
func BuildTMS(ksn KSN, level params.Level) [params.TMSSize]byte {
	var tms [params.TMSSize]byte
	copy(tms[:], ksn[:])
	copy(tms[params.KSNSize:], level.MacName[:])
	return tms
}

// DeriveToken computes the per-epoch session token (§4.2):
//
//	TOKEN = SHAKE_s( CTOK ∥ STK , K )
func DeriveToken(ctok []byte, stk []byte, level params.Level) []byte {
	in := make([]byte, len(ctok)+len(stk))
	copy(in, ctok)
	copy(in[len(ctok):], stk)

	token := make([]byte, level.KeySize)
	keccak.Shake(token, in, level.Rate, keccak.DefaultConfig)
	return token
}

// tokenMask computes mask = SHAKE_s(CTOK ∥ EDK, K), the XOR mask
// shared by wrap and unwrap (§4.2).
func tokenMask(ctok []byte, edk []byte, level params.Level) []byte {
	in := make([]byte, len(ctok)+len(edk))
	copy(in, ctok)
	copy(in[len(ctok):], edk)

	mask := make([]byte, level.KeySize)
	keccak.Shake(mask, in, level.Rate, keccak.DefaultConfig)
	return mask
}

// WrapToken performs the server-side token wrap (§4.2):
//
//	mask = SHAKE_s(CTOK ∥ EDK, K); body = TOKEN ⊕ mask
//	tag  = KMAC_s(body, key=EDK, custom=TMS, outlen=T)
//	ETOK = body ∥ tag
func WrapToken(token, ctok, edk []byte, tms [params.TMSSize]byte, level params.Level) []byte {
	mask := tokenMask(ctok, edk, level)
	body := make([]byte, level.KeySize)
	for i := range body {
		body[i] = token[i] ^ mask[i]
	}

	etok := make([]byte, level.ETOKSize)
	copy(etok, body)
	keccak.Kmac(etok[level.KeySize:], body, edk, tms[:], level.Rate, keccak.DefaultConfig)
	return etok
}

// UnwrapToken performs the client-side token unwrap (§4.2): it
// recomputes the expected tag, compares in constant time, and only
// on success unmasks ETOK's body into TOKEN. Returns
// (nil, false) on tag mismatch without touching any cache state.
func UnwrapToken(etok []byte, ctok []byte, edk []byte, tms [params.TMSSize]byte, level params.Level) (token []byte, ok bool) {
	body := etok[:level.KeySize]
	gotTag := etok[level.KeySize:]

	expectTag := make([]byte, params.TagSize)
	keccak.Kmac(expectTag, body, edk, tms[:], level.Rate, keccak.DefaultConfig)

	if subtle.ConstantTimeCompare(expectTag, gotTag) != 1 {
		return nil, false
	}

	mask := tokenMask(ctok, edk, level)
	token = make([]byte, level.KeySize)
	for i := range token {
		token[i] = body[i] ^ mask[i]
	}
	return token, true
}

// GenerateCacheStream derives the full transaction-key-cache byte
// stream (§4.2):
//
//	stream = SHAKE_s( TOKEN ∥ EDK , CACHE·N )
func GenerateCacheStream(token, edk []byte, cacheSize int, level params.Level) []byte {
	in := make([]byte, len(token)+len(edk))
	copy(in, token)
	copy(in[len(token):], edk)

	stream := make([]byte, cacheSize*params.MessageSize)
	keccak.Shake(stream, in, level.Rate, keccak.DefaultConfig)
	return stream
}

// RegenerateSlotStream reproduces the server-side cache stream
// without materializing the whole CACHE*N buffer: it squeezes only
// the minimal number of rate-sized blocks needed to cover
// byte offset `throughIndex*N + N` (§4.4), matching the client's
// GenerateCacheStream byte-for-byte over that prefix.
func RegenerateSlotStream(token, edk []byte, level params.Level, throughIndex int) []byte {
	in := make([]byte, len(token)+len(edk))
	copy(in, token)
	copy(in[len(token):], edk)

	needed := (throughIndex + 1) * params.MessageSize
	rate := int(level.Rate)
	nblocks := needed / rate
	if nblocks*rate < needed {
		nblocks++
	}

	x := keccak.NewXOF(level.Rate, keccak.DefaultConfig)
	x.Absorb(in)
	out := make([]byte, nblocks*rate)
	x.SqueezeBlocks(out, nblocks)
	x.Zero()
	return out
}
