package keccak

// Kmac computes the SP 800-185 KMAC with the fixed function name
// "KMAC" (§4.1, §4.2):
//
//	KMAC_s(out, msg, key, custom)
//
// out is filled with len(out) bytes of tag; custom is the
// customization string bound into the construction (TMS for token
// MACs, the caller-supplied associated data for message MACs).
func Kmac(out []byte, msg []byte, key []byte, custom []byte, rate Rate, cfg Config) {
	s := newSponge(rate, cfg)

	prefix := bytepad(append(encodeString([]byte("KMAC")), encodeString(custom)...), int(rate))
	keyBlock := bytepad(encodeString(key), int(rate))

	s.absorbAll(prefix)
	s.absorbAll(keyBlock)
	s.absorbAll(msg)
	s.absorbAll(rightEncode(uint64(len(out)) * 8))
	s.pad(domainCShake)
	s.read(out)
	s.zero()
}
