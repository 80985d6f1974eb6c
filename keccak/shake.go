package keccak

// Shake computes the short-form SHAKE XOF: out is filled with
// len(out) bytes derived from key at the given rate (§4.1).
//
//	SHAKE_s(out, key)
func Shake(out []byte, key []byte, rate Rate, cfg Config) {
	x := NewXOF(rate, cfg)
	x.Absorb(key)
	x.Squeeze(out)
	x.Zero()
}

// XOF is the long-form SHAKE API: Absorb once, then Squeeze (or
// SqueezeBlocks) any number of times, producing a continuous stream.
type XOF struct {
	s *sponge
}

// NewXOF constructs a fresh extendable-output function at the given
// rate and permutation configuration.
func NewXOF(rate Rate, cfg Config) *XOF {
	return &XOF{s: newSponge(rate, cfg)}
}

// Absorb feeds key material into the sponge. Must be called exactly
// once, before any Squeeze/SqueezeBlocks call.
func (x *XOF) Absorb(key []byte) {
	x.s.absorbAll(key)
	x.s.pad(domainShake)
}

// Squeeze fills out with the next len(out) bytes of output.
func (x *XOF) Squeeze(out []byte) {
	x.s.read(out)
}

// SqueezeBlocks fills out with n full rate-sized blocks; len(out)
// must equal n*Rate. Used where the caller needs block-aligned
// output directly from the permutation (server cache-stream
// regeneration, §4.4).
func (x *XOF) SqueezeBlocks(out []byte, n int) {
	x.s.squeezeBlocks(out, n)
}

// Rate returns the configured sponge rate in bytes.
func (x *XOF) Rate() int {
	return x.s.rate
}

// Zero wipes the permutation state and any buffered squeeze output.
func (x *XOF) Zero() {
	x.s.zero()
}
