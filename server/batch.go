package server

import (
	"sync"

	"hkds/params"
)

// batchThreshold mirrors keccak.parallelThreshold: below it the
// per-lane cost of goroutine setup outweighs the gain.
const batchThreshold = 4

func lanesParallel(n int, lane func(i int)) {
	if n < batchThreshold {
		for i := 0; i < n; i++ {
			lane(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			lane(i)
		}(i)
	}
	wg.Wait()
}

// BatchX8 holds eight independent server states processed together
// (§3 BatchState, §4.5). Each lane is an ordinary State for a
// distinct inbound packet; a shared MasterKey is the common case
// (one BDK issuing tokens to eight devices in one call) but each
// lane may carry its own.
//
// Each lane's State method still calls the scalar keccak.Shake/Kmac
// internally rather than this package collecting all 8 (or 64) lanes'
// primitive calls into one keccak.ShakeX8/KmacX8 invocation — doing so
// would mean re-deriving EDK/TOKEN/cache-stream/tag inline here,
// per-lane, instead of going through the keys package's one-call API.
// See DESIGN.md's server entry for why that restructuring is left
// undone rather than risked unverified.
type BatchX8 [8]State

// EncryptToken wraps a fresh token for every lane (§4.5). Lane i of
// the result corresponds to lane i of b.
func (b BatchX8) EncryptToken() [8][]byte {
	var out [8][]byte
	lanesParallel(8, func(i int) { out[i] = b[i].EncryptToken() })
	return out
}

// DecryptMessage decrypts one ciphertext block per lane.
func (b BatchX8) DecryptMessage(cts [8][params.MessageSize]byte) [8][params.MessageSize]byte {
	var out [8][params.MessageSize]byte
	lanesParallel(8, func(i int) { out[i] = b[i].DecryptMessage(cts[i]) })
	return out
}

// DecryptVerifyMessage verifies and decrypts one authenticated
// message per lane.
func (b BatchX8) DecryptVerifyMessage(ins [8][params.MessageSize + params.TagSize]byte, ads [8][]byte) (pts [8][params.MessageSize]byte, oks [8]bool) {
	lanesParallel(8, func(i int) { pts[i], oks[i] = b[i].DecryptVerifyMessage(ins[i], ads[i]) })
	return pts, oks
}

// BatchX64 is eight BatchX8 groups processed together (§3, §5): a
// result is yielded only after all 64 lanes have terminated, matching
// the spec's all-lanes-complete contract for the widest batch width.
type BatchX64 [8]BatchX8

// EncryptToken wraps a fresh token for every one of the 64 lanes.
func (b BatchX64) EncryptToken() [8][8][]byte {
	var out [8][8][]byte
	lanesParallel(8, func(g int) { out[g] = b[g].EncryptToken() })
	return out
}

// DecryptMessage decrypts one ciphertext block per lane, 64 total.
func (b BatchX64) DecryptMessage(cts [8][8][params.MessageSize]byte) [8][8][params.MessageSize]byte {
	var out [8][8][params.MessageSize]byte
	lanesParallel(8, func(g int) { out[g] = b[g].DecryptMessage(cts[g]) })
	return out
}

// DecryptVerifyMessage verifies and decrypts 64 authenticated
// messages, one per lane.
func (b BatchX64) DecryptVerifyMessage(ins [8][8][params.MessageSize + params.TagSize]byte, ads [8][8][]byte) (pts [8][8][params.MessageSize]byte, oks [8][8]bool) {
	lanesParallel(8, func(g int) { pts[g], oks[g] = b[g].DecryptVerifyMessage(ins[g], ads[g]) })
	return pts, oks
}
