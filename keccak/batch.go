package keccak

import "sync"

// lanesParallel runs n independent lane functions. For small lane
// counts the scalar loop is cheaper than goroutine setup; above that
// threshold lanes run concurrently. Every lane is an independent
// scalar Keccak invocation with no shared mutable state (§4.5), so
// this is purely a scheduling choice, not a correctness one — the
// spec's "any parallel scheduler is acceptable" (§4.5) licenses
// either path, and both must (and do) produce output bit-identical
// to calling the scalar function n times in sequence.
const parallelThreshold = 4

func lanesParallel(n int, lane func(i int)) {
	if n < parallelThreshold {
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

// ShakeX4 computes four independent SHAKE invocations, one per lane.
// outs[i] = Shake(keys[i]) for every i, bit-identical to the scalar
// path (the batched-equivalence contract of §4.1/P6).
func ShakeX4(outs [4][]byte, keys [4][]byte, rate Rate, cfg Config) {
	lanesParallel(4, func(i int) { Shake(outs[i], keys[i], rate, cfg) })
}

// ShakeX8 is ShakeX4's eight-lane counterpart, used by the x8/x64
// batched server engine (§4.5).
func ShakeX8(outs [8][]byte, keys [8][]byte, rate Rate, cfg Config) {
	lanesParallel(8, func(i int) { Shake(outs[i], keys[i], rate, cfg) })
}

// KmacX4 computes four independent KMAC invocations.
func KmacX4(outs [4][]byte, msgs, keysIn, customs [4][]byte, rate Rate, cfg Config) {
	lanesParallel(4, func(i int) { Kmac(outs[i], msgs[i], keysIn[i], customs[i], rate, cfg) })
}

// KmacX8 is KmacX4's eight-lane counterpart.
func KmacX8(outs [8][]byte, msgs, keysIn, customs [8][]byte, rate Rate, cfg Config) {
	lanesParallel(8, func(i int) { Kmac(outs[i], msgs[i], keysIn[i], customs[i], rate, cfg) })
}
