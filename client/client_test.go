package client

import (
	"testing"

	"hkds/keys"
	"hkds/params"
)

func ramp(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func testDID(mode byte, suffix byte) keys.DeviceID {
	var d keys.DeviceID
	copy(d[:], []byte{0x01, 0x00, 0x00, 0x00, 0x10, mode, 0x01, 0x00, 0x01, 0x00, 0x00, suffix})
	return d
}

// newProvisioned builds a client state with a freshly wrapped token
// already installed, mirroring what server.State.EncryptToken +
// client.InstallToken would do across the wire.
func newProvisioned(t *testing.T, level params.Level, bdk, stk []byte, did keys.DeviceID) *State {
	t.Helper()
	ksn := keys.NewKSN(did)
	cacheSize := level.CacheSize(params.DefaultCacheMultiplier)

	edk := keys.GenerateEDK(did, bdk, level)
	ctok := keys.BuildCTOK(ksn, level, cacheSize)
	tms := keys.BuildTMS(ksn, level)
	token := keys.DeriveToken(ctok[:], stk, level)
	etok := keys.WrapToken(token, ctok[:], edk, tms, level)

	s, err := New(level, params.DefaultCacheMultiplier, edk, did)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.InstallToken(etok); err != nil {
		t.Fatalf("InstallToken: %v", err)
	}
	return s
}

func TestEncryptThenManualDecryptRoundTrips(t *testing.T) {
	bdk := ramp(32)
	stk := ramp(32)
	did := testDID(0x0A, 0x01)
	level := params.Level256

	s := newProvisioned(t, level, bdk, stk, did)

	var pt [params.MessageSize]byte
	copy(pt[:], ramp(16))

	ct, err := s.Encrypt(pt)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	// Recompute the same key stream independently (what the server
	// engine does via RegenerateSlotStream) and check the XOR inverts.
	edk := keys.GenerateEDK(did, bdk, level)
	ksn := keys.NewKSN(did)
	cacheSize := level.CacheSize(params.DefaultCacheMultiplier)
	ctok := keys.BuildCTOK(ksn, level, cacheSize)
	token := keys.DeriveToken(ctok[:], stk, level)
	stream := keys.GenerateCacheStream(token, edk, cacheSize, level)

	var recovered [params.MessageSize]byte
	for i := range recovered {
		recovered[i] = ct[i] ^ stream[i]
	}
	if recovered != pt {
		t.Fatalf("round trip failed: got %x want %x", recovered, pt)
	}
}

func TestEncryptAdvancesCounterByOne(t *testing.T) {
	s := newProvisioned(t, params.Level256, ramp(32), ramp(32), testDID(0x0A, 0x02))
	before := s.KSN().TKC()

	var pt [params.MessageSize]byte
	if _, err := s.Encrypt(pt); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if s.KSN().TKC() != before+1 {
		t.Fatalf("expected counter to advance by 1, got delta %d", s.KSN().TKC()-before)
	}
}

func TestEncryptAuthenticateAdvancesCounterByTwo(t *testing.T) {
	s := newProvisioned(t, params.Level256, ramp(32), ramp(32), testDID(0x0A, 0x03))
	before := s.KSN().TKC()

	var pt [params.MessageSize]byte
	if _, err := s.EncryptAuthenticate(pt, []byte("ad")); err != nil {
		t.Fatalf("EncryptAuthenticate: %v", err)
	}
	if s.KSN().TKC() != before+2 {
		t.Fatalf("expected counter to advance by 2, got delta %d", s.KSN().TKC()-before)
	}
}

func TestConsumedSlotIsZeroed(t *testing.T) {
	s := newProvisioned(t, params.Level256, ramp(32), ramp(32), testDID(0x0A, 0x04))

	var pt [params.MessageSize]byte
	if _, err := s.Encrypt(pt); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	var zero [params.MessageSize]byte
	if s.cache[0] != zero {
		t.Fatalf("consumed cache slot was not zeroized")
	}
}

func TestCacheExhaustionReturnsError(t *testing.T) {
	s := newProvisioned(t, params.Level256, ramp(32), ramp(32), testDID(0x0A, 0x05))
	cacheSize := s.cacheSize()

	var pt [params.MessageSize]byte
	for i := 0; i < cacheSize; i++ {
		if _, err := s.Encrypt(pt); err != nil {
			t.Fatalf("Encrypt #%d: unexpected error %v", i, err)
		}
	}
	if !s.CacheEmpty() {
		t.Fatalf("expected cache to report empty after draining CACHE slots")
	}
	if _, err := s.Encrypt(pt); err != params.ErrCacheExhausted {
		t.Fatalf("expected ErrCacheExhausted, got %v", err)
	}
}

func TestEncryptAuthenticateOverflowLeavesStateUntouched(t *testing.T) {
	s := newProvisioned(t, params.Level256, ramp(32), ramp(32), testDID(0x0A, 0x08))
	s.ksn.SetTKC(0xFFFFFFFE)
	cacheBefore := s.cache[0]

	var pt [params.MessageSize]byte
	if _, err := s.EncryptAuthenticate(pt, []byte("ad")); err != params.ErrCounterOverflow {
		t.Fatalf("expected ErrCounterOverflow, got %v", err)
	}
	if s.KSN().TKC() != 0xFFFFFFFE {
		t.Fatalf("counter must not advance on overflow, got %d", s.KSN().TKC())
	}
	if s.cache[0] != cacheBefore {
		t.Fatalf("cache slot must not be consumed when the overflow check fails")
	}
	if s.CacheEmpty() {
		t.Fatalf("cache_empty must not flip on a failed EncryptAuthenticate")
	}
}

func TestInstallTokenRejectsTamperedETOK(t *testing.T) {
	bdk := ramp(32)
	stk := ramp(32)
	did := testDID(0x0A, 0x06)
	level := params.Level256

	ksn := keys.NewKSN(did)
	cacheSize := level.CacheSize(params.DefaultCacheMultiplier)
	edk := keys.GenerateEDK(did, bdk, level)
	ctok := keys.BuildCTOK(ksn, level, cacheSize)
	tms := keys.BuildTMS(ksn, level)
	token := keys.DeriveToken(ctok[:], stk, level)
	etok := keys.WrapToken(token, ctok[:], edk, tms, level)
	etok[len(etok)-1] ^= 0x01

	s, err := New(level, params.DefaultCacheMultiplier, edk, did)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.InstallToken(etok); err != params.ErrAuthFailure {
		t.Fatalf("expected ErrAuthFailure, got %v", err)
	}
	if !s.CacheEmpty() {
		t.Fatalf("cache should remain empty after a failed token install")
	}
}

func TestEncryptAuthenticateBoundarySpareSlot(t *testing.T) {
	bdk := ramp(32)
	stk := ramp(32)
	did := testDID(0x0A, 0x07)
	level := params.Level256

	s := newProvisioned(t, level, bdk, stk, did)
	cacheSize := s.cacheSize()

	var pt [params.MessageSize]byte
	// drain the cache down to exactly one ordinary slot remaining
	for i := 0; i < cacheSize-1; i++ {
		if _, err := s.Encrypt(pt); err != nil {
			t.Fatalf("Encrypt #%d: %v", i, err)
		}
	}
	if s.CacheEmpty() {
		t.Fatalf("cache reported empty one slot early")
	}

	if _, err := s.EncryptAuthenticate(pt, []byte("ad")); err != nil {
		t.Fatalf("EncryptAuthenticate at boundary: %v", err)
	}
	if !s.CacheEmpty() {
		t.Fatalf("cache should be empty after consuming the final ordinary slot")
	}
}
