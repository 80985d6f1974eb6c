package keys

import (
	"bytes"
	"encoding/hex"
	"testing"

	"hkds/params"
)

func hexDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return b
}

func ramp(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// s1DID reconstructs the literal DID from the spec's KAT scenarios:
// 01 00 00 00 10 0A 01 00 01 00 00 00, with MODE varied per level.
func s1DID(mode byte) DeviceID {
	var d DeviceID
	copy(d[:], []byte{0x01, 0x00, 0x00, 0x00, 0x10, mode, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00})
	return d
}

func TestS1Shake256TokenAndCacheKAT(t *testing.T) {
	bdk := ramp(32)
	stk := ramp(32)
	did := s1DID(0x0A)
	level := params.Level256

	ksn := NewKSN(did)
	cacheSize := level.CacheSize(params.DefaultCacheMultiplier)

	edk := GenerateEDK(did, bdk, level)
	ctok := BuildCTOK(ksn, level, cacheSize)
	tms := BuildTMS(ksn, level)
	token := DeriveToken(ctok[:], stk, level)
	etok := WrapToken(token, ctok[:], edk, tms, level)

	wantETOK := hexDecode(t, "8F576DA2168C4582CE02F0E75665FCFD720131C3AB78DE46B7BD1F059AFBCC7DA83CF9F67FB17E3C3FB888F00A16AD2F")
	if !bytes.Equal(etok, wantETOK) {
		t.Fatalf("ETOK mismatch:\n got  %X\n want %X", etok, wantETOK)
	}

	gotToken, ok := UnwrapToken(etok, ctok[:], edk, tms, level)
	if !ok {
		t.Fatalf("UnwrapToken rejected a token this same call just wrapped")
	}
	if !bytes.Equal(gotToken, token) {
		t.Fatalf("unwrapped token does not match the wrapped one")
	}

	stream := GenerateCacheStream(token, edk, cacheSize, level)
	pt := ramp(16)
	ct := make([]byte, 16)
	for i := range ct {
		ct[i] = stream[i] ^ pt[i]
	}
	wantCT := hexDecode(t, "4422FD14DC32CF52765227782B7DF346")
	if !bytes.Equal(ct, wantCT) {
		t.Fatalf("first transaction key ciphertext mismatch:\n got  %X\n want %X", ct, wantCT)
	}
}

func TestS2Shake128TokenKAT(t *testing.T) {
	bdk := ramp(16)
	stk := ramp(16)
	did := s1DID(0x09)
	level := params.Level128

	ksn := NewKSN(did)
	cacheSize := level.CacheSize(params.DefaultCacheMultiplier)

	edk := GenerateEDK(did, bdk, level)
	ctok := BuildCTOK(ksn, level, cacheSize)
	tms := BuildTMS(ksn, level)
	token := DeriveToken(ctok[:], stk, level)
	etok := WrapToken(token, ctok[:], edk, tms, level)

	wantETOK := hexDecode(t, "EB519BE85D80BA42CD231AFD760AC67B238CC46114C28D75F6CBAB17D15F77CA")
	if !bytes.Equal(etok, wantETOK) {
		t.Fatalf("ETOK mismatch:\n got  %X\n want %X", etok, wantETOK)
	}

	stream := GenerateCacheStream(token, edk, cacheSize, level)
	pt := ramp(16)
	ct := make([]byte, 16)
	for i := range ct {
		ct[i] = stream[i] ^ pt[i]
	}
	wantCT := hexDecode(t, "21EDC540F713649F38EDB3CB9E26336E")
	if !bytes.Equal(ct, wantCT) {
		t.Fatalf("ciphertext mismatch:\n got  %X\n want %X", ct, wantCT)
	}
}

func TestUnwrapTokenRejectsTamperedTag(t *testing.T) {
	bdk := ramp(32)
	stk := ramp(32)
	did := s1DID(0x0A)
	level := params.Level256

	ksn := NewKSN(did)
	cacheSize := level.CacheSize(params.DefaultCacheMultiplier)
	edk := GenerateEDK(did, bdk, level)
	ctok := BuildCTOK(ksn, level, cacheSize)
	tms := BuildTMS(ksn, level)
	token := DeriveToken(ctok[:], stk, level)
	etok := WrapToken(token, ctok[:], edk, tms, level)

	etok[len(etok)-1] ^= 0x01
	if _, ok := UnwrapToken(etok, ctok[:], edk, tms, level); ok {
		t.Fatalf("UnwrapToken accepted a tampered tag")
	}
}

func TestGenerateEDKVariesWithDID(t *testing.T) {
	bdk := ramp(32)
	didA := s1DID(0x0A)
	didB := s1DID(0x0A)
	didB[11] = 0x99

	edkA := GenerateEDK(didA, bdk, params.Level256)
	edkB := GenerateEDK(didB, bdk, params.Level256)
	if bytes.Equal(edkA, edkB) {
		t.Fatalf("distinct DIDs under the same BDK produced identical EDKs")
	}
}

func TestRegenerateSlotStreamMatchesGenerateCacheStreamPrefix(t *testing.T) {
	token := ramp(32)
	edk := make([]byte, 32)
	for i := range edk {
		edk[i] = byte(0xFF - i)
	}
	level := params.Level256
	cacheSize := level.CacheSize(params.DefaultCacheMultiplier)

	full := GenerateCacheStream(token, edk, cacheSize, level)

	for _, idx := range []int{0, 1, cacheSize/2, cacheSize - 1} {
		got := RegenerateSlotStream(token, edk, level, idx)
		want := full[:(idx+1)*params.MessageSize]
		if !bytes.Equal(got[:len(want)], want) {
			t.Fatalf("RegenerateSlotStream(%d) diverged from GenerateCacheStream's prefix", idx)
		}
	}
}
