package keccak

import (
	"bytes"
	"testing"
)

func TestKmacDeterministic(t *testing.T) {
	msg := []byte("authenticate this body")
	key := []byte("0123456789abcdef")
	custom := []byte("customization")

	a := make([]byte, 16)
	b := make([]byte, 16)
	Kmac(a, msg, key, custom, Rate256, DefaultConfig)
	Kmac(b, msg, key, custom, Rate256, DefaultConfig)

	if !bytes.Equal(a, b) {
		t.Fatalf("Kmac is not deterministic for identical inputs")
	}
}

func TestKmacSensitiveToEveryInput(t *testing.T) {
	msg := []byte("authenticate this body")
	key := []byte("0123456789abcdef")
	custom := []byte("customization")
	base := make([]byte, 16)
	Kmac(base, msg, key, custom, Rate256, DefaultConfig)

	variants := []struct {
		name              string
		msg, key, custom  []byte
	}{
		{"msg", []byte("authenticate this bodY"), key, custom},
		{"key", msg, []byte("0123456789abcdeF"), custom},
		{"custom", msg, key, []byte("customizatioN")},
	}

	for _, v := range variants {
		out := make([]byte, 16)
		Kmac(out, v.msg, v.key, v.custom, Rate256, DefaultConfig)
		if bytes.Equal(out, base) {
			t.Fatalf("changing %s did not change KMAC output", v.name)
		}
	}
}

func TestKmacOutputLengthIsBoundIntoTag(t *testing.T) {
	msg := []byte("msg")
	key := []byte("key")
	custom := []byte("custom")

	short := make([]byte, 16)
	Kmac(short, msg, key, custom, Rate256, DefaultConfig)

	long := make([]byte, 32)
	Kmac(long, msg, key, custom, Rate256, DefaultConfig)

	if bytes.Equal(short, long[:16]) {
		t.Fatalf("KMAC output should depend on requested length (right_encode(L) is part of the input), got a simple truncation")
	}
}
