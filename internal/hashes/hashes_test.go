package hashes

import (
	"crypto/sha256"
	"testing"
)

func TestSha256dMatchesDoubleSha256(t *testing.T) {
	input := []byte("chainrecon")
	first := sha256.Sum256(input)
	second := sha256.Sum256(first[:])

	got := Sha256d(input)
	if got != second {
		t.Fatalf("Sha256d result does not match manual double-sha256")
	}
}

func TestSha256dDeterministic(t *testing.T) {
	input := []byte{1, 2, 3}
	if Sha256d(input) != Sha256d(input) {
		t.Fatal("Sha256d is not deterministic")
	}
}

func TestQuarkDiffersFromSha256d(t *testing.T) {
	input := []byte("header bytes")
	if Quark(input) == Sha256d(input) {
		t.Fatal("Quark stand-in collapsed to a plain Sha256d")
	}
}

func TestHash160Length(t *testing.T) {
	h := Hash160([]byte("a pubkey"))
	if len(h) != 20 {
		t.Fatalf("Hash160 length = %d, want 20", len(h))
	}
}

func TestHash160Deterministic(t *testing.T) {
	input := []byte{9, 9, 9}
	if Hash160(input) != Hash160(input) {
		t.Fatal("Hash160 is not deterministic")
	}
}
