package security

import (
	"strings"
	"testing"
)

func testParams() Argon2Params {
	p := DefaultArgon2Params()
	// Keep the memory cost down so the suite stays fast.
	p.Memory = 16 * 1024
	return p
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewArgon2Hasher(testParams())

	encoded, err := h.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("encoded = %q, want argon2id PHC string", encoded)
	}
	if !h.Verify("correct-horse-battery", encoded) {
		t.Error("correct password should verify")
	}
	if h.Verify("wrong-password", encoded) {
		t.Error("wrong password should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewArgon2Hasher(testParams())
	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	h := NewArgon2Hasher(testParams())
	for _, encoded := range []string{"", "not-a-hash", "$argon2id$v=19$m=16384,t=3,p=2$bad"} {
		if h.Verify("anything", encoded) {
			t.Errorf("malformed hash %q should not verify", encoded)
		}
	}
}
