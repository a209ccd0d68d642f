package sha256

import "testing"

func TestHashIsDeterministicHex(t *testing.T) {
	t.Parallel()

	h := New()
	first, err := h.Hash([]byte("moviefeed"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := h.Hash([]byte("moviefeed"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first != second {
		t.Fatalf("expected stable digest, got %q and %q", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}

	other, err := h.Hash([]byte("different"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if other == first {
		t.Fatal("expected different inputs to hash differently")
	}
}
