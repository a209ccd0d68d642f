package uuid

import "testing"

func TestNewIDReturnsUniqueUUIDs(t *testing.T) {
	t.Parallel()

	g := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := g.NewID()
		if err != nil {
			t.Fatalf("NewID() error = %v", err)
		}
		if len(id) != 36 {
			t.Fatalf("expected canonical uuid length, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
