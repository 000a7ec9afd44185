package bytearena

import "testing"

func TestAllocBytesReturnsIndependentCopy(t *testing.T) {
	a := New()
	src := []byte{1, 2, 3}

	stored := a.AllocBytes(src)
	if len(stored) != len(src) {
		t.Fatalf("stored len = %d, want %d", len(stored), len(src))
	}
	for i, b := range src {
		if stored[i] != b {
			t.Fatalf("stored[%d] = %d, want %d", i, stored[i], b)
		}
	}

	src[0] = 0xFF
	if stored[0] == 0xFF {
		t.Fatal("expected mutating the source slice to not affect the arena's copy")
	}
}

func TestAllocBytesHandlesEmptyInput(t *testing.T) {
	a := New()
	stored := a.AllocBytes(nil)
	if len(stored) != 0 {
		t.Fatalf("expected empty allocation, got %d bytes", len(stored))
	}
}

func TestFreeDropsAllReferences(t *testing.T) {
	a := New()
	a.AllocBytes([]byte{1})
	a.AllocBytes([]byte{2, 3})

	a.Free()

	// After Free, a fresh AllocBytes should still work on the same Arena
	// value (Free resets internal state rather than leaving it unusable).
	stored := a.AllocBytes([]byte{9})
	if len(stored) != 1 || stored[0] != 9 {
		t.Fatalf("unexpected state after Free+AllocBytes: %v", stored)
	}
}
