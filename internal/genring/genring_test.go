package genring

import "testing"

func TestAllocTagsActiveGeneration(t *testing.T) {
	l := New(1024)
	genID, stored := l.Alloc([]byte("hello"))
	if genID != l.Active() {
		t.Fatalf("expected alloc tagged with active generation %d, got %d", l.Active(), genID)
	}
	if string(stored) != "hello" {
		t.Fatalf("expected stored bytes to round-trip, got %q", stored)
	}
}

func TestRotationNeededTripsAtBudget(t *testing.T) {
	l := New(4)
	if l.CheckRotationNeeded() {
		t.Fatal("fresh ledger should not need rotation")
	}
	l.Alloc([]byte("12345"))
	if !l.CheckRotationNeeded() {
		t.Fatal("expected rotation needed once budget exceeded")
	}
}

func TestRetiredGenerationFreesOnlyAfterLastRelease(t *testing.T) {
	l := New(1024)
	genID, _ := l.Alloc([]byte("payload"))

	retired := l.Rotate()
	if retired != genID {
		t.Fatalf("expected rotate to retire %d, got %d", genID, retired)
	}
	if l.GenerationCount() != 2 {
		t.Fatalf("expected retired generation to remain open while live, got count %d", l.GenerationCount())
	}

	l.Release(genID)
	if l.GenerationCount() != 1 {
		t.Fatalf("expected retired generation freed after last release, got count %d", l.GenerationCount())
	}
}

func TestActiveGenerationNeverFreedWhileEmpty(t *testing.T) {
	l := New(1024)
	if l.GenerationCount() != 1 {
		t.Fatalf("expected single open generation, got %d", l.GenerationCount())
	}
}

func TestRotateWithNoLiveEntriesFreesImmediately(t *testing.T) {
	l := New(1024)
	first := l.Active()
	l.Rotate()
	if l.GenerationCount() != 1 {
		t.Fatalf("expected empty retired generation %d to free immediately, got count %d", first, l.GenerationCount())
	}
}
