package runtime

import "testing"

func TestEventBusRecordsEventsWithFrameIndex(t *testing.T) {
	bus := NewEventBus()
	f := NewFrame(2, 0.1)
	bus.Emit(f, "test", "hello")

	events := bus.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].FrameIndex != 2 {
		t.Fatalf("FrameIndex = %d, want 2", events[0].FrameIndex)
	}
}

func TestEventBusDrainClearsEvents(t *testing.T) {
	bus := NewEventBus()
	bus.Emit(NewFrame(0, 1.0), "k", "m")

	drained := bus.Drain()
	if len(drained) != 1 {
		t.Fatalf("len(drained) = %d, want 1", len(drained))
	}
	if len(bus.Events()) != 0 {
		t.Fatal("events should be empty after drain")
	}
}
