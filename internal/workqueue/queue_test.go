package workqueue

import (
	"testing"

	"github.com/voskan/geoscene-runtime/internal/runtime"
)

// TestQueuePriorityAndTieBreak checks that higher priority pops first and
// same-priority items pop in FIFO order.
func TestQueuePriorityAndTieBreak(t *testing.T) {
	q := New[string](0)
	q.TryPushWithCost(0, 1, "a")
	q.TryPushWithCost(1, 1, "b")
	q.TryPushWithCost(1, 1, "c")

	budget := runtime.NewFrameBudget(3)
	var order []string
	for {
		_, _, v, ok := q.PopNextWithBudget(&budget)
		if !ok {
			break
		}
		order = append(order, v)
	}

	want := []string{"b", "c", "a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if budget.RemainingUnits() != 0 {
		t.Fatalf("remaining = %d, want 0", budget.RemainingUnits())
	}
}

// TestQueueCancel checks that a cancelled item never pops.
func TestQueueCancel(t *testing.T) {
	q := New[string](0)
	id, _ := q.TryPushWithCost(0, 1, "x")
	if !q.Cancel(id) {
		t.Fatal("cancel should succeed")
	}

	budget := runtime.NewFrameBudget(10)
	if _, _, _, ok := q.PopNextWithBudget(&budget); ok {
		t.Fatal("popping after cancel should yield nothing")
	}
	if budget.RemainingUnits() != 10 {
		t.Fatalf("cancelled item must not consume budget, got %d remaining", budget.RemainingUnits())
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	q := New[string](0)
	id, _ := q.TryPushWithCost(0, 1, "x")
	if !q.Cancel(id) {
		t.Fatal("first cancel should succeed")
	}
	if q.Cancel(id) {
		t.Fatal("second cancel should be a no-op")
	}
}

func TestCancelAfterPopIsNoOp(t *testing.T) {
	q := New[string](0)
	id, _ := q.TryPushWithCost(0, 1, "x")
	budget := runtime.NewFrameBudget(10)
	if _, _, _, ok := q.PopNextWithBudget(&budget); !ok {
		t.Fatal("pop should succeed")
	}
	if q.Cancel(id) {
		t.Fatal("cancelling an already-popped id must return false")
	}
}

func TestFullRejectsPushAtCapacity(t *testing.T) {
	q := New[string](1)
	if _, err := q.TryPushWithCost(0, 1, "a"); err != nil {
		t.Fatalf("first push should succeed: %v", err)
	}
	if _, err := q.TryPushWithCost(0, 1, "b"); err != ErrFull {
		t.Fatalf("second push should fail with ErrFull, got %v", err)
	}
}

func TestCancelledItemsDoNotCountTowardLen(t *testing.T) {
	q := New[string](1)
	id, _ := q.TryPushWithCost(0, 1, "a")
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	q.Cancel(id)
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after cancel", q.Len())
	}
	// Capacity should now admit a fresh push.
	if _, err := q.TryPushWithCost(0, 1, "b"); err != nil {
		t.Fatalf("push after cancel should succeed: %v", err)
	}
}

func TestInsufficientBudgetDoesNotBypassPriority(t *testing.T) {
	q := New[string](0)
	q.TryPushWithCost(10, 5, "expensive")
	q.TryPushWithCost(1, 1, "cheap")

	budget := runtime.NewFrameBudget(1)
	// The highest-priority item cannot fit; no lower-priority item may be
	// popped in its place this frame.
	if _, _, _, ok := q.PopNextWithBudget(&budget); ok {
		t.Fatal("expected no pop: high priority item doesn't fit and must not be bypassed")
	}
	if budget.RemainingUnits() != 1 {
		t.Fatalf("remaining = %d, want 1 (untouched)", budget.RemainingUnits())
	}
}

func TestZeroCostItemConsumesNothing(t *testing.T) {
	q := New[string](0)
	q.TryPushWithCost(0, 0, "free")
	budget := runtime.NewFrameBudget(0)
	_, _, v, ok := q.PopNextWithBudget(&budget)
	if !ok || v != "free" {
		t.Fatalf("expected to pop zero-cost item even with empty budget, got %v %v", v, ok)
	}
}

func TestMinPriorityStillPopsBeforeEmptiness(t *testing.T) {
	q := New[string](0)
	q.TryPushWithCost(-2147483648, 1, "lowest")
	budget := runtime.NewFrameBudget(1)
	_, prio, v, ok := q.PopNextWithBudget(&budget)
	if !ok || v != "lowest" || prio != -2147483648 {
		t.Fatalf("got %v %v %v", prio, v, ok)
	}
}
