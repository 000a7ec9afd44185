// Package runtime implements the deterministic per-frame scheduling core:
// frame budgeting, jobs, an event bus, a stable-ordered scheduler, and
// sorted-snapshot metrics. All state here is single-threaded per frame —
// callers own the concurrency model around a Scheduler, not this package.
//
// © 2025 geoscene-runtime authors. MIT License.
package runtime

import "math"

// FrameBudget is an abstract work-unit meter consumed cooperatively by
// pop-loops. Time-slicing is expressed solely in these units, never in
// wall-clock time.
type FrameBudget struct {
	remainingUnits uint32
}

// NewFrameBudget constructs a budget with the given number of units.
func NewFrameBudget(units uint32) FrameBudget {
	return FrameBudget{remainingUnits: units}
}

// UnlimitedBudget returns a practically-unbounded (but still deterministic)
// budget.
func UnlimitedBudget() FrameBudget {
	return FrameBudget{remainingUnits: math.MaxUint32}
}

// RemainingUnits returns the units left in the budget.
func (b *FrameBudget) RemainingUnits() uint32 { return b.remainingUnits }

// IsExhausted reports whether the budget has zero units remaining.
func (b *FrameBudget) IsExhausted() bool { return b.remainingUnits == 0 }

// CanConsume reports whether units currently fit in the budget, without
// mutating it.
func (b *FrameBudget) CanConsume(units uint32) bool { return b.remainingUnits >= units }

// TryConsume atomically subtracts units from the budget. It either succeeds
// and subtracts exactly units, or leaves the budget untouched and returns
// false.
func (b *FrameBudget) TryConsume(units uint32) bool {
	if b.remainingUnits < units {
		return false
	}
	b.remainingUnits -= units
	return true
}
