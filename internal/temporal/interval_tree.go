// Package temporal implements a centered interval tree used for bounded
// time-at and time-overlap queries over entity time spans. Builds
// and queries are deterministic regardless of input permutation, using the
// canonical float order from stablefloat throughout.
//
// © 2025 geoscene-runtime authors. MIT License.
package temporal

import (
	"math"
	"sort"

	"github.com/voskan/geoscene-runtime/internal/entityid"
	"github.com/voskan/geoscene-runtime/internal/stablefloat"
)

// TimeSpan is an inclusive [Start, End] interval expressed in seconds.
type TimeSpan struct {
	Start float64
	End   float64
}

// Duration returns End - Start, clamped to 0.
func (s TimeSpan) Duration() float64 {
	d := s.End - s.Start
	if d < 0 {
		return 0
	}
	return d
}

// Forever returns a span covering all time.
func Forever() TimeSpan {
	return TimeSpan{Start: math.Inf(-1), End: math.Inf(1)}
}

// Instant returns a zero-length span at t.
func Instant(t float64) TimeSpan { return TimeSpan{Start: t, End: t} }

// IntervalItem is one entity's time span to be indexed.
type IntervalItem struct {
	Entity entityid.ID
	Span   TimeSpan
}

type node struct {
	center float64
	items  []IntervalItem
	left   *node
	right  *node
}

// Tree is a deterministic interval tree over IntervalItems.
type Tree struct {
	root *node
}

// Build constructs a Tree from items. The result is independent of the
// input order: any permutation of the same items produces byte-identical
// query results.
func Build(items []IntervalItem) *Tree {
	if len(items) == 0 {
		return &Tree{}
	}
	cp := make([]IntervalItem, len(items))
	copy(cp, items)
	return &Tree{root: buildNode(cp)}
}

// IsEmpty reports whether the tree has no items.
func (t *Tree) IsEmpty() bool { return t.root == nil }

func buildNode(items []IntervalItem) *node {
	center := chooseCenter(items)

	var left, right, here []IntervalItem
	for _, item := range items {
		switch {
		case item.Span.End < center:
			left = append(left, item)
		case item.Span.Start > center:
			right = append(right, item)
		default:
			here = append(here, item)
		}
	}

	sort.Slice(here, func(i, j int) bool {
		a, b := here[i], here[j]
		if c := stablefloat.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c < 0
		}
		if c := stablefloat.Compare(a.Span.End, b.Span.End); c != 0 {
			return c < 0
		}
		return a.Entity.Index() < b.Entity.Index()
	})

	n := &node{center: center, items: here}
	if len(left) > 0 {
		n.left = buildNode(left)
	}
	if len(right) > 0 {
		n.right = buildNode(right)
	}
	return n
}

func chooseCenter(items []IntervalItem) float64 {
	endpoints := make([]float64, 0, len(items)*2)
	for _, item := range items {
		endpoints = append(endpoints, item.Span.Start, item.Span.End)
	}
	sort.Slice(endpoints, func(i, j int) bool { return stablefloat.Less(endpoints[i], endpoints[j]) })
	return endpoints[len(endpoints)/2]
}

func containsTime(span TimeSpan, t float64) bool {
	return t >= span.Start && t <= span.End
}

func overlaps(a, b TimeSpan) bool {
	return !(a.End < b.Start || a.Start > b.End)
}

// QueryAtTime returns every entity whose span contains t, sorted ascending
// by entity index with duplicates removed.
func (t *Tree) QueryAtTime(time float64) []entityid.ID {
	if t.root == nil {
		return nil
	}
	var hits []entityid.ID
	queryTime(t.root, time, &hits)
	return sortDedup(hits)
}

func queryTime(n *node, time float64, out *[]entityid.ID) {
	for _, item := range n.items {
		if containsTime(item.Span, time) {
			*out = append(*out, item.Entity)
		}
	}
	if time < n.center {
		if n.left != nil {
			queryTime(n.left, time, out)
		}
	} else if n.right != nil {
		queryTime(n.right, time, out)
	}
}

// QueryOverlaps returns every entity whose span intersects span, sorted
// ascending by entity index with duplicates removed.
func (t *Tree) QueryOverlaps(span TimeSpan) []entityid.ID {
	if t.root == nil {
		return nil
	}
	var hits []entityid.ID
	queryOverlaps(t.root, span, &hits)
	return sortDedup(hits)
}

func queryOverlaps(n *node, span TimeSpan, out *[]entityid.ID) {
	for _, item := range n.items {
		if overlaps(item.Span, span) {
			*out = append(*out, item.Entity)
		}
	}
	if span.Start < n.center && n.left != nil {
		queryOverlaps(n.left, span, out)
	}
	if span.End > n.center && n.right != nil {
		queryOverlaps(n.right, span, out)
	}
}

func sortDedup(hits []entityid.ID) []entityid.ID {
	sort.Slice(hits, func(i, j int) bool { return hits[i].Index() < hits[j].Index() })
	out := hits[:0]
	var last entityid.ID
	haveLast := false
	for _, h := range hits {
		if haveLast && h.Index() == last.Index() {
			continue
		}
		out = append(out, h)
		last = h
		haveLast = true
	}
	return out
}
