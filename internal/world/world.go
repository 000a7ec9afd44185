// Package world implements a minimal entity/component storage: an entity
// table on top of a generational handle arena (internal/handlearena), with
// per-component tables keyed by entity id.
//
// © 2025 geoscene-runtime authors. MIT License.
package world

import (
	"sort"

	"github.com/voskan/geoscene-runtime/internal/entityid"
	"github.com/voskan/geoscene-runtime/internal/handlearena"
	"github.com/voskan/geoscene-runtime/internal/temporal"
)

// World owns the entity arena and every component table. It is not safe
// for concurrent use, matching the handle arena it is built on.
//
// Component tables are keyed by the full entityid.ID (index + generation),
// not just the slot index: once an entity is despawned its index can be
// reused by a later Spawn, and keying by index alone would let a stale
// lookup resolve against the new occupant's components.
type World struct {
	entities *handlearena.Arena[struct{}]

	transforms   map[entityid.ID]Transform
	visibilities map[entityid.ID]Visibility
	timeSpans    map[entityid.ID]temporal.TimeSpan
	bounds       map[entityid.ID]Bounds
	properties   map[entityid.ID]Properties
	shapes       map[entityid.ID]Shape3D
	geometries   map[entityid.ID]VectorGeometry
}

// New constructs an empty world.
func New() *World {
	return &World{
		entities:     handlearena.New[struct{}](),
		transforms:   make(map[entityid.ID]Transform),
		visibilities: make(map[entityid.ID]Visibility),
		timeSpans:    make(map[entityid.ID]temporal.TimeSpan),
		bounds:       make(map[entityid.ID]Bounds),
		properties:   make(map[entityid.ID]Properties),
		shapes:       make(map[entityid.ID]Shape3D),
		geometries:   make(map[entityid.ID]VectorGeometry),
	}
}

// Spawn allocates a new entity with no components attached.
func (w *World) Spawn() entityid.ID {
	h := w.entities.Alloc(struct{}{})
	return entityid.New(h)
}

// Despawn frees id and drops every component attached to it. Returns false
// for an already-despawned or unknown id, leaving the world untouched.
func (w *World) Despawn(id entityid.ID) bool {
	if _, ok := w.entities.Free(id.Handle()); !ok {
		return false
	}
	delete(w.transforms, id)
	delete(w.visibilities, id)
	delete(w.timeSpans, id)
	delete(w.bounds, id)
	delete(w.properties, id)
	delete(w.shapes, id)
	delete(w.geometries, id)
	return true
}

// IsAlive reports whether id still refers to a live entity.
func (w *World) IsAlive(id entityid.ID) bool {
	return w.entities.IsValid(id.Handle())
}

// Len returns the number of currently live entities.
func (w *World) Len() int { return w.entities.Len() }

// SetTransform attaches or replaces id's Transform component.
func (w *World) SetTransform(id entityid.ID, t Transform) {
	w.transforms[id] = t
}

// Transform returns id's Transform component, if any.
func (w *World) Transform(id entityid.ID) (Transform, bool) {
	t, ok := w.transforms[id]
	return t, ok
}

// SetVisibility attaches or replaces id's Visibility component.
func (w *World) SetVisibility(id entityid.ID, v Visibility) {
	w.visibilities[id] = v
}

// Visibility returns id's Visibility component, if any.
func (w *World) Visibility(id entityid.ID) (Visibility, bool) {
	v, ok := w.visibilities[id]
	return v, ok
}

// SetTimeSpan attaches or replaces id's temporal extent, the component the
// temporal package's interval tree indexes.
func (w *World) SetTimeSpan(id entityid.ID, span temporal.TimeSpan) {
	w.timeSpans[id] = span
}

// TimeSpan returns id's TimeSpan component, if any.
func (w *World) TimeSpan(id entityid.ID) (temporal.TimeSpan, bool) {
	s, ok := w.timeSpans[id]
	return s, ok
}

// SetBounds attaches or replaces id's Bounds component.
func (w *World) SetBounds(id entityid.ID, b Bounds) {
	w.bounds[id] = b
}

// Bounds returns id's Bounds component, if any.
func (w *World) Bounds(id entityid.ID) (Bounds, bool) {
	b, ok := w.bounds[id]
	return b, ok
}

// SetProperties attaches or replaces id's Properties component.
func (w *World) SetProperties(id entityid.ID, p Properties) {
	w.properties[id] = p
}

// Properties returns id's Properties component, if any.
func (w *World) Properties(id entityid.ID) (Properties, bool) {
	p, ok := w.properties[id]
	return p, ok
}

// SetShape3D attaches or replaces id's Drawable3D shape.
func (w *World) SetShape3D(id entityid.ID, s Shape3D) {
	w.shapes[id] = s
}

// Shape3D returns id's Drawable3D shape, if any.
func (w *World) Shape3D(id entityid.ID) (Shape3D, bool) {
	s, ok := w.shapes[id]
	return s, ok
}

// SetVectorGeometry attaches or replaces id's vector geometry.
func (w *World) SetVectorGeometry(id entityid.ID, g VectorGeometry) {
	w.geometries[id] = g
}

// VectorGeometry returns id's vector geometry, if any.
func (w *World) VectorGeometry(id entityid.ID) (VectorGeometry, bool) {
	g, ok := w.geometries[id]
	return g, ok
}

// BuildIntervalTree collects every entity carrying a TimeSpan component
// into a temporal.Tree. Entities without a TimeSpan are excluded.
func (w *World) BuildIntervalTree() *temporal.Tree {
	items := make([]temporal.IntervalItem, 0, len(w.timeSpans))
	for id, span := range w.timeSpans {
		items = append(items, temporal.IntervalItem{Entity: id, Span: span})
	}
	return temporal.Build(items)
}

// QueryBounds returns every live entity whose Bounds component intersects
// query, in ascending (index, generation) order so the result is
// deterministic regardless of map iteration order.
func (w *World) QueryBounds(query Bounds) []entityid.ID {
	var hits []entityid.ID
	for id, b := range w.bounds {
		if b.Intersects(query) {
			hits = append(hits, id)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Index() != hits[j].Index() {
			return hits[i].Index() < hits[j].Index()
		}
		return hits[i].Generation() < hits[j].Generation()
	})
	return hits
}
