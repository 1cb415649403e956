package systems

import "github.com/mlange-42/ark/ecs"

// Field identifies one syncable component slot on an entity.
type Field uint8

const (
	// FieldHeading is the discretized angle component.
	FieldHeading Field = iota
	// FieldFacing is the unit-vector component.
	FieldFacing
	// FieldTransform is the embedding environment's 3-D transform.
	FieldTransform
	// FieldPosition is the 2-D world position.
	FieldPosition

	fieldCount
)

// String returns the field's name.
func (f Field) String() string {
	switch f {
	case FieldHeading:
		return "heading"
	case FieldFacing:
		return "facing"
	case FieldTransform:
		return "transform"
	case FieldPosition:
		return "position"
	}
	return "unknown"
}

// ChangeTracker records which component fields were written since the
// start of the current cycle.
//
// Whoever writes a tracked field marks it, including the sync systems
// themselves: marks made during the orientation phase are how the
// transform phase learns about derived values. The tracker is reset by
// the host once per cycle, after both phases have run, never by the
// systems.
type ChangeTracker struct {
	marks [fieldCount]map[ecs.Entity]struct{}
}

// NewChangeTracker creates an empty tracker.
func NewChangeTracker() *ChangeTracker {
	t := &ChangeTracker{}
	for i := range t.marks {
		t.marks[i] = make(map[ecs.Entity]struct{})
	}
	return t
}

// Mark records that the entity's field was written this cycle.
func (t *ChangeTracker) Mark(e ecs.Entity, f Field) {
	t.marks[f][e] = struct{}{}
}

// Changed reports whether the entity's field was written this cycle.
func (t *ChangeTracker) Changed(e ecs.Entity, f Field) bool {
	_, ok := t.marks[f][e]
	return ok
}

// Forget drops all marks for an entity. Call on despawn.
func (t *ChangeTracker) Forget(e ecs.Entity) {
	for i := range t.marks {
		delete(t.marks[i], e)
	}
}

// Reset clears all marks. The host calls this once per cycle after the
// sync phases have run.
func (t *ChangeTracker) Reset() {
	for i := range t.marks {
		clear(t.marks[i])
	}
}
