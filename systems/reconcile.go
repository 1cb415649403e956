// Package systems keeps the redundant heading representations of each
// entity consistent with one another and with its 3-D transform.
package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bearing/orientation"
)

// The reconcile functions below are the whole synchronization protocol,
// factored out of the ECS so they can be driven directly by tests. Each
// takes pointers to the two stored values plus explicit "was this
// written this cycle" flags, and reports which side it wrote.
//
// Writes are guarded: a derived value is only stored when it differs
// from what is already there. Without the guard every write would mark
// the destination changed and the two representations would ping-pong
// forever, each cycle re-deriving the other side.

// ReconcileHeadingFacing syncs the angle and vector forms of a heading.
// The angle wins when both were written in the same cycle. A facing
// that has collapsed to Neutral has no angle, so it leaves the angle
// untouched.
func ReconcileHeadingFacing(angle *orientation.Rotation, facing *orientation.Direction, angleChanged, facingChanged bool) (wroteAngle, wroteFacing bool) {
	if angleChanged {
		if derived := angle.Direction(); *facing != derived {
			*facing = derived
			wroteFacing = true
		}
	} else if facingChanged {
		if derived, err := facing.Rotation(); err == nil && *angle != derived {
			*angle = derived
			wroteAngle = true
		}
	}
	return wroteAngle, wroteFacing
}

// ReconcileHeadingQuat syncs the angle with the transform's rotation
// quaternion. The angle wins when both were written in the same cycle.
// A quaternion with no planar component leaves the angle untouched.
func ReconcileHeadingQuat(angle *orientation.Rotation, q *r3.Rotation, angleChanged, quatChanged bool) (wroteAngle, wroteQuat bool) {
	if angleChanged {
		if derived := angle.Quat(); *q != derived {
			*q = derived
			wroteQuat = true
		}
	} else if quatChanged {
		if derived, err := orientation.FromQuat(*q); err == nil && *angle != derived {
			*angle = derived
			wroteAngle = true
		}
	}
	return wroteAngle, wroteQuat
}

// ReconcileFacingQuat syncs the vector heading with the transform's
// rotation quaternion. A Neutral facing never reaches the quaternion,
// but the reverse derivation cannot fail, so a changed quaternion will
// replace a Neutral facing with whatever heading it implies.
func ReconcileFacingQuat(facing *orientation.Direction, q *r3.Rotation, facingChanged, quatChanged bool) (wroteFacing, wroteQuat bool) {
	if facingChanged {
		if derived, err := facing.Quat(); err == nil && *q != derived {
			*q = derived
			wroteQuat = true
		}
	} else if quatChanged {
		if derived := orientation.DirectionFromQuat(*q); *facing != derived {
			*facing = derived
			wroteFacing = true
		}
	}
	return wroteFacing, wroteQuat
}

// ReconcilePlanarPosition syncs a 2-D position with the x,y of the
// transform's translation. The position wins when both were written in
// the same cycle. The translation's z is never touched.
func ReconcilePlanarPosition(x, y *float64, translation *r3.Vec, posChanged, tfChanged bool) (wrotePos, wroteTranslation bool) {
	if posChanged {
		if translation.X != *x {
			translation.X = *x
			wroteTranslation = true
		}
		if translation.Y != *y {
			translation.Y = *y
			wroteTranslation = true
		}
	} else if tfChanged {
		if *x != translation.X {
			*x = translation.X
			wrotePos = true
		}
		if *y != translation.Y {
			*y = translation.Y
			wrotePos = true
		}
	}
	return wrotePos, wroteTranslation
}
