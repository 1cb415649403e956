package orientation

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerate is returned when an input vector is too close to zero
// to imply any planar angle. Callers must leave their destination value
// unchanged when they receive it.
var ErrDegenerate = errors.New("orientation: vector too close to zero to define a heading")

// zAxis is the rotation axis used for all planar quaternions.
var zAxis = r3.Vec{Z: 1}

// north3 is the reference heading lifted into 3-D space.
var north3 = r3.Vec{Y: 1}

// FromVec derives the Rotation of an arbitrary vector.
//
// The angle is truncated, not rounded, into deci-degrees, so results
// are biased up to a tenth of a degree towards the lower angle.
func FromVec(v r2.Vec) (Rotation, error) {
	if r2.Norm2(v) < epsilon*epsilon {
		return Rotation{}, ErrDegenerate
	}
	// Clockwise from north: x leads, y is the reference axis.
	return FromRadians(math.Atan2(v.X, v.Y)), nil
}

// Vec returns the unit vector pointing along r, as (sin, cos) of the
// clockwise-from-north angle. North is (0, 1), east is (1, 0).
func (r Rotation) Vec() r2.Vec {
	radians := r.Radians()
	return r2.Vec{X: math.Sin(radians), Y: math.Cos(radians)}
}

// Direction converts the rotation into a unit Direction. This always
// succeeds; every Rotation points somewhere.
func (r Rotation) Direction() Direction {
	return Direction{r.Vec()}
}

// Rotation derives the angle of the direction, failing with
// ErrDegenerate for Neutral.
func (d Direction) Rotation() (Rotation, error) {
	return FromVec(d.vec)
}

// Quat returns the rotation as a 3-D rotation about the z-axis.
//
// Headings grow clockwise while mathematical angles grow
// counterclockwise, so the axis angle is negated; rotating north3 by
// the result lands exactly on Vec().
func (r Rotation) Quat() r3.Rotation {
	return r3.NewRotation(-r.Radians(), zAxis)
}

// FromQuat derives the planar heading implied by a 3-D rotation: the
// rotated north vector is projected onto the x,y plane and converted
// with FromVec. Off-axis components of q fall away in the projection;
// a rotation pointing straight along z has no planar heading and fails
// with ErrDegenerate.
func FromQuat(q r3.Rotation) (Rotation, error) {
	heading := q.Rotate(north3)
	return FromVec(r2.Vec{X: heading.X, Y: heading.Y})
}

// Quat returns the direction as a 3-D rotation about the z-axis,
// failing with ErrDegenerate for Neutral.
func (d Direction) Quat() (r3.Rotation, error) {
	r, err := d.Rotation()
	if err != nil {
		return r3.Rotation{}, err
	}
	return r.Quat(), nil
}

// DirectionFromQuat derives the planar heading of a 3-D rotation as a
// unit Direction. Unlike FromQuat this never fails: a rotation with no
// planar component collapses to Neutral.
func DirectionFromQuat(q r3.Rotation) Direction {
	heading := q.Rotate(north3)
	return NewDirection(r2.Vec{X: heading.X, Y: heading.Y})
}

// QuatApproxEqual reports whether two 3-D rotations are equal within
// tol, component by component.
func QuatApproxEqual(a, b r3.Rotation, tol float64) bool {
	qa, qb := quat.Number(a), quat.Number(b)
	return scalar.EqualWithinAbs(qa.Real, qb.Real, tol) &&
		scalar.EqualWithinAbs(qa.Imag, qb.Imag, tol) &&
		scalar.EqualWithinAbs(qa.Jmag, qb.Jmag, tol) &&
		scalar.EqualWithinAbs(qa.Kmag, qb.Kmag, tol)
}
