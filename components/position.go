package components

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bearing/orientation"
)

// Position is an entity's 2-D world position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Vec3 lifts the position into 3-D space with z = 0, the form used by
// transform translations.
func (p Position) Vec3() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y}
}

// DirectionTo returns the unit direction from p towards other, or
// Neutral when the two positions coincide.
func (p Position) DirectionTo(other Position) orientation.Direction {
	return orientation.NewDirection(r2.Sub(other.Vec(), p.Vec()))
}

// RotationTo returns the heading from p towards other. It fails with
// ErrDegenerate when the two positions coincide.
func (p Position) RotationTo(other Position) (orientation.Rotation, error) {
	return orientation.FromVec(r2.Sub(other.Vec(), p.Vec()))
}

// DistanceTo returns the Euclidean distance between the two positions.
func (p Position) DistanceTo(other Position) float64 {
	return r2.Norm(r2.Sub(other.Vec(), p.Vec()))
}
