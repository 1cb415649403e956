package orientation

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// epsilon is the smallest vector component magnitude considered
// meaningful when deriving an angle. Inputs whose squared length falls
// below epsilon² have no defined heading. The cutoff sits well above
// the float64 round-off left behind when a purely out-of-plane
// rotation is projected onto the plane (components around 1e-16), so
// such projections land on the degenerate side instead of implying a
// spurious heading.
const epsilon = 1e-8

// invSqrt2 is the unit component of the diagonal directions.
const invSqrt2 = math.Sqrt2 / 2

// Direction is a unit 2-D heading vector.
//
// Its magnitude is always either one or exactly zero; the zero value is
// Neutral, the direction that does not point anywhere.
type Direction struct {
	vec r2.Vec
}

// Neutral is the direction with no heading. It is the only
// constructable Direction whose magnitude is not 1.
var Neutral = Direction{}

// Unit direction constants, matching the Rotation compass points.
var (
	DirNorth     = Direction{r2.Vec{X: 0, Y: 1}}
	DirNorthEast = Direction{r2.Vec{X: invSqrt2, Y: invSqrt2}}
	DirEast      = Direction{r2.Vec{X: 1, Y: 0}}
	DirSouthEast = Direction{r2.Vec{X: invSqrt2, Y: -invSqrt2}}
	DirSouth     = Direction{r2.Vec{X: 0, Y: -1}}
	DirSouthWest = Direction{r2.Vec{X: -invSqrt2, Y: -invSqrt2}}
	DirWest      = Direction{r2.Vec{X: -1, Y: 0}}
	DirNorthWest = Direction{r2.Vec{X: -invSqrt2, Y: invSqrt2}}
)

// NewDirection creates a Direction from an arbitrary vector. The vector
// is normalized; near-zero input collapses to Neutral rather than
// failing.
func NewDirection(v r2.Vec) Direction {
	return Direction{normalizeOrZero(v)}
}

// Vec returns the underlying unit vector. It has magnitude 1 unless the
// direction is Neutral.
func (d Direction) Vec() r2.Vec {
	return d.vec
}

// IsNeutral reports whether the direction does not point anywhere.
func (d Direction) IsNeutral() bool {
	return d == Neutral
}

// Add combines the two headings and renormalizes. Exactly opposing
// directions cancel out and collapse to Neutral.
func (d Direction) Add(other Direction) Direction {
	return Direction{normalizeOrZero(r2.Add(d.vec, other.vec))}
}

// Sub removes other from d and renormalizes, collapsing to Neutral when
// the difference vanishes.
func (d Direction) Sub(other Direction) Direction {
	return Direction{normalizeOrZero(r2.Sub(d.vec, other.vec))}
}

// Neg returns the opposite direction. Neutral stays Neutral.
func (d Direction) Neg() Direction {
	return Direction{r2.Scale(-1, d.vec)}
}

// Scale stretches the heading to the given length, returning a plain
// vector. The result is for positioning and physics, not further
// heading math, so it is deliberately not re-wrapped as a Direction.
func (d Direction) Scale(length float64) r2.Vec {
	return r2.Scale(length, d.vec)
}

// Distance returns the angular distance between the two headings, with
// Rotation.Distance semantics. It fails with ErrDegenerate when either
// side is Neutral, since no angle is defined there.
func (d Direction) Distance(other Direction) (Rotation, error) {
	a, err := d.Rotation()
	if err != nil {
		return Rotation{}, err
	}
	b, err := other.Rotation()
	if err != nil {
		return Rotation{}, err
	}
	return a.Distance(b), nil
}

// normalizeOrZero scales v to unit length, or returns the zero vector
// when v is too small to normalize meaningfully.
func normalizeOrZero(v r2.Vec) r2.Vec {
	n2 := r2.Norm2(v)
	if n2 < epsilon*epsilon {
		return r2.Vec{}
	}
	return r2.Scale(1/math.Sqrt(n2), v)
}
