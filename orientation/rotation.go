// Package orientation provides discretized 2-D headings and their
// conversions between angle, unit-vector and quaternion form.
package orientation

import "math"

// FullCircle is the number of deci-degrees that make up a full circle.
const FullCircle uint16 = 3600

// Rotation is a discretized 2-D heading, stored as normalized tenths of
// a degree measured clockwise from north (x=0, y=1).
//
// Because the representation is integral, rotations can be added and
// reversed repeatedly without accumulating floating point error.
type Rotation struct {
	deciDegrees uint16
}

// Compass rose constants.
var (
	// North points straight up.
	North = Rotation{0}
	// NorthEast points halfway between up and right.
	NorthEast = Rotation{450}
	// East points straight right.
	East = Rotation{900}
	// SouthEast points halfway between down and right.
	SouthEast = Rotation{1350}
	// South points straight down.
	South = Rotation{1800}
	// SouthWest points halfway between down and left.
	SouthWest = Rotation{2250}
	// West points straight left.
	West = Rotation{2700}
	// NorthWest points halfway between left and up.
	NorthWest = Rotation{3150}
)

// New creates a Rotation from a whole number of deci-degrees, measured
// clockwise from north. Values are wrapped into [0, FullCircle).
func New(deciDegrees uint16) Rotation {
	return Rotation{deciDegrees % FullCircle}
}

// DeciDegrees returns the normalized raw value in [0, FullCircle).
func (r Rotation) DeciDegrees() uint16 {
	return r.deciDegrees
}

// Distance returns the absolute difference between r and other, as a
// Rotation.
//
// This is the plain difference of the two stored values, not the
// shortest arc around the circle: Distance(10°, 350°) is 340°, not 20°.
// TurnTo's half-circle threshold is defined in terms of this.
func (r Rotation) Distance(other Rotation) Rotation {
	if r.deciDegrees >= other.deciDegrees {
		return Rotation{r.deciDegrees - other.deciDegrees}
	}
	return Rotation{other.deciDegrees - r.deciDegrees}
}

// Add returns the sum of the two rotations, wrapped.
func (r Rotation) Add(other Rotation) Rotation {
	return New(r.deciDegrees + other.deciDegrees)
}

// Sub returns the difference of the two rotations, wrapped.
func (r Rotation) Sub(other Rotation) Rotation {
	if r.deciDegrees >= other.deciDegrees {
		return New(r.deciDegrees - other.deciDegrees)
	}
	// Borrow a full circle so the unsigned subtraction cannot underflow.
	return New(r.deciDegrees + FullCircle - other.deciDegrees)
}

// Neg returns the rotation mirrored across north.
func (r Rotation) Neg() Rotation {
	return New(FullCircle - r.deciDegrees)
}

// Mul scales the rotation by k.
//
// The scaling happens in floating point degrees, so unlike Add and Sub
// it is not exact under repeated application.
func (r Rotation) Mul(k float64) Rotation {
	return FromDegrees(r.Degrees() * k)
}

// Turn is the sense in which a rotation advances around the circle.
type Turn uint8

const (
	// CounterClockwise decreases the stored angle.
	CounterClockwise Turn = iota
	// Clockwise increases the stored angle.
	Clockwise
)

// String returns a readable name for the turn sense.
func (t Turn) String() string {
	if t == Clockwise {
		return "clockwise"
	}
	return "counterclockwise"
}

// TurnTo returns the sense in which r should advance to reach target.
// A distance of exactly half a circle resolves to CounterClockwise.
func (r Rotation) TurnTo(target Rotation) Turn {
	if r.Distance(target).deciDegrees > FullCircle/2 {
		return Clockwise
	}
	return CounterClockwise
}

// RotateTowards advances r towards target by at most maxStep. When the
// remaining distance is within maxStep the target is returned directly,
// so a steering loop settles instead of oscillating around it.
func (r Rotation) RotateTowards(target, maxStep Rotation) Rotation {
	if r.Distance(target).deciDegrees <= maxStep.deciDegrees {
		return target
	}
	if r.TurnTo(target) == Clockwise {
		return r.Add(maxStep)
	}
	return r.Sub(maxStep)
}

// FromDegrees creates a Rotation from degrees measured clockwise from
// north. Out-of-range inputs are reduced by Euclidean remainder, so
// negative angles map onto their positive equivalents (-90° -> 270°).
func FromDegrees(degrees float64) Rotation {
	return New(uint16(euclidMod(degrees, 360) * 10))
}

// Degrees returns the rotation in degrees, clockwise from north.
func (r Rotation) Degrees() float64 {
	return float64(r.deciDegrees) / 10
}

// FromRadians creates a Rotation from radians measured clockwise from
// north, reduced by Euclidean remainder like FromDegrees.
func FromRadians(radians float64) Rotation {
	return New(uint16(euclidMod(radians, 2*math.Pi) * float64(FullCircle) / (2 * math.Pi)))
}

// Radians returns the rotation in radians, clockwise from north.
func (r Rotation) Radians() float64 {
	return float64(r.deciDegrees) * 2 * math.Pi / float64(FullCircle)
}

// euclidMod returns x reduced modulo m into [0, m).
func euclidMod(x, m float64) float64 {
	x = math.Mod(x, m)
	if x < 0 {
		x += m
	}
	return x
}
