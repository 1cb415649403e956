// Package components defines the ECS components kept in sync by the
// orientation systems.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bearing/orientation"
)

// Heading is an entity's facing stored as a discretized angle from due
// north.
type Heading struct {
	Angle orientation.Rotation
}

// Facing is an entity's facing stored as a unit vector. It may be
// Neutral, in which case the entity faces nowhere in particular.
type Facing struct {
	Direction orientation.Direction
}

// Transform is the entity's 3-D placement as seen by the embedding
// environment. The sync systems only read and write the z-axis heading
// of Rotation and the x,y of Translation; everything else is left to
// whoever owns the third dimension.
type Transform struct {
	Translation r3.Vec
	Rotation    r3.Rotation
}

// IdentityTransform returns a transform at the origin facing north.
// The zero value of r3.Rotation is not a valid rotation, so transforms
// should always be created through this.
func IdentityTransform() Transform {
	return Transform{Rotation: orientation.North.Quat()}
}
