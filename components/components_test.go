package components

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/bearing/orientation"
)

func TestPositionDirectionTo(t *testing.T) {
	origin := Position{}

	tests := []struct {
		name   string
		target Position
		want   orientation.Direction
	}{
		{"north", Position{X: 0, Y: 5}, orientation.DirNorth},
		{"east", Position{X: 3, Y: 0}, orientation.DirEast},
		{"coincident", Position{}, orientation.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := origin.DirectionTo(tt.target); got != tt.want {
				t.Errorf("DirectionTo(%v) = %v, want %v", tt.target, got.Vec(), tt.want.Vec())
			}
		})
	}
}

func TestPositionRotationTo(t *testing.T) {
	from := Position{X: 10, Y: 10}

	got, err := from.RotationTo(Position{X: 10, Y: 20})
	if err != nil {
		t.Fatalf("RotationTo: %v", err)
	}
	if got != orientation.North {
		t.Errorf("RotationTo = %d, want 0", got.DeciDegrees())
	}

	if _, err := from.RotationTo(from); !errors.Is(err, orientation.ErrDegenerate) {
		t.Errorf("RotationTo(self) err = %v, want ErrDegenerate", err)
	}
}

func TestPositionDistanceTo(t *testing.T) {
	a := Position{X: 1, Y: 2}
	b := Position{X: 4, Y: 6}
	if got := a.DistanceTo(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
}

func TestPositionVec3(t *testing.T) {
	v := Position{X: 7, Y: -3}.Vec3()
	if v.X != 7 || v.Y != -3 || v.Z != 0 {
		t.Errorf("Vec3 = %v, want (7, -3, 0)", v)
	}
}

func TestIdentityTransform(t *testing.T) {
	tf := IdentityTransform()

	rot, err := orientation.FromQuat(tf.Rotation)
	if err != nil {
		t.Fatalf("identity rotation has no planar heading: %v", err)
	}
	if rot != orientation.North {
		t.Errorf("identity heading = %d, want 0", rot.DeciDegrees())
	}
	if tf.Translation.X != 0 || tf.Translation.Y != 0 || tf.Translation.Z != 0 {
		t.Errorf("identity translation = %v, want origin", tf.Translation)
	}
}
