package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bearing/components"
	"github.com/pthm-cable/bearing/orientation"
)

type syncFixture struct {
	world      *ecs.World
	tracker    *ChangeTracker
	orientSync *OrientationSyncSystem
	tfSync     *TransformSyncSystem

	fullMapper *ecs.Map4[components.Heading, components.Facing, components.Position, components.Transform]
	headingMap *ecs.Map1[components.Heading]
	facingMap  *ecs.Map1[components.Facing]
	posMap     *ecs.Map1[components.Position]
	tfMap      *ecs.Map1[components.Transform]
}

func newSyncFixture() *syncFixture {
	world := ecs.NewWorld()
	tracker := NewChangeTracker()
	return &syncFixture{
		world:      world,
		tracker:    tracker,
		orientSync: NewOrientationSyncSystem(world, tracker),
		tfSync:     NewTransformSyncSystem(world, tracker),

		fullMapper: ecs.NewMap4[components.Heading, components.Facing, components.Position, components.Transform](world),
		headingMap: ecs.NewMap1[components.Heading](world),
		facingMap:  ecs.NewMap1[components.Facing](world),
		posMap:     ecs.NewMap1[components.Position](world),
		tfMap:      ecs.NewMap1[components.Transform](world),
	}
}

// spawnConsistent creates an entity whose four representations agree.
func (f *syncFixture) spawnConsistent(angle orientation.Rotation, x, y float64) ecs.Entity {
	heading := components.Heading{Angle: angle}
	facing := components.Facing{Direction: angle.Direction()}
	pos := components.Position{X: x, Y: y}
	tf := components.Transform{
		Translation: pos.Vec3(),
		Rotation:    angle.Quat(),
	}
	return f.fullMapper.NewEntity(&heading, &facing, &pos, &tf)
}

// cycle runs both sync phases in order, like one host update.
func (f *syncFixture) cycle() {
	f.orientSync.Update(f.world)
	f.tfSync.Update(f.world)
	f.tracker.Reset()
}

// rotationNear reports whether two rotations are within tol deci-degrees
// along the shorter arc. Deriving an angle from a vector or quaternion
// truncates and may land one step low.
func rotationNear(a, b orientation.Rotation, tol uint16) bool {
	d := a.Distance(b).DeciDegrees()
	if d > orientation.FullCircle/2 {
		d = orientation.FullCircle - d
	}
	return d <= tol
}

func TestSyncAngleDrivesFacingAndTransform(t *testing.T) {
	f := newSyncFixture()
	e := f.spawnConsistent(orientation.North, 0, 0)

	f.headingMap.Get(e).Angle = orientation.East
	f.tracker.Mark(e, FieldHeading)

	f.cycle()

	if got := f.facingMap.Get(e).Direction; got != orientation.East.Direction() {
		t.Errorf("facing = %v, want east", got.Vec())
	}
	// The facing branch of the transform phase may re-derive the
	// quaternion through the truncating vector conversion, so compare
	// within a deci-degree's worth of slack.
	if got := f.tfMap.Get(e).Rotation; !orientation.QuatApproxEqual(got, orientation.East.Quat(), 1e-2) {
		t.Errorf("transform rotation = %v, want east", got)
	}
}

func TestSyncFacingDrivesAngleAndTransform(t *testing.T) {
	f := newSyncFixture()
	e := f.spawnConsistent(orientation.North, 0, 0)

	f.facingMap.Get(e).Direction = orientation.DirSouth
	f.tracker.Mark(e, FieldFacing)

	f.cycle()

	angle := f.headingMap.Get(e).Angle
	if !rotationNear(angle, orientation.South, 1) {
		t.Errorf("angle = %d, want 1800", angle.DeciDegrees())
	}
	// The orientation phase marked the heading it derived, so the
	// transform phase takes its angle branch and the quaternion follows
	// the derived angle exactly.
	if got := f.tfMap.Get(e).Rotation; got != angle.Quat() {
		t.Errorf("transform rotation = %v, want %v", got, angle.Quat())
	}
}

func TestSyncTransformDrivesHeadings(t *testing.T) {
	f := newSyncFixture()
	e := f.spawnConsistent(orientation.North, 3, 4)

	tf := f.tfMap.Get(e)
	tf.Rotation = orientation.West.Quat()
	tf.Translation = r3.Vec{X: 10, Y: 20, Z: 0}
	f.tracker.Mark(e, FieldTransform)

	f.cycle()

	if got := f.headingMap.Get(e).Angle; !rotationNear(got, orientation.West, 1) {
		t.Errorf("angle = %d, want 2700", got.DeciDegrees())
	}
	facing := f.facingMap.Get(e).Direction
	if facing.IsNeutral() {
		t.Fatal("facing stayed Neutral")
	}
	if v := facing.Vec(); v.X > -0.99 {
		t.Errorf("facing = %v, want west", v)
	}
	pos := f.posMap.Get(e)
	if pos.X != 10 || pos.Y != 20 {
		t.Errorf("position = (%v, %v), want (10, 20)", pos.X, pos.Y)
	}
}

func TestSyncPositionDrivesTranslationOnly(t *testing.T) {
	f := newSyncFixture()
	e := f.spawnConsistent(orientation.East, 1, 2)

	tf := f.tfMap.Get(e)
	tf.Translation.Z = 5

	pos := f.posMap.Get(e)
	pos.X, pos.Y = 8, 9
	f.tracker.Mark(e, FieldPosition)

	f.cycle()

	got := f.tfMap.Get(e).Translation
	if got.X != 8 || got.Y != 9 {
		t.Errorf("translation = %v, want x=8 y=9", got)
	}
	if got.Z != 5 {
		t.Errorf("z = %v, want 5 untouched", got.Z)
	}
	if r := f.tfMap.Get(e).Rotation; r != orientation.East.Quat() {
		t.Error("rotation moved during a position-only change")
	}
}

func TestSyncQuiescentCycleWritesNothing(t *testing.T) {
	f := newSyncFixture()
	e := f.spawnConsistent(orientation.North, 0, 0)

	f.headingMap.Get(e).Angle = orientation.SouthWest
	f.tracker.Mark(e, FieldHeading)
	f.cycle()

	// Everything converged and the tracker was reset; a second cycle
	// must leave no marks behind.
	f.orientSync.Update(f.world)
	f.tfSync.Update(f.world)

	for _, field := range []Field{FieldHeading, FieldFacing, FieldTransform, FieldPosition} {
		if f.tracker.Changed(e, field) {
			t.Errorf("quiescent cycle marked %s", field)
		}
	}
}

func TestSyncAngleWinsOverFacing(t *testing.T) {
	f := newSyncFixture()
	e := f.spawnConsistent(orientation.North, 0, 0)

	f.headingMap.Get(e).Angle = orientation.East
	f.facingMap.Get(e).Direction = orientation.NewDirection(r2.Vec{X: -1, Y: -1})
	f.tracker.Mark(e, FieldHeading)
	f.tracker.Mark(e, FieldFacing)

	f.cycle()

	if got := f.headingMap.Get(e).Angle; got != orientation.East {
		t.Errorf("angle = %d, want 900", got.DeciDegrees())
	}
	if got := f.facingMap.Get(e).Direction; got != orientation.East.Direction() {
		t.Errorf("facing = %v, want east", got.Vec())
	}
}

func TestSyncAngleOnlyEntitySpunExternally(t *testing.T) {
	f := newSyncFixture()
	world := f.world

	mapper := ecs.NewMap2[components.Heading, components.Transform](world)
	heading := components.Heading{Angle: orientation.North}
	tf := components.IdentityTransform()
	e := mapper.NewEntity(&heading, &tf)

	f.tfMap.Get(e).Rotation = orientation.NorthEast.Quat()
	f.tracker.Mark(e, FieldTransform)

	f.cycle()

	if got := f.headingMap.Get(e).Angle; !rotationNear(got, orientation.NorthEast, 1) {
		t.Errorf("angle = %d, want 450", got.DeciDegrees())
	}
}
