package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bearing/components"
)

// OrientationSyncSystem reconciles the angle and vector heading of
// every entity that carries both. It must run, for all entities, before
// TransformSyncSystem runs for any of them, because the transform phase
// reads marks this phase leaves behind.
type OrientationSyncSystem struct {
	filter  ecs.Filter2[components.Heading, components.Facing]
	tracker *ChangeTracker
}

// NewOrientationSyncSystem creates the system for a world and tracker.
func NewOrientationSyncSystem(w *ecs.World, tracker *ChangeTracker) *OrientationSyncSystem {
	return &OrientationSyncSystem{
		filter:  *ecs.NewFilter2[components.Heading, components.Facing](w),
		tracker: tracker,
	}
}

// Update runs one pass of angle/vector reconciliation.
func (s *OrientationSyncSystem) Update(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		heading, facing := query.Get()

		wroteAngle, wroteFacing := ReconcileHeadingFacing(
			&heading.Angle, &facing.Direction,
			s.tracker.Changed(e, FieldHeading), s.tracker.Changed(e, FieldFacing),
		)
		if wroteAngle {
			s.tracker.Mark(e, FieldHeading)
		}
		if wroteFacing {
			s.tracker.Mark(e, FieldFacing)
		}
	}
}

// TransformSyncSystem reconciles each entity's transform with whichever
// of Heading, Facing and Position it carries. The three are optional
// and handled independently; only the transform itself is required.
type TransformSyncSystem struct {
	filter     ecs.Filter1[components.Transform]
	headingMap *ecs.Map1[components.Heading]
	facingMap  *ecs.Map1[components.Facing]
	posMap     *ecs.Map1[components.Position]
	tracker    *ChangeTracker
}

// NewTransformSyncSystem creates the system for a world and tracker.
func NewTransformSyncSystem(w *ecs.World, tracker *ChangeTracker) *TransformSyncSystem {
	return &TransformSyncSystem{
		filter:     *ecs.NewFilter1[components.Transform](w),
		headingMap: ecs.NewMap1[components.Heading](w),
		facingMap:  ecs.NewMap1[components.Facing](w),
		posMap:     ecs.NewMap1[components.Position](w),
		tracker:    tracker,
	}
}

// Update runs one pass of transform reconciliation.
func (s *TransformSyncSystem) Update(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		tf := query.Get()

		if heading := s.headingMap.Get(e); heading != nil {
			wroteAngle, wroteQuat := ReconcileHeadingQuat(
				&heading.Angle, &tf.Rotation,
				s.tracker.Changed(e, FieldHeading), s.tracker.Changed(e, FieldTransform),
			)
			if wroteAngle {
				s.tracker.Mark(e, FieldHeading)
			}
			if wroteQuat {
				s.tracker.Mark(e, FieldTransform)
			}
		}

		if facing := s.facingMap.Get(e); facing != nil {
			wroteFacing, wroteQuat := ReconcileFacingQuat(
				&facing.Direction, &tf.Rotation,
				s.tracker.Changed(e, FieldFacing), s.tracker.Changed(e, FieldTransform),
			)
			if wroteFacing {
				s.tracker.Mark(e, FieldFacing)
			}
			if wroteQuat {
				s.tracker.Mark(e, FieldTransform)
			}
		}

		if pos := s.posMap.Get(e); pos != nil {
			wrotePos, wroteTranslation := ReconcilePlanarPosition(
				&pos.X, &pos.Y, &tf.Translation,
				s.tracker.Changed(e, FieldPosition), s.tracker.Changed(e, FieldTransform),
			)
			if wrotePos {
				s.tracker.Mark(e, FieldPosition)
			}
			if wroteTranslation {
				s.tracker.Mark(e, FieldTransform)
			}
		}
	}
}
