package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bearing/orientation"
	"github.com/pthm-cable/bearing/systems"
)

// updateSteering is the "outside code" of the demo: it edits headings,
// facings, positions and transforms directly, marking every field it
// writes. The sync systems then propagate those edits.
func (s *Sim) updateSteering() {
	s.steerHeadings()
	s.steerFacings()
	s.moveEntities()
	s.spinTransforms()
}

// steerHeadings turns every angle-carrying entity towards its target
// rotation. Waypoint patrollers aim at the bearing of their waypoint;
// entities without a position hold randomly drawn targets, refreshed on
// arrival.
func (s *Sim) steerHeadings() {
	query := s.headingFilter.Query()
	for query.Next() {
		e := query.Entity()
		target, ok := s.targets[e]
		if !ok {
			continue
		}
		heading := query.Get()

		pos := s.posMap.Get(e)
		if pos != nil {
			if wp, hasWp := s.waypoints[e]; hasWp {
				if bearing, err := pos.RotationTo(wp); err == nil {
					target = bearing
					s.targets[e] = bearing
				}
			}
		}

		if heading.Angle == target {
			if pos == nil {
				s.targets[e] = s.randomRotation()
			}
			continue
		}
		heading.Angle = heading.Angle.RotateTowards(target, s.cfg.Derived.TurnStep)
		s.tracker.Mark(e, systems.FieldHeading)
	}
}

// steerFacings turns vector-only entities. The edit goes through the
// vector representation on purpose: derive the angle, turn it, convert
// back. A facing that has collapsed to Neutral has no angle to turn, so
// it is kicked back to a random heading instead.
func (s *Sim) steerFacings() {
	query := s.facingFilter.Query()
	for query.Next() {
		e := query.Entity()
		if s.headingMap.Get(e) != nil {
			// Angle-carrying entities are steered through the angle.
			continue
		}
		target, ok := s.targets[e]
		if !ok {
			continue
		}
		facing := query.Get()

		current, err := facing.Direction.Rotation()
		if err != nil {
			facing.Direction = s.randomRotation().Direction()
			s.tracker.Mark(e, systems.FieldFacing)
			continue
		}

		if current == target {
			s.targets[e] = s.randomRotation()
			continue
		}
		facing.Direction = current.RotateTowards(target, s.cfg.Derived.TurnStep).Direction()
		s.tracker.Mark(e, systems.FieldFacing)
	}
}

// moveEntities walks every position-carrying entity straight towards
// its waypoint, picking a fresh one on arrival.
func (s *Sim) moveEntities() {
	for _, e := range s.movers {
		wp, ok := s.waypoints[e]
		if !ok {
			continue
		}
		pos := s.posMap.Get(e)
		if pos == nil {
			continue
		}

		if pos.DistanceTo(wp) <= s.cfg.Steering.WaypointRadius {
			s.waypoints[e] = s.randomPosition()
			continue
		}

		step := pos.DirectionTo(wp).Scale(s.cfg.Derived.StepDist)
		pos.X += step.X
		pos.Y += step.Y
		s.tracker.Mark(e, systems.FieldPosition)
	}
}

// spinTransforms periodically rewrites the transform rotation of one
// angle-only entity, emulating an edit made by the embedding
// environment. The next transform phase pulls the heading back in line
// with it.
func (s *Sim) spinTransforms() {
	if s.cfg.Steering.SpinInterval <= 0 || len(s.spinners) == 0 {
		return
	}
	if s.tick%s.cfg.Steering.SpinInterval != 0 {
		return
	}

	e := s.spinners[s.rng.Intn(len(s.spinners))]
	s.spinEntity(e, s.randomRotation())
}

// spinEntity writes a transform rotation directly, bypassing the local
// heading components.
func (s *Sim) spinEntity(e ecs.Entity, r orientation.Rotation) {
	tf := s.tfMap.Get(e)
	if tf == nil {
		return
	}
	tf.Rotation = r.Quat()
	s.tracker.Mark(e, systems.FieldTransform)
	// Retarget so steering agrees with the imposed heading.
	if _, ok := s.targets[e]; ok {
		s.targets[e] = r
	}
}
