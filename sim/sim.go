// Package sim runs a headless demo world whose entities steer, snap and
// stay synchronized through the orientation systems.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bearing/components"
	"github.com/pthm-cable/bearing/config"
	"github.com/pthm-cable/bearing/orientation"
	"github.com/pthm-cable/bearing/systems"
	"github.com/pthm-cable/bearing/telemetry"
)

// Sim holds the complete simulation state.
type Sim struct {
	world *ecs.World
	cfg   *config.Config
	rng   *rand.Rand

	// Entity mappers, one per bundle shape
	fullMapper   *ecs.Map4[components.Heading, components.Facing, components.Position, components.Transform]
	angleMapper  *ecs.Map2[components.Heading, components.Transform]
	facingMapper *ecs.Map2[components.Facing, components.Transform]
	posMapper    *ecs.Map2[components.Position, components.Transform]

	// Individual component mappers for lookups
	headingMap *ecs.Map1[components.Heading]
	facingMap  *ecs.Map1[components.Facing]
	posMap     *ecs.Map1[components.Position]
	tfMap      *ecs.Map1[components.Transform]

	headingFilter *ecs.Filter1[components.Heading]
	facingFilter  *ecs.Filter1[components.Facing]

	// Sync protocol
	tracker    *systems.ChangeTracker
	orientSync *systems.OrientationSyncSystem
	tfSync     *systems.TransformSyncSystem

	// Demo behavior state. movers is kept in spawn order so rng draws
	// on waypoint arrival stay deterministic for a given seed.
	targets   map[ecs.Entity]orientation.Rotation
	waypoints map[ecs.Entity]components.Position
	spinners  []ecs.Entity // angle-only entities whose transforms get spun externally
	movers    []ecs.Entity // entities that carry a position

	// Telemetry
	perf   *telemetry.PerfCollector
	census *telemetry.Census
	out    *telemetry.OutputManager

	tick int
}

// New creates a simulation from the given config and spawns its initial
// population.
func New(cfg *config.Config, out *telemetry.OutputManager) *Sim {
	world := ecs.NewWorld()

	tracker := systems.NewChangeTracker()

	s := &Sim{
		world:   world,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Sim.Seed)),
		tracker: tracker,

		fullMapper:   ecs.NewMap4[components.Heading, components.Facing, components.Position, components.Transform](world),
		angleMapper:  ecs.NewMap2[components.Heading, components.Transform](world),
		facingMapper: ecs.NewMap2[components.Facing, components.Transform](world),
		posMapper:    ecs.NewMap2[components.Position, components.Transform](world),

		headingMap: ecs.NewMap1[components.Heading](world),
		facingMap:  ecs.NewMap1[components.Facing](world),
		posMap:     ecs.NewMap1[components.Position](world),
		tfMap:      ecs.NewMap1[components.Transform](world),

		headingFilter: ecs.NewFilter1[components.Heading](world),
		facingFilter:  ecs.NewFilter1[components.Facing](world),

		orientSync: systems.NewOrientationSyncSystem(world, tracker),
		tfSync:     systems.NewTransformSyncSystem(world, tracker),

		targets:   make(map[ecs.Entity]orientation.Rotation),
		waypoints: make(map[ecs.Entity]components.Position),

		perf:   telemetry.NewPerfCollector(cfg.Telemetry.PerfInterval),
		census: telemetry.NewCensus(cfg.Derived.Rose),
		out:    out,
	}

	reg := systems.NewSystemRegistry()
	for _, id := range reg.IDs() {
		info, _ := reg.Get(id)
		slog.Debug("pipeline step", "phase", id, "name", reg.GetName(id), "category", info.Category)
	}

	s.spawnInitialPopulation()
	return s
}

// spawnInitialPopulation creates the configured entity mix.
func (s *Sim) spawnInitialPopulation() {
	for i := 0; i < s.cfg.Entities.Full; i++ {
		e := s.spawnFull()
		s.movers = append(s.movers, e)
	}
	for i := 0; i < s.cfg.Entities.AngleOnly; i++ {
		e := s.spawnAngleOnly()
		s.spinners = append(s.spinners, e)
	}
	for i := 0; i < s.cfg.Entities.VectorOnly; i++ {
		s.spawnVectorOnly()
	}
	for i := 0; i < s.cfg.Entities.PositionOnly; i++ {
		e := s.spawnPositionOnly()
		s.movers = append(s.movers, e)
	}

	slog.Info("population spawned",
		"full", s.cfg.Entities.Full,
		"angle_only", s.cfg.Entities.AngleOnly,
		"vector_only", s.cfg.Entities.VectorOnly,
		"position_only", s.cfg.Entities.PositionOnly,
		"rose", s.cfg.Derived.Rose.Name(),
	)
}

// spawnFull creates an entity carrying every syncable component, with
// all representations consistent from the start.
func (s *Sim) spawnFull() ecs.Entity {
	angle := s.randomRotation()
	pos := s.randomPosition()

	heading := components.Heading{Angle: angle}
	facing := components.Facing{Direction: angle.Direction()}
	tf := components.Transform{
		Translation: pos.Vec3(),
		Rotation:    angle.Quat(),
	}

	e := s.fullMapper.NewEntity(&heading, &facing, &pos, &tf)
	s.targets[e] = s.randomRotation()
	s.waypoints[e] = s.randomPosition()
	return e
}

// spawnAngleOnly creates an entity with only the discretized heading.
func (s *Sim) spawnAngleOnly() ecs.Entity {
	angle := s.randomRotation()
	heading := components.Heading{Angle: angle}
	tf := components.IdentityTransform()
	tf.Rotation = angle.Quat()

	e := s.angleMapper.NewEntity(&heading, &tf)
	s.targets[e] = s.randomRotation()
	return e
}

// spawnVectorOnly creates an entity with only the vector heading.
func (s *Sim) spawnVectorOnly() ecs.Entity {
	angle := s.randomRotation()
	facing := components.Facing{Direction: angle.Direction()}
	tf := components.IdentityTransform()
	tf.Rotation = angle.Quat()

	e := s.facingMapper.NewEntity(&facing, &tf)
	s.targets[e] = s.randomRotation()
	return e
}

// spawnPositionOnly creates an entity that only moves, never turns.
func (s *Sim) spawnPositionOnly() ecs.Entity {
	pos := s.randomPosition()
	tf := components.IdentityTransform()
	tf.Translation = pos.Vec3()

	e := s.posMapper.NewEntity(&pos, &tf)
	s.waypoints[e] = s.randomPosition()
	return e
}

// Step advances the simulation by one update cycle: behavior writes,
// then the orientation phase for all entities, then the transform
// phase, then telemetry. The change tracker is reset at the very end;
// within the cycle the transform phase sees every mark the orientation
// phase left.
func (s *Sim) Step() {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseSteering)
	s.updateSteering()

	s.perf.StartPhase(telemetry.PhaseOrientationSync)
	s.orientSync.Update(s.world)

	s.perf.StartPhase(telemetry.PhaseTransformSync)
	s.tfSync.Update(s.world)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.updateTelemetry()

	s.perf.EndTick()
	s.tracker.Reset()
	s.tick++
}

// Run advances the simulation by the given number of ticks and logs a
// final summary.
func (s *Sim) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step()
	}

	stats := s.perf.Stats()
	slog.Info("run finished", "ticks", s.tick, "perf", stats)
}

// Tick returns the number of completed update cycles.
func (s *Sim) Tick() int {
	return s.tick
}

// updateTelemetry tallies the compass census and flushes CSV output at
// the configured intervals.
func (s *Sim) updateTelemetry() {
	if s.cfg.Telemetry.CensusInterval > 0 && s.tick%s.cfg.Telemetry.CensusInterval == 0 {
		s.census.Reset()

		query := s.headingFilter.Query()
		for query.Next() {
			heading := query.Get()
			s.census.AddRotation(heading.Angle)
		}

		// Vector-only entities; those that also carry an angle were
		// already counted above.
		fq := s.facingFilter.Query()
		for fq.Next() {
			e := fq.Entity()
			if s.headingMap.Get(e) != nil {
				continue
			}
			s.census.AddDirection(fq.Get().Direction)
		}

		slog.Debug("census",
			"tick", s.tick,
			"total", s.census.Total(),
			"mean_heading", s.census.MeanHeading().Vec(),
		)
		if err := s.out.WriteCensus(s.census.Rows(s.tick)); err != nil {
			slog.Error("census output failed", "error", err)
		}
	}

	if s.cfg.Telemetry.PerfInterval > 0 && s.tick > 0 && s.tick%s.cfg.Telemetry.PerfInterval == 0 {
		stats := s.perf.Stats()
		slog.Info("perf", "tick", s.tick, "stats", stats)
		if err := s.out.WritePerf(stats, s.tick); err != nil {
			slog.Error("perf output failed", "error", err)
		}
	}
}

// randomRotation returns a uniformly random discretized heading.
func (s *Sim) randomRotation() orientation.Rotation {
	return orientation.New(uint16(s.rng.Intn(int(orientation.FullCircle))))
}

// randomPosition returns a uniformly random world position.
func (s *Sim) randomPosition() components.Position {
	return components.Position{
		X: s.rng.Float64() * s.cfg.World.Width,
		Y: s.rng.Float64() * s.cfg.World.Height,
	}
}
