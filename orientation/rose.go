package orientation

import "gonum.org/v1/gonum/spatial/r2"

// Partition is one named member of a compass rose.
type Partition struct {
	Name     string
	Rotation Rotation
}

// Rose is a fixed, ordered partitioning of the circle into a small set
// of named discrete directions. The table is defined once and never
// mutated; every rose has at least one partition.
type Rose struct {
	name  string
	table []Partition
}

// The provided compass roses.
var (
	// Quadrant is the 4-way rose of the cardinal directions.
	Quadrant = Rose{"quadrant", []Partition{
		{"N", New(0)},
		{"E", New(900)},
		{"S", New(1800)},
		{"W", New(2700)},
	}}

	// OffsetQuadrant is the 4-way rose of the cardinal directions
	// offset by 45 degrees.
	OffsetQuadrant = Rose{"offset-quadrant", []Partition{
		{"NE", New(450)},
		{"SE", New(1350)},
		{"SW", New(2250)},
		{"NW", New(3150)},
	}}

	// Octant is the 8-way rose of the cardinal directions and their
	// intermediates.
	Octant = Rose{"octant", []Partition{
		{"N", New(0)},
		{"NE", New(450)},
		{"E", New(900)},
		{"SE", New(1350)},
		{"S", New(1800)},
		{"SW", New(2250)},
		{"W", New(2700)},
		{"NW", New(3150)},
	}}

	// Sextant is the 6-way rose of a tip-up hexagon. Tiles of this
	// shape fit together in a row.
	Sextant = Rose{"sextant", []Partition{
		{"N", New(0)},
		{"NE", New(600)},
		{"SE", New(1200)},
		{"S", New(1800)},
		{"SW", New(2400)},
		{"NW", New(3000)},
	}}

	// OffsetSextant is the 6-way rose of a flat-up hexagon. Tiles of
	// this shape fit together in a column.
	OffsetSextant = Rose{"offset-sextant", []Partition{
		{"NE", New(300)},
		{"E", New(900)},
		{"SE", New(1500)},
		{"SW", New(2100)},
		{"W", New(2700)},
		{"NW", New(3300)},
	}}
)

// roses indexes the provided roses for lookup by configuration name.
var roses = map[string]Rose{
	Quadrant.name:       Quadrant,
	OffsetQuadrant.name: OffsetQuadrant,
	Octant.name:         Octant,
	Sextant.name:        Sextant,
	OffsetSextant.name:  OffsetSextant,
}

// RoseByName looks up one of the provided roses by its name.
func RoseByName(name string) (Rose, bool) {
	r, ok := roses[name]
	return r, ok
}

// Name returns the rose's name.
func (r Rose) Name() string {
	return r.name
}

// Partitions returns a copy of the rose's ordered partition table.
func (r Rose) Partitions() []Partition {
	out := make([]Partition, len(r.table))
	copy(out, r.table)
	return out
}

// Rotations returns the snappable rotations, in table order.
func (r Rose) Rotations() []Rotation {
	out := make([]Rotation, len(r.table))
	for i, p := range r.table {
		out[i] = p.Rotation
	}
	return out
}

// Directions returns the snappable unit directions, in table order.
func (r Rose) Directions() []Direction {
	out := make([]Direction, len(r.table))
	for i, p := range r.table {
		out[i] = p.Rotation.Direction()
	}
	return out
}

// Vecs returns the snappable unit vectors, in table order.
func (r Rose) Vecs() []r2.Vec {
	out := make([]r2.Vec, len(r.table))
	for i, p := range r.table {
		out[i] = p.Rotation.Vec()
	}
	return out
}

// Snap returns the partition nearest to rot by Rotation.Distance.
// The comparison is strict, so when two partitions are equally near the
// one earlier in the table wins; snapping is fully deterministic.
func (r Rose) Snap(rot Rotation) Partition {
	if len(r.table) == 0 {
		panic("orientation: rose has no partitions")
	}
	best := r.table[0]
	bestDist := rot.Distance(best.Rotation)
	for _, p := range r.table[1:] {
		if d := rot.Distance(p.Rotation); d.DeciDegrees() < bestDist.DeciDegrees() {
			best, bestDist = p, d
		}
	}
	return best
}

// SnapRotation snaps rot to the nearest discrete rotation of the rose.
func (r Rose) SnapRotation(rot Rotation) Rotation {
	return r.Snap(rot).Rotation
}

// SnapDirection snaps d to the nearest discrete direction of the rose.
// A direction with no heading has nothing to snap to, so Neutral snaps
// to Neutral.
func (r Rose) SnapDirection(d Direction) Direction {
	rot, err := d.Rotation()
	if err != nil {
		return Neutral
	}
	return r.SnapRotation(rot).Direction()
}

// SnapVec snaps v to the unit vector of the nearest discrete direction.
// Near-zero input yields the zero vector.
func (r Rose) SnapVec(v r2.Vec) r2.Vec {
	rot, err := FromVec(v)
	if err != nil {
		return r2.Vec{}
	}
	return r.SnapRotation(rot).Vec()
}
