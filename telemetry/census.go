// Package telemetry collects and exports statistics about the heading
// simulation.
package telemetry

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bearing/orientation"
)

// NeutralPartition is the census bucket for entities that face nowhere.
const NeutralPartition = "NEUTRAL"

// CensusRow is one partition count at one tick, in long CSV format so
// the schema is independent of the rose in use.
type CensusRow struct {
	Tick      int    `csv:"tick"`
	Partition string `csv:"partition"`
	Count     int    `csv:"count"`
}

// Census tallies entity headings against the partitions of a compass
// rose.
type Census struct {
	rose    orientation.Rose
	counts  map[string]int
	sum     r2.Vec
	neutral int
	total   int
}

// NewCensus creates a census over the given rose.
func NewCensus(rose orientation.Rose) *Census {
	return &Census{
		rose:   rose,
		counts: make(map[string]int),
	}
}

// Reset clears all tallies for a new tick.
func (c *Census) Reset() {
	clear(c.counts)
	c.sum = r2.Vec{}
	c.neutral = 0
	c.total = 0
}

// AddRotation tallies a discretized heading.
func (c *Census) AddRotation(r orientation.Rotation) {
	c.counts[c.rose.Snap(r).Name]++
	c.sum = r2.Add(c.sum, r.Vec())
	c.total++
}

// AddDirection tallies a vector heading. Neutral directions land in
// their own bucket since they snap to no partition.
func (c *Census) AddDirection(d orientation.Direction) {
	r, err := d.Rotation()
	if err != nil {
		c.neutral++
		c.total++
		return
	}
	c.AddRotation(r)
}

// Total returns the number of headings tallied since the last Reset.
func (c *Census) Total() int {
	return c.total
}

// MeanHeading returns the circular mean of all tallied headings: the
// direction of the summed unit vectors. Neutral entries contribute
// nothing; a population spread evenly around the circle collapses to
// Neutral.
func (c *Census) MeanHeading() orientation.Direction {
	return orientation.NewDirection(c.sum)
}

// Rows returns the tallies as CSV rows, one per partition in rose table
// order, with the neutral bucket last.
func (c *Census) Rows(tick int) []CensusRow {
	partitions := c.rose.Partitions()
	rows := make([]CensusRow, 0, len(partitions)+1)
	for _, p := range partitions {
		rows = append(rows, CensusRow{Tick: tick, Partition: p.Name, Count: c.counts[p.Name]})
	}
	rows = append(rows, CensusRow{Tick: tick, Partition: NeutralPartition, Count: c.neutral})
	return rows
}
