// Package report summarizes a completed setup for people and files.
package report

import (
	"time"

	"github.com/sedstack/sedinit/internal/grid"
	"github.com/sedstack/sedinit/internal/options"
	"github.com/sedstack/sedinit/internal/roads"
	"github.com/sedstack/sedinit/internal/schedule"
	"github.com/sedstack/sedinit/internal/sediment"
	"github.com/sedstack/sedinit/internal/setup"
)

// Summary is the serializable view of a setup result.
type Summary struct {
	Input       string              `yaml:"input,omitempty"`
	GeneratedAt time.Time           `yaml:"generated_at"`
	Options     options.Options     `yaml:"options"`
	Geometry    grid.Geometry       `yaml:"geometry"`
	Parameters  sediment.Parameters `yaml:"parameters"`
	Diameters   []float64           `yaml:"diameters"`
	Roads       *RoadSummary        `yaml:"roads,omitempty"`
	Schedule    *ScheduleSummary    `yaml:"schedule,omitempty"`
}

// RoadSummary lists the cells that received routing buffers.
type RoadSummary struct {
	SeriesLength int      `yaml:"series_length"`
	Cells        [][2]int `yaml:"cells"` // (x, y)
}

// ScheduleSummary lists the accounting periods.
type ScheduleSummary struct {
	Periods     []schedule.Period `yaml:"periods"`
	Overlapping [][2]int          `yaml:"overlapping,omitempty"` // 0-based index pairs
}

// Summarize builds a Summary from a setup result.
func Summarize(input string, res *setup.Result, now time.Time) *Summary {
	s := &Summary{
		Input:       input,
		GeneratedAt: now.UTC(),
		Options:     res.Options,
		Geometry:    res.Geometry,
		Parameters:  res.Params,
		Diameters:   res.Diameters,
	}

	if res.Roads != nil {
		rs := &RoadSummary{SeriesLength: roads.CellFactor, Cells: [][2]int{}}
		res.Roads.Each(func(x, y int, _ *roads.CellState) {
			rs.Cells = append(rs.Cells, [2]int{x, y})
		})
		s.Roads = rs
	}

	if res.Schedule != nil {
		s.Schedule = &ScheduleSummary{
			Periods:     res.Schedule.Periods(),
			Overlapping: res.Schedule.Overlapping(),
		}
	}
	return s
}
