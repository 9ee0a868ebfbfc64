// Package roads sets up the per-cell state of the road-erosion router.
//
// Only cells inside the basin that carry road area get routing buffers. The
// grid keeps one slot per coarse cell so lookups stay O(1); a nil slot means
// the cell has no buffers at all, which is distinct from a cell whose
// buffers are present but still zero.
package roads

import (
	"log/slog"

	"github.com/sedstack/sedinit/internal/alloc"
	"github.com/sedstack/sedinit/internal/grid"
)

// CellFactor is the number of sub-steps per model step the road router
// records, and so the length of every per-cell series.
const CellFactor = 10

// Routine names the allocator in allocation failures.
const Routine = "InitParameters"

// CellState is the routing history of one road cell.
type CellState struct {
	H           []float64 // flow depth
	StartRunoff []float64
	StartRunon  []float64
	OldSedIn    []float64 // sediment in, previous step
	OldSedOut   []float64 // sediment out, previous step
}

// Series returns the five series in a fixed order.
func (s *CellState) Series() [][]float64 {
	return [][]float64{s.H, s.StartRunoff, s.StartRunon, s.OldSedIn, s.OldSedOut}
}

// Network is the independently loaded road network: road area per cell,
// indexed [y][x].
type Network struct {
	area [][]float64
}

// NewNetwork wraps a road area grid. A nil or empty grid yields a network
// that reports itself as not loaded.
func NewNetwork(area [][]float64) *Network {
	return &Network{area: area}
}

// Loaded reports whether the network carries any data.
func (n *Network) Loaded() bool {
	return n != nil && len(n.area) > 0
}

// RoadArea returns the road area of cell (x, y).
func (n *Network) RoadArea(x, y int) float64 {
	return n.area[y][x]
}

// Basin reports basin membership per coarse cell.
type Basin interface {
	InBasin(x, y int) bool
}

// Cells is the sparse road overlay on the coarse grid.
type Cells struct {
	nx, ny int
	slots  []*CellState // row-major, nil when the cell has no buffers
	count  int
}

// At returns the state of cell (x, y) and whether it has buffers.
func (c *Cells) At(x, y int) (*CellState, bool) {
	if c == nil || x < 0 || y < 0 || x >= c.nx || y >= c.ny {
		return nil, false
	}
	s := c.slots[y*c.nx+x]
	return s, s != nil
}

// Count returns the number of cells with buffers.
func (c *Cells) Count() int {
	if c == nil {
		return 0
	}
	return c.count
}

// Each calls fn for every cell with buffers in row-major order.
func (c *Cells) Each(fn func(x, y int, s *CellState)) {
	if c == nil {
		return
	}
	for i, s := range c.slots {
		if s != nil {
			fn(i%c.nx, i/c.nx, s)
		}
	}
}

// Allocator builds the road overlay.
type Allocator struct {
	Guard  alloc.Guard
	Logger *slog.Logger
}

// Allocate visits every coarse cell in row-major order and gives each cell
// that is in the basin and has positive road area its five series of
// CellFactor elements. Any refused request aborts the whole allocation;
// buffers already handed out are not reclaimed.
func (a *Allocator) Allocate(geom grid.Geometry, basin Basin, net *Network) (*Cells, error) {
	slots, err := alloc.Make[*CellState](a.Guard, Routine, geom.Cells())
	if err != nil {
		return nil, err
	}
	cells := &Cells{nx: geom.NX, ny: geom.NY, slots: slots}

	for y := 0; y < geom.NY; y++ {
		for x := 0; x < geom.NX; x++ {
			if !basin.InBasin(x, y) || !(net.RoadArea(x, y) > 0) {
				continue
			}
			s, err := a.newCell()
			if err != nil {
				return nil, err
			}
			slots[y*geom.NX+x] = s
			cells.count++
		}
	}

	if a.Logger != nil {
		a.Logger.Debug("road cells allocated", "cells", cells.count, "length", CellFactor)
	}
	return cells, nil
}

func (a *Allocator) newCell() (*CellState, error) {
	var s CellState
	for _, dst := range []*[]float64{&s.H, &s.StartRunoff, &s.StartRunon, &s.OldSedIn, &s.OldSedOut} {
		buf, err := alloc.Make[float64](a.Guard, Routine, CellFactor)
		if err != nil {
			return nil, err
		}
		*dst = buf
	}
	return &s, nil
}
