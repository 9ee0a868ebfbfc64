package roads

import (
	"testing"

	"github.com/sedstack/sedinit/internal/alloc"
	sederr "github.com/sedstack/sedinit/internal/errors"
	"github.com/sedstack/sedinit/internal/grid"
)

func square(nx, ny int, v int) [][]int {
	m := make([][]int, ny)
	for y := range m {
		m[y] = make([]int, nx)
		for x := range m[y] {
			m[y][x] = v
		}
	}
	return m
}

func zeros(nx, ny int) [][]float64 {
	m := make([][]float64, ny)
	for y := range m {
		m[y] = make([]float64, nx)
	}
	return m
}

func TestNetworkLoaded(t *testing.T) {
	var nilNet *Network
	if nilNet.Loaded() {
		t.Error("nil network reports loaded")
	}
	if NewNetwork(nil).Loaded() {
		t.Error("empty network reports loaded")
	}
	if !NewNetwork(zeros(1, 1)).Loaded() {
		t.Error("network with data reports not loaded")
	}
}

func TestAllocate_SingleRoadCell(t *testing.T) {
	d := &grid.Domain{
		Geometry: grid.Geometry{NX: 3, NY: 3, DY: 100},
		Mask:     square(3, 3, 1),
		RoadArea: zeros(3, 3),
	}
	d.RoadArea[1][2] = 40

	a := &Allocator{Guard: alloc.Default()}
	cells, err := a.Allocate(d.Geometry, d, NewNetwork(d.RoadArea))
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if cells.Count() != 1 {
		t.Fatalf("Count = %d, want 1", cells.Count())
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			s, ok := cells.At(x, y)
			if x == 2 && y == 1 {
				if !ok {
					t.Fatal("road cell (2,1) has no buffers")
				}
				series := s.Series()
				if len(series) != 5 {
					t.Fatalf("got %d series, want 5", len(series))
				}
				for i, buf := range series {
					if len(buf) != CellFactor {
						t.Errorf("series %d length = %d, want %d", i, len(buf), CellFactor)
					}
				}
				continue
			}
			if ok || s != nil {
				t.Errorf("cell (%d,%d) should have no buffers", x, y)
			}
		}
	}
}

func TestAllocate_Predicate(t *testing.T) {
	tests := []struct {
		name   string
		mask   int
		area   float64
		wantOK bool
	}{
		{"in basin with road", 1, 2, true},
		{"any nonzero mask counts", 7, 0.5, true},
		{"outside basin", grid.OutsideBasin, 2, false},
		{"no road", 1, 0, false},
		{"negative road area", 1, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &grid.Domain{
				Geometry: grid.Geometry{NX: 1, NY: 1, DY: 1},
				Mask:     [][]int{{tt.mask}},
				RoadArea: [][]float64{{tt.area}},
			}
			cells, err := (&Allocator{Guard: alloc.Default()}).Allocate(d.Geometry, d, NewNetwork(d.RoadArea))
			if err != nil {
				t.Fatalf("Allocate failed: %v", err)
			}
			if _, ok := cells.At(0, 0); ok != tt.wantOK {
				t.Errorf("At(0,0) ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestAllocate_BuffersIndependent(t *testing.T) {
	d := &grid.Domain{
		Geometry: grid.Geometry{NX: 2, NY: 1, DY: 1},
		Mask:     [][]int{{1, 1}},
		RoadArea: [][]float64{{1, 1}},
	}
	cells, err := (&Allocator{Guard: alloc.Default()}).Allocate(d.Geometry, d, NewNetwork(d.RoadArea))
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	a, _ := cells.At(0, 0)
	b, _ := cells.At(1, 0)
	a.H[0] = 3
	a.OldSedOut[CellFactor-1] = 4
	if b.H[0] != 0 || a.StartRunoff[0] != 0 || a.OldSedIn[CellFactor-1] != 0 {
		t.Error("series share storage")
	}

	var visited [][2]int
	cells.Each(func(x, y int, _ *CellState) { visited = append(visited, [2]int{x, y}) })
	if len(visited) != 2 || visited[0] != [2]int{0, 0} || visited[1] != [2]int{1, 0} {
		t.Errorf("Each visited %v, want row-major [(0,0) (1,0)]", visited)
	}
}

func TestAllocate_Failure(t *testing.T) {
	d := &grid.Domain{
		Geometry: grid.Geometry{NX: 2, NY: 2, DY: 1},
		Mask:     square(2, 2, 1),
		RoadArea: [][]float64{{1, 0}, {0, 0}},
	}

	// Room for the slot grid but not for a series.
	a := &Allocator{Guard: alloc.Guard{Max: CellFactor - 1}}
	_, err := a.Allocate(d.Geometry, d, NewNetwork(d.RoadArea))
	if !sederr.HasCode(err, sederr.CodeAllocationFailure) {
		t.Fatalf("error = %v, want %s", err, sederr.CodeAllocationFailure)
	}
	if v, _ := sederr.Detail(err, "routine"); v != Routine {
		t.Errorf("routine = %v, want %s", v, Routine)
	}
}

func TestCells_AtOutOfRange(t *testing.T) {
	var nilCells *Cells
	if _, ok := nilCells.At(0, 0); ok {
		t.Error("nil Cells reports a cell")
	}
	if nilCells.Count() != 0 {
		t.Error("nil Cells has nonzero count")
	}

	cells := &Cells{nx: 1, ny: 1, slots: make([]*CellState, 1)}
	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
		if _, ok := cells.At(xy[0], xy[1]); ok {
			t.Errorf("At(%d,%d) ok = true", xy[0], xy[1])
		}
	}
}
