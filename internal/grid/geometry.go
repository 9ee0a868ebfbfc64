// Package grid holds the coarse model grid, its basin mask and the fine
// mass-wasting grid derived from it.
package grid

import (
	"math"
	"strconv"

	"github.com/sedstack/sedinit/internal/config"
	sederr "github.com/sedstack/sedinit/internal/errors"
)

const (
	// Section holds the spacing key.
	Section = "PARAMETERS"
	// SpacingKey is the fine-grid spacing in the same units as DY.
	SpacingKey = "MASS WASTING SPACING"
)

// snapTolerance is the relative distance to an integer below which a fine
// cell count is treated as that integer before truncation.
const snapTolerance = 1e-9

// Geometry describes the coarse grid and the fine mass-wasting grid.
type Geometry struct {
	NX int     `yaml:"nx"`
	NY int     `yaml:"ny"`
	DY float64 `yaml:"dy"` // coarse cell edge length

	DMASS        float64 `yaml:"dmass,omitempty"`
	NXFine       int     `yaml:"nx_fine,omitempty"`
	NYFine       int     `yaml:"ny_fine,omitempty"`
	NumCellsFine int     `yaml:"num_cells_fine,omitempty"` // filled by the mass-wasting stage
}

// Cells returns the number of coarse cells.
func (g Geometry) Cells() int {
	return g.NX * g.NY
}

// MaxFineDim is the largest fine-grid dimension a spacing may produce.
const MaxFineDim = math.MaxInt32

// FineCount returns floor(n * dy/dmass). Products within snapTolerance of an
// integer snap to it first, so 3 * (10/0.1) is 300 and not 299. The product
// must already be known to fit in an int.
func FineCount(n int, dy, dmass float64) int {
	return int(fineExtent(n, dy, dmass))
}

func fineExtent(n int, dy, dmass float64) float64 {
	v := float64(n) * (dy / dmass)
	r := math.Round(v)
	if math.Abs(v-r) <= snapTolerance*math.Max(1, math.Abs(v)) {
		return r
	}
	return math.Floor(v)
}

// SetSpacing records the fine-grid spacing, derives the fine dimensions and
// resets the fine cell counter. g is left unchanged on error.
func (g *Geometry) SetSpacing(dmass float64) error {
	if !(dmass > 0) {
		return sederr.MalformedValue(Section, SpacingKey, formatFloat(dmass), "a positive number")
	}
	nx, ny := fineExtent(g.NX, g.DY, dmass), fineExtent(g.NY, g.DY, dmass)
	for _, v := range []float64{nx, ny} {
		if math.IsNaN(v) || v > MaxFineDim {
			return sederr.MalformedValue(Section, SpacingKey, formatFloat(dmass), "a spacing yielding a representable fine grid")
		}
	}
	g.DMASS = dmass
	g.NXFine = int(nx)
	g.NYFine = int(ny)
	g.NumCellsFine = 0
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// DeriveFine reads the mass-wasting spacing from the store and applies it.
func (g *Geometry) DeriveFine(store config.Store) error {
	dmass, err := config.Float(store, Section, SpacingKey)
	if err != nil {
		return err
	}
	return g.SetSpacing(dmass)
}
