package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sederr "github.com/sedstack/sedinit/internal/errors"
)

// OutsideBasin is the mask value of cells outside the watershed.
const OutsideBasin = 0

// DomainSection names the domain file in shape errors.
const DomainSection = "DOMAIN"

// Domain is the coarse grid as loaded from a domain file: geometry, the
// basin mask and, when a road network was supplied, the per-cell road area.
// Mask and RoadArea are indexed [y][x].
type Domain struct {
	Geometry `yaml:",inline"`

	Mask     [][]int     `yaml:"mask"`
	RoadArea [][]float64 `yaml:"road_area,omitempty"`
}

// InBasin reports whether cell (x, y) lies inside the watershed.
func (d *Domain) InBasin(x, y int) bool {
	return d.Mask[y][x] != OutsideBasin
}

// HasRoadArea reports whether road area data was loaded.
func (d *Domain) HasRoadArea() bool {
	return len(d.RoadArea) > 0
}

// Validate checks that the mask and road grids match the geometry.
func (d *Domain) Validate() error {
	if d.NX <= 0 || d.NY <= 0 {
		return sederr.ConfigInvalidValue("nx/ny", fmt.Sprintf("%dx%d", d.NX, d.NY), "grid dimensions must be positive")
	}
	if !(d.DY > 0) {
		return sederr.ConfigInvalidValue("dy", d.DY, "cell size must be positive")
	}
	if err := checkShape("mask", len(d.Mask), func(y int) int { return len(d.Mask[y]) }, d.NX, d.NY); err != nil {
		return err
	}
	if d.HasRoadArea() {
		if err := checkShape("road_area", len(d.RoadArea), func(y int) int { return len(d.RoadArea[y]) }, d.NX, d.NY); err != nil {
			return err
		}
	}
	return nil
}

func checkShape(field string, rows int, cols func(int) int, nx, ny int) error {
	if rows != ny {
		return sederr.MalformedValue(DomainSection, field, fmt.Sprintf("%d rows", rows), fmt.Sprintf("%d rows", ny))
	}
	for y := 0; y < rows; y++ {
		if cols(y) != nx {
			return sederr.MalformedValue(DomainSection, field, fmt.Sprintf("%d columns in row %d", cols(y), y), fmt.Sprintf("%d columns", nx))
		}
	}
	return nil
}

// ParseDomain decodes and validates a YAML domain description.
func ParseDomain(data []byte) (*Domain, error) {
	return parseDomain("", data)
}

func parseDomain(path string, data []byte) (*Domain, error) {
	var d Domain
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, sederr.ParseError(path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDomain reads a YAML domain file.
func LoadDomain(path string) (*Domain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sederr.IOFileNotFound(path)
		}
		return nil, sederr.IOReadError(path, err)
	}
	d, err := parseDomain(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
