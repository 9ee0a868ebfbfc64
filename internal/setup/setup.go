// Package setup runs the sediment component's initialization stages in
// order and collects their results.
//
// Every stage returns an error instead of aborting. Run stops at the first
// one and returns it, so a run with ambiguous input never proceeds.
package setup

import (
	"io"
	"log/slog"

	"github.com/sedstack/sedinit/internal/alloc"
	"github.com/sedstack/sedinit/internal/config"
	"github.com/sedstack/sedinit/internal/grid"
	"github.com/sedstack/sedinit/internal/logging"
	"github.com/sedstack/sedinit/internal/options"
	"github.com/sedstack/sedinit/internal/roads"
	"github.com/sedstack/sedinit/internal/schedule"
	"github.com/sedstack/sedinit/internal/sediment"
)

// Result is the state later simulation stages consume. It is built once and
// not modified afterwards.
type Result struct {
	Options   options.Options
	Geometry  grid.Geometry
	Params    sediment.Parameters
	Diameters []float64

	// Roads is nil unless road routing is enabled.
	Roads *roads.Cells
	// Schedule is nil unless surface erosion is enabled.
	Schedule *schedule.Schedule
}

// Setup carries the collaborators shared by every stage.
type Setup struct {
	// Out receives human-readable progress notices.
	Out    io.Writer
	Logger *slog.Logger
	// Guard bounds buffer requests; the zero value means alloc.Default().
	Guard alloc.Guard
	// NumSizes is the number of particle size classes; zero means
	// sediment.NumSizes.
	NumSizes int
}

// New returns a Setup using the tool configuration's limits.
func New(cfg *config.Config, out io.Writer, logger *slog.Logger) *Setup {
	return &Setup{
		Out:    out,
		Logger: logger,
		Guard:  alloc.FromConfig(cfg),
	}
}

// Run reads the model input and initializes the sediment component over the
// given domain.
func (s *Setup) Run(store config.Store, domain *grid.Domain) (*Result, error) {
	if err := domain.Validate(); err != nil {
		return nil, err
	}

	logger := s.logger()
	guard := s.guard()
	net := roads.NewNetwork(domain.RoadArea)

	logging.WithStage(logger, "options").Debug("resolving process options", "road_network", net.Loaded())
	resolver := &options.Resolver{Out: s.Out, Logger: logger}
	opts, err := resolver.Resolve(store, net.Loaded())
	if err != nil {
		return nil, err
	}

	res := &Result{Options: opts, Geometry: domain.Geometry}

	if opts.RoadRouting {
		a := &roads.Allocator{Guard: guard, Logger: logging.WithStage(logger, "roads")}
		if res.Roads, err = a.Allocate(domain.Geometry, domain, net); err != nil {
			return nil, err
		}
	}

	if err := res.Geometry.DeriveFine(store); err != nil {
		return nil, err
	}
	logging.WithStage(logger, "grid").Debug("fine grid derived",
		"dmass", res.Geometry.DMASS, "nx_fine", res.Geometry.NXFine, "ny_fine", res.Geometry.NYFine)

	if res.Params, err = sediment.ReadParameters(store); err != nil {
		return nil, err
	}
	res.Diameters = sediment.Diameters(res.Params, s.numSizes())
	logging.WithStage(logger, "sediment").Debug("sediment diameters distributed", "diameters", res.Diameters)

	if opts.SurfaceErosion {
		p := &schedule.Parser{Guard: guard, Logger: logging.WithStage(logger, "schedule")}
		if res.Schedule, err = p.Parse(store); err != nil {
			return nil, err
		}
	}

	res.Options.InitSedFlag = res.Options.SurfaceErosion
	return res, nil
}

func (s *Setup) numSizes() int {
	if s.NumSizes > 0 {
		return s.NumSizes
	}
	return sediment.NumSizes
}

func (s *Setup) guard() alloc.Guard {
	if s.Guard.Max == 0 {
		return alloc.Default()
	}
	return s.Guard
}

func (s *Setup) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
