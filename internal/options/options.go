// Package options resolves the sediment process switches.
package options

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sedstack/sedinit/internal/config"
	sederr "github.com/sedstack/sedinit/internal/errors"
)

// Section is the input section holding the process switches.
const Section = "SEDOPTIONS"

// Switch names a process switch by its input key.
type Switch string

const (
	MassWasting    Switch = "MASS WASTING"
	SurfaceErosion Switch = "SURFACE EROSION"
	RoadErosion    Switch = "ROAD EROSION"
	ChannelRouting Switch = "CHANNEL ROUTING"
)

// Switches lists every switch in resolution order.
var Switches = []Switch{MassWasting, SurfaceErosion, RoadErosion, ChannelRouting}

// NoNetworkNotice is printed when road erosion is requested without a road
// network.
const NoNetworkNotice = "Cannot route the road network without the network files!"

// Options holds the resolved process flags.
type Options struct {
	MassWasting    bool `yaml:"mass_wasting"`
	SurfaceErosion bool `yaml:"surface_erosion"`
	// ErosionPeriod mirrors SurfaceErosion: period accounting is active
	// exactly when surface erosion is.
	ErosionPeriod  bool `yaml:"erosion_period"`
	RoadRouting    bool `yaml:"road_routing"`
	ChannelRouting bool `yaml:"channel_routing"`
	// InitSedFlag snapshots SurfaceErosion once setup finishes.
	InitSedFlag bool `yaml:"init_sed_flag"`
}

// ParseFlag resolves a raw switch value. A value starting with "TRUE" is
// true, one starting with "FALSE" is false, and anything else is an error
// naming the key.
func ParseFlag(section, key, value string) (bool, error) {
	switch {
	case strings.HasPrefix(value, "TRUE"):
		return true, nil
	case strings.HasPrefix(value, "FALSE"):
		return false, nil
	default:
		return false, sederr.MalformedValue(section, key, value, "TRUE or FALSE")
	}
}

// Resolver turns the SEDOPTIONS switches into Options.
type Resolver struct {
	// Out receives progress notices for enabled processes.
	Out    io.Writer
	Logger *slog.Logger
}

// Resolve reads and resolves all four switches. haveNetwork reports whether
// the road network was loaded; without it road routing is forced off.
func (r *Resolver) Resolve(store config.Store, haveNetwork bool) (Options, error) {
	var opts Options
	for _, sw := range Switches {
		raw, err := store.GetString(Section, string(sw), "")
		if err != nil {
			return Options{}, err
		}
		on, err := ParseFlag(Section, string(sw), raw)
		if err != nil {
			return Options{}, err
		}
		r.apply(&opts, sw, on, haveNetwork)
	}
	return opts, nil
}

func (r *Resolver) apply(opts *Options, sw Switch, on, haveNetwork bool) {
	switch sw {
	case MassWasting:
		opts.MassWasting = on
		if on {
			r.notice("Sediment Mass Wasting component will be run")
		}
	case SurfaceErosion:
		opts.SurfaceErosion = on
		opts.ErosionPeriod = on
		if on {
			r.notice("Sediment Surface Erosion component will be run")
		}
	case RoadErosion:
		if on && !haveNetwork {
			r.notice(NoNetworkNotice)
			r.logger().Warn("road erosion disabled", "reason", "no road network loaded")
			on = false
		}
		opts.RoadRouting = on
		if on {
			r.notice("Sediment Road Erosion component will be run")
		}
	case ChannelRouting:
		opts.ChannelRouting = on
		if on {
			r.notice("Sediment Channel Routing component will be run")
		}
	}
}

func (r *Resolver) notice(msg string) {
	if r.Out != nil {
		fmt.Fprintln(r.Out, msg)
	}
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}
