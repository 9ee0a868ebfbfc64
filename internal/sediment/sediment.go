// Package sediment reads the sediment calibration constants and splits the
// sediment mass into representative particle diameters.
package sediment

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sedstack/sedinit/internal/config"
	sederr "github.com/sedstack/sedinit/internal/errors"
)

// Section holds the calibration keys.
const Section = "PARAMETERS"

const (
	KeyMaxIterations = "MAXIMUM ITERATIONS"
	KeyChannelD50    = "CHANNEL PARENT D50"
	KeyChannelD90    = "CHANNEL PARENT D90"
	KeyDebrisD50     = "DEBRIS FLOW D50"
	KeyDebrisD90     = "DEBRIS FLOW D90"
)

// NumSizes is the default number of particle size classes.
const NumSizes = 4

// Population is a sediment source described by two mass percentiles.
type Population struct {
	D50 float64 `yaml:"d50"`
	D90 float64 `yaml:"d90"`
}

// Parameters are the calibration constants read once at setup and shared
// read-only with the stages that need them.
type Parameters struct {
	MaxIterations float64    `yaml:"max_iterations"`
	Channel       Population `yaml:"channel"`
	Debris        Population `yaml:"debris_flow"`
}

// ReadParameters reads every calibration constant. Each key is required.
func ReadParameters(store config.Store) (Parameters, error) {
	var p Parameters
	fields := []struct {
		key string
		dst *float64
	}{
		{KeyMaxIterations, &p.MaxIterations},
		{KeyChannelD50, &p.Channel.D50},
		{KeyChannelD90, &p.Channel.D90},
		{KeyDebrisD50, &p.Debris.D50},
		{KeyDebrisD90, &p.Debris.D90},
	}
	for _, f := range fields {
		v, err := config.Float(store, Section, f.key)
		if err != nil {
			return Parameters{}, err
		}
		*f.dst = v
	}
	if err := p.Channel.check(KeyChannelD50, KeyChannelD90); err != nil {
		return Parameters{}, err
	}
	if err := p.Debris.check(KeyDebrisD50, KeyDebrisD90); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

func (p Population) check(key50, key90 string) error {
	if !(p.D50 > 0) {
		return sederr.MalformedValue(Section, key50, format(p.D50), "a positive diameter")
	}
	if !(p.D90 > p.D50) {
		return sederr.MalformedValue(Section, key90, format(p.D90), "a diameter larger than D50")
	}
	return nil
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// z90 is the standard normal deviate of the 90th percentile.
var z90 = distuv.UnitNormal.Quantile(0.9)

// Distribution returns the lognormal fitted through D50 and D90.
func (p Population) Distribution() distuv.LogNormal {
	mu := math.Log(p.D50)
	return distuv.LogNormal{
		Mu:    mu,
		Sigma: (math.Log(p.D90) - mu) / z90,
	}
}

// Diameters returns n representative diameters for the equal-weight mixture
// of the channel and debris-flow populations. Class k covers mass fractions
// [k/n, (k+1)/n) and is represented by the mixture quantile at its midpoint,
// so the result is strictly increasing and spans both populations.
func Diameters(p Parameters, n int) []float64 {
	pops := []distuv.LogNormal{p.Channel.Distribution(), p.Debris.Distribution()}
	out := make([]float64, n)
	for k := range out {
		out[k] = mixtureQuantile(pops, (float64(k)+0.5)/float64(n))
	}
	return out
}

// mixtureQuantile inverts the mixture CDF by bisection in log space. The
// quantile lies between the smallest and largest component quantiles.
func mixtureQuantile(pops []distuv.LogNormal, q float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range pops {
		x := d.Quantile(q)
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	lo, hi = math.Log(lo), math.Log(hi)
	for i := 0; i < 200 && hi-lo > 1e-12; i++ {
		mid := 0.5 * (lo + hi)
		if mixtureCDF(pops, math.Exp(mid)) < q {
			lo = mid
		} else {
			hi = mid
		}
	}
	return math.Exp(0.5 * (lo + hi))
}

func mixtureCDF(pops []distuv.LogNormal, x float64) float64 {
	var sum float64
	for _, d := range pops {
		sum += d.CDF(x)
	}
	return sum / float64(len(pops))
}
