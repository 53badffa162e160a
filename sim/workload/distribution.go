package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// minServiceTime is the shortest service a generated passenger asks for.
// Input records with a non-positive service are dropped by the loader, so the
// generator never emits one.
const minServiceTime = 1e-3

// ServiceSampler generates service durations in seconds.
type ServiceSampler interface {
	// Sample returns a positive duration (>= minServiceTime).
	Sample(rng *rand.Rand) float64
}

// GaussianSampler produces clamped Gaussian service times.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     float64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) float64 {
	if s.min == s.max {
		return floorService(s.min)
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	return floorService(math.Min(s.max, math.Max(s.min, val)))
}

// ExponentialSampler produces exponentially-distributed service times.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return floorService(rng.ExpFloat64() * s.mean)
}

// LogNormalSampler produces service times X = exp(mu + sigma * Z).
type LogNormalSampler struct {
	mu    float64 // mean of ln(X)
	sigma float64 // std dev of ln(X)
}

func (s *LogNormalSampler) Sample(rng *rand.Rand) float64 {
	val := math.Exp(s.mu + s.sigma*rng.NormFloat64())
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return minServiceTime
	}
	return floorService(val)
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value float64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 {
	return floorService(s.value)
}

func floorService(v float64) float64 {
	if v < minServiceTime {
		return minServiceTime
	}
	return v
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewServiceSampler creates a ServiceSampler from a DistSpec.
func NewServiceSampler(spec DistSpec) (ServiceSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		return &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    spec.Params["min"],
			max:    spec.Params["max"],
		}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "lognormal":
		if err := requireParam(spec.Params, "mu", "sigma"); err != nil {
			return nil, err
		}
		return &LogNormalSampler{mu: spec.Params["mu"], sigma: spec.Params["sigma"]}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: spec.Params["value"]}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
