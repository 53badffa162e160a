package workload

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/airport-sim/sim"
)

// Generate creates a passenger file from a GeneratorSpec.
// Deterministic given the same spec and seed: arrivals, the class of each
// arrival and each class's service times draw from separate RNG subsystems.
// Returns records sorted by arrival time.
func Generate(spec *GeneratorSpec) (*Input, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	mixRNG := rng.ForSubsystem(sim.SubsystemClassMix)
	arrivals := NewArrivalSampler(spec.Arrival, spec.Rate)

	var services [len(sim.FareClasses)]ServiceSampler
	for _, c := range sim.FareClasses {
		sampler, err := NewServiceSampler(spec.class(c).Service)
		if err != nil {
			return nil, fmt.Errorf("%s service distribution: %w", c, err)
		}
		services[c] = sampler
	}

	in := &Input{Servers: sim.NewServerConfig(spec.Servers.Economy, spec.Servers.Business)}
	now := 0.0
	for spec.NumPassengers == 0 || len(in.Records) < spec.NumPassengers {
		now += arrivals.SampleIAT(arrivalRNG)
		if spec.Horizon > 0 && now >= spec.Horizon {
			break
		}
		class := sim.Economy
		if mixRNG.Float64() < spec.BusinessShare {
			class = sim.Business
		}
		service := services[class].Sample(rng.ForSubsystem(sim.SubsystemService(class)))
		in.Records = append(in.Records, sim.PassengerRecord{
			Class:       class,
			ArrivalTime: roundMillis(now),
			ServiceTime: roundMillis(service),
		})
	}

	logrus.Infof("Generated %d passengers over %.3fs (seed=%d)", len(in.Records), now, spec.Seed)
	return in, nil
}

func (s *GeneratorSpec) class(c sim.FareClass) ClassSpec {
	if c == sim.Business {
		return s.Business
	}
	return s.Economy
}

// roundMillis keeps generated files readable; both samplers floor at 1ms so
// a rounded service time is still positive.
func roundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}
