// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/airport-sim/sim/trace"
)

// simulationStart is the simulated time every run begins at.
const simulationStart = 0.0

// Simulator is the simulation context: it owns the clock, the airport and the
// statistics of one run. Independent Simulators share no state.
type Simulator struct {
	Config     Config
	Scheduler  *EventScheduler
	Airport    *Airport
	Stats      *StatsCollector
	Trace      *trace.SimulationTrace // nil unless tracing is enabled
	Passengers []*Passenger           // accepted passengers in input order

	ran bool
}

// NewSimulator validates cfg and records and schedules one arrival per record.
// A zero SampleInterval or empty DispatchPolicy takes the default.
// Any invalid record or setting is rejected with a *ValidationError before any
// state is built.
func NewSimulator(cfg Config, records []PassengerRecord) (*Simulator, error) {
	if cfg.DispatchPolicy == "" {
		cfg.DispatchPolicy = DispatchClassBound
	}
	if cfg.SampleInterval == 0 {
		cfg.SampleInterval = DefaultSampleInterval
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, r := range records {
		if err := r.validate(i); err != nil {
			return nil, err
		}
	}
	policy, err := NewDispatchPolicy(cfg.DispatchPolicy)
	if err != nil {
		return nil, newConfigError("dispatch policy", err.Error())
	}

	s := &Simulator{
		Config:     cfg,
		Scheduler:  NewEventScheduler(simulationStart),
		Stats:      NewStatsCollector(),
		Passengers: make([]*Passenger, 0, len(records)),
	}
	if cfg.Trace.Enabled() {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	s.Airport = NewAirport(cfg.Servers, policy, s.Stats, s.Scheduler, s.Trace)

	for i, r := range records {
		p := NewPassenger(i, r)
		s.Passengers = append(s.Passengers, p)
		s.Scheduler.ScheduleAt(simulationStart+r.ArrivalTime, &ArrivalEvent{Passenger: p})
	}
	s.Airport.Admit(len(s.Passengers))

	for _, c := range FareClasses {
		if n := s.countClass(c); n > 0 && cfg.Servers.Count(c) == 0 {
			logrus.Warnf("%d %s passengers but no %s servers: they will never be served", n, c, c)
		}
	}
	return s, nil
}

// OnComplete registers fn to be called with every departing passenger.
func (sim *Simulator) OnComplete(fn func(*Passenger)) {
	sim.Airport.OnServed(fn)
}

// Run executes events in time order until the airport signals that every
// passenger has departed or no events remain. It returns the final Report.
// A Simulator can be run once.
func (sim *Simulator) Run(ctx context.Context) (Report, error) {
	if sim.ran {
		return Report{}, errors.New("simulator already ran")
	}
	sim.ran = true

	logrus.Infof("Starting simulation with %d economy / %d business servers, %d passengers, policy=%s",
		sim.Config.Servers.Economy, sim.Config.Servers.Business, len(sim.Passengers), sim.Config.DispatchPolicy)

	if sim.Airport.Active() == 0 {
		sim.Scheduler.Stop()
	} else {
		sim.Scheduler.Schedule(sim.Config.SampleInterval, &SampleEvent{Interval: sim.Config.SampleInterval})
	}

	for !sim.Scheduler.Stopped() {
		if err := ctx.Err(); err != nil {
			return Report{}, fmt.Errorf("simulation interrupted at %gs: %w", sim.Scheduler.Now(), err)
		}
		ev, ok := sim.Scheduler.Next()
		if !ok {
			break
		}
		logrus.Tracef("[t=%.3f] Executing %T", ev.Time, ev.Event)
		ev.Event.Execute(sim)
	}

	if !sim.Airport.Finished() && sim.Airport.Active() > 0 {
		logrus.Warnf("[%.3fs] Event queue drained with %d passengers unserved", sim.Scheduler.Now(), sim.Airport.Active())
	}
	logrus.Infof("[%.3fs] Simulation ended after %d events", sim.Scheduler.Now(), sim.Scheduler.Dispatched())
	return sim.Report(), nil
}

// Report builds the statistics snapshot at the current clock.
func (sim *Simulator) Report() Report {
	r := sim.Stats.Report(sim.Airport.Servers(), sim.Scheduler.Now())
	r.Finished = sim.Airport.Active() == 0
	r.Unserved = sim.Airport.Active()
	return r
}

func (sim *Simulator) countClass(c FareClass) int {
	n := 0
	for _, p := range sim.Passengers {
		if p.Class == c {
			n++
		}
	}
	return n
}
