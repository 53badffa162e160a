package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/airport-sim/sim/trace"
)

// stopper is the part of EventScheduler the airport uses to end the run.
type stopper interface {
	Stop()
}

// Airport is the dispatcher: it owns one ClassQueue per fare class and the
// whole server pool, and it is the CompletionObserver of every server.
//
// Servers are created economy first, then business, with IDs 0..n-1.
type Airport struct {
	queues  [numFareClasses]*ClassQueue
	servers []*Server
	byClass [numFareClasses][]*Server

	policy  DispatchPolicy
	stats   *StatsCollector
	trace   *trace.SimulationTrace // nil when tracing is off
	stopper stopper

	active     int // passengers admitted but not yet departed
	finished   bool
	finishedAt float64

	hooks []func(*Passenger)
}

// NewAirport creates the queues and servers. Servers start Idle at the
// scheduler's current time and schedule their departures on it.
func NewAirport(servers ServerConfig, policy DispatchPolicy, stats *StatsCollector, scheduler *EventScheduler, tr *trace.SimulationTrace) *Airport {
	a := &Airport{
		policy:  policy,
		stats:   stats,
		trace:   tr,
		stopper: scheduler,
	}
	for _, c := range FareClasses {
		a.queues[c] = NewClassQueue()
	}
	id := 0
	for _, c := range FareClasses {
		for i := 0; i < servers.Count(c); i++ {
			s := NewServer(id, c, a.queues[c], scheduler, a, scheduler.Now())
			a.servers = append(a.servers, s)
			a.byClass[c] = append(a.byClass[c], s)
			id++
		}
	}
	return a
}

// Admit registers n more passengers that will arrive and must be served
// before the airport reports completion.
func (a *Airport) Admit(n int) {
	a.active += n
}

// Queue returns the waiting line of class c.
func (a *Airport) Queue(c FareClass) *ClassQueue {
	return a.queues[c]
}

// Servers returns the whole pool in ID order.
func (a *Airport) Servers() []*Server {
	return a.servers
}

// ServersFor returns the servers bound to class c.
func (a *Airport) ServersFor(c FareClass) []*Server {
	return a.byClass[c]
}

// Active returns the number of admitted passengers that have not departed.
func (a *Airport) Active() int {
	return a.active
}

// Finished reports whether every admitted passenger has departed.
func (a *Airport) Finished() bool {
	return a.finished
}

// FinishedAt returns the time of the last departure. Only meaningful once Finished.
func (a *Airport) FinishedAt() float64 {
	return a.finishedAt
}

// OnServed registers fn to be called after each completed service.
func (a *Airport) OnServed(fn func(*Passenger)) {
	a.hooks = append(a.hooks, fn)
}

// HandleArrival queues p in its class queue, records the new queue length,
// and asks the dispatch policy for a server to call it.
func (a *Airport) HandleArrival(now float64, p *Passenger) {
	q := a.queues[p.Class]
	p.EnqueueTime = now
	q.Push(p)
	a.stats.RecordQueueLength(p.Class, q.Len())

	decision := a.policy.Select(p, a.servers)
	served := false
	if decision.Server != nil {
		served = decision.Server.CallNextPassenger(now)
	}
	logrus.Debugf("[%.3fs] dispatch %s passenger %d: %s", now, p.Class, p.ID, decision.Reason)

	if a.trace != nil {
		record := trace.DispatchRecord{
			PassengerID:  p.ID,
			Class:        p.Class.String(),
			Clock:        now,
			Policy:       a.policy.Name(),
			ChosenServer: trace.NoServer,
			Served:       served,
			Reason:       decision.Reason,
		}
		if decision.Server != nil {
			record.ChosenServer = decision.Server.ID
			record.ServerClass = decision.Server.Class.String()
		}
		a.trace.RecordDispatch(record)
	}
}

// OnPassengerServed implements CompletionObserver. When the last admitted
// passenger departs the airport is marked finished and the scheduler stopped.
func (a *Airport) OnPassengerServed(p *Passenger, completionTime float64) {
	if a.active <= 0 {
		violate("Airport.OnPassengerServed", "passenger %d departed with no active passengers", p.ID)
	}
	a.stats.RecordCompletion(p, completionTime)
	a.trace.RecordService(trace.ServiceRecord{
		PassengerID:     p.ID,
		Class:           p.Class.String(),
		ServerID:        p.ServerID,
		EnqueueClock:    p.EnqueueTime,
		DispatchClock:   p.DispatchTime,
		CompletionClock: completionTime,
		Wait:            p.WaitTime,
	})
	for _, fn := range a.hooks {
		fn(p)
	}

	a.active--
	if a.active == 0 {
		a.finished = true
		a.finishedAt = completionTime
		logrus.Infof("[%.3fs] Finished processing all passengers", completionTime)
		a.stopper.Stop()
	}
}
