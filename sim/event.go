package sim

import "github.com/sirupsen/logrus"

// EventType names the kind of state transition an event performs.
type EventType string

const (
	EventTypeArrival   EventType = "Arrival"
	EventTypeDeparture EventType = "Departure"
	EventTypeSample    EventType = "Sample"
)

// Event defines the interface for all simulation events.
// The scheduler owns the event's time; Execute advances simulation state
// at that time and may schedule further events.
type Event interface {
	Type() EventType
	Execute(*Simulator)
}

// ArrivalEvent represents a passenger reaching the check-in area.
type ArrivalEvent struct {
	Passenger *Passenger
}

func (e *ArrivalEvent) Type() EventType { return EventTypeArrival }

// Execute queues the passenger and attempts a dispatch.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	now := sim.Scheduler.Now()
	logrus.Debugf("<< Arrival: %s passenger %d at %.3fs", e.Passenger.Class, e.Passenger.ID, now)
	sim.Airport.HandleArrival(now, e.Passenger)
}

// DepartureEvent represents a server finishing with its current passenger.
type DepartureEvent struct {
	Server    *Server
	Passenger *Passenger
}

func (e *DepartureEvent) Type() EventType { return EventTypeDeparture }

// Execute completes the service and lets the server call the next passenger.
func (e *DepartureEvent) Execute(sim *Simulator) {
	now := sim.Scheduler.Now()
	logrus.Debugf("<< Departure: passenger %d from server %d at %.3fs", e.Passenger.ID, e.Server.ID, now)
	if e.Server.Current != e.Passenger {
		violate("DepartureEvent.Execute", "server %d is not serving passenger %d", e.Server.ID, e.Passenger.ID)
	}
	e.Server.Finish(now)
}

// SampleEvent records the current class queue lengths and re-arms itself
// while passengers remain in the system and some other event is pending.
// Without the second condition, passengers stranded in a queue with no server
// would keep the sampler alive forever.
type SampleEvent struct {
	Interval float64
}

func (e *SampleEvent) Type() EventType { return EventTypeSample }

// Execute takes one queue-length sample.
func (e *SampleEvent) Execute(sim *Simulator) {
	economy := sim.Airport.Queue(Economy).Len()
	business := sim.Airport.Queue(Business).Len()
	sim.Stats.Sample(economy, business)
	if sim.Airport.Active() > 0 && sim.Scheduler.Pending() > 0 {
		sim.Scheduler.Schedule(e.Interval, e)
	}
}
