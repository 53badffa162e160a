// Defines FareClass and the Passenger struct that models a single traveller in the simulation.
// Tracks arrival, queueing and dispatch timestamps for wait-time statistics.

package sim

import (
	"fmt"
	"math"
)

// FareClass selects the queue a passenger joins and the servers allowed to serve it.
type FareClass int

const (
	Economy FareClass = iota
	Business

	numFareClasses = 2
)

// FareClasses lists every class in report order.
var FareClasses = [numFareClasses]FareClass{Economy, Business}

func (c FareClass) String() string {
	switch c {
	case Economy:
		return "economy"
	case Business:
		return "business"
	default:
		return fmt.Sprintf("FareClass(%d)", int(c))
	}
}

// Valid reports whether c is a known class.
func (c FareClass) Valid() bool {
	return c == Economy || c == Business
}

// ParseFareClass maps an input class code (0 economy, 1 business) to a FareClass.
func ParseFareClass(code int) (FareClass, error) {
	c := FareClass(code)
	if !c.Valid() {
		return 0, fmt.Errorf("unknown class code %d", code)
	}
	return c, nil
}

// PassengerRecord is one accepted input line, as handed to NewSimulator.
type PassengerRecord struct {
	Class       FareClass
	ArrivalTime float64 // seconds after simulation start
	ServiceTime float64 // seconds, must be > 0
}

func (r PassengerRecord) validate(idx int) error {
	switch {
	case !r.Class.Valid():
		return &ValidationError{Field: "class", Index: idx, Reason: fmt.Sprintf("%d is not a fare class", int(r.Class))}
	case math.IsNaN(r.ArrivalTime) || math.IsInf(r.ArrivalTime, 0):
		return &ValidationError{Field: "arrival time", Index: idx, Reason: "must be finite"}
	case r.ArrivalTime < 0:
		return &ValidationError{Field: "arrival time", Index: idx, Reason: fmt.Sprintf("%g is negative", r.ArrivalTime)}
	case math.IsNaN(r.ServiceTime) || math.IsInf(r.ServiceTime, 0):
		return &ValidationError{Field: "service time", Index: idx, Reason: "must be finite"}
	case r.ServiceTime <= 0:
		return &ValidationError{Field: "service time", Index: idx, Reason: fmt.Sprintf("%g is not positive", r.ServiceTime)}
	}
	return nil
}

// Passenger models a single passenger's lifecycle:
// arrival -> queued in its ClassQueue -> served by one Server -> departed.
// A passenger is held by exactly one queue or server at a time.
type Passenger struct {
	ID    int
	Class FareClass

	ArrivalTime float64 // scheduled arrival, seconds after start
	ServiceTime float64 // time a server spends on this passenger

	EnqueueTime    float64 // set when the passenger joins its class queue
	DispatchTime   float64 // set when a server pops the passenger
	WaitTime       float64 // DispatchTime - EnqueueTime
	CompletionTime float64 // set when the departure event fires

	ServerID int // server that served the passenger, -1 until dispatched
}

// NewPassenger creates a passenger from an accepted input record.
func NewPassenger(id int, r PassengerRecord) *Passenger {
	return &Passenger{
		ID:          id,
		Class:       r.Class,
		ArrivalTime: r.ArrivalTime,
		ServiceTime: r.ServiceTime,
		ServerID:    -1,
	}
}

// This method returns a human-readable string representation of a Passenger.
func (p Passenger) String() string {
	return fmt.Sprintf("Passenger: (ID: %d, Class: %s, ArrivalTime: %g, ServiceTime: %g)", p.ID, p.Class, p.ArrivalTime, p.ServiceTime)
}

// ClassQueue is the waiting line of one fare class, ordered by arrival time.
// Passengers arriving at the same instant are served in arrival-event order.
type ClassQueue = PriorityQueue[*Passenger, int]

// NewClassQueue creates an empty queue keyed by passenger ID.
func NewClassQueue() *ClassQueue {
	return NewPriorityQueue(
		func(a, b *Passenger) bool { return a.ArrivalTime < b.ArrivalTime },
		func(p *Passenger) int { return p.ID },
	)
}
