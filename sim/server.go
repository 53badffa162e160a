package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ServerState is the state of a check-in server.
type ServerState string

const (
	ServerIdle    ServerState = "idle"
	ServerServing ServerState = "serving"
)

// CompletionObserver is told about every passenger a server finishes.
type CompletionObserver interface {
	OnPassengerServed(p *Passenger, completionTime float64)
}

// departureScheduler is the part of EventScheduler a server needs.
type departureScheduler interface {
	Schedule(delay float64, ev Event) *ScheduledEvent
}

// Server is a check-in desk bound for its whole life to one ClassQueue.
//
// State machine:
//
//	Idle    --CallNextPassenger (queue non-empty)--> Serving
//	Serving --departure, queue non-empty-----------> Serving (next passenger, same instant)
//	Serving --departure, queue empty---------------> Idle
//
// idleSince is meaningful only while Idle.
type Server struct {
	ID    int
	Class FareClass
	State ServerState

	TotalIdleTime float64    // closed idle intervals only
	Served        int        // passengers completed by this server
	Current       *Passenger // passenger being served, nil while Idle

	idleSince float64
	queue     *ClassQueue
	scheduler departureScheduler
	observer  CompletionObserver
}

// NewServer creates an Idle server bound to queue, idle since start.
func NewServer(id int, class FareClass, queue *ClassQueue, scheduler departureScheduler, observer CompletionObserver, start float64) *Server {
	if queue == nil || scheduler == nil || observer == nil {
		panic("NewServer: queue, scheduler and observer must not be nil")
	}
	return &Server{
		ID:        id,
		Class:     class,
		State:     ServerIdle,
		idleSince: start,
		queue:     queue,
		scheduler: scheduler,
		observer:  observer,
	}
}

// IsIdle reports whether the server can take a passenger.
func (s *Server) IsIdle() bool {
	return s.State == ServerIdle
}

// IdleSince returns the start of the open idle interval, if the server is Idle.
func (s *Server) IdleSince() (float64, bool) {
	if s.State != ServerIdle {
		return 0, false
	}
	return s.idleSince, true
}

// IdleTimeAt returns the idle time accumulated up to now, including the open
// interval if the server is currently Idle.
func (s *Server) IdleTimeAt(now float64) float64 {
	if s.State == ServerIdle && now > s.idleSince {
		return s.TotalIdleTime + (now - s.idleSince)
	}
	return s.TotalIdleTime
}

// CallNextPassenger pops the next passenger of the bound queue and starts
// serving it, scheduling its departure. With an empty queue the server stays
// (or becomes) Idle and CallNextPassenger returns false.
func (s *Server) CallNextPassenger(now float64) bool {
	if s.State == ServerServing {
		violate("Server.CallNextPassenger", "server %d is already serving passenger %d", s.ID, s.Current.ID)
	}
	p, ok := s.queue.Pop()
	if !ok {
		return false
	}
	if p.Class != s.Class {
		violate("Server.CallNextPassenger", "%s server %d popped %s passenger %d", s.Class, s.ID, p.Class, p.ID)
	}
	if p.ServiceTime <= 0 {
		violate("Server.CallNextPassenger", "passenger %d has service time %g", p.ID, p.ServiceTime)
	}

	p.DispatchTime = now
	p.WaitTime = now - p.EnqueueTime
	p.ServerID = s.ID

	s.TotalIdleTime += now - s.idleSince
	s.State = ServerServing
	s.Current = p

	logrus.Debugf("[%.3fs] server %d (%s) serving passenger %d, waited %.3fs", now, s.ID, s.Class, p.ID, p.WaitTime)
	s.scheduler.Schedule(p.ServiceTime, &DepartureEvent{Server: s, Passenger: p})
	return true
}

// Finish completes the current passenger at now and immediately calls the
// next passenger. The observer is notified while the server is still Serving.
// If nobody is waiting the server becomes Idle from now.
func (s *Server) Finish(now float64) {
	if s.State != ServerServing || s.Current == nil {
		violate("Server.Finish", "server %d has no passenger in service", s.ID)
	}
	p := s.Current
	p.CompletionTime = now
	s.Served++
	s.observer.OnPassengerServed(p, now)

	s.Current = nil
	s.State = ServerIdle
	s.idleSince = now
	s.CallNextPassenger(now)
}

func (s *Server) String() string {
	return fmt.Sprintf("Server: (ID: %d, Class: %s, State: %s, IdleTime: %g)", s.ID, s.Class, s.State, s.TotalIdleTime)
}
