package sim

import (
	"math"
)

// ScheduledEvent is an Event bound to a simulated time.
// Seq is the schedule order and breaks ties between events at the same time.
type ScheduledEvent struct {
	Time  float64
	Seq   uint64
	Event Event
}

// EventScheduler is the simulation clock: a time-ordered set of pending events.
// Events are handed out in non-decreasing time order; events at the same time
// come out in the order they were scheduled. The clock never moves backwards.
type EventScheduler struct {
	clock      float64
	events     *PriorityQueue[*ScheduledEvent, uint64]
	nextSeq    uint64
	dispatched int
	stopped    bool
}

// NewEventScheduler creates a scheduler whose clock starts at start.
func NewEventScheduler(start float64) *EventScheduler {
	return &EventScheduler{
		clock: start,
		events: NewPriorityQueue(
			func(a, b *ScheduledEvent) bool {
				if a.Time != b.Time {
					return a.Time < b.Time
				}
				return a.Seq < b.Seq
			},
			func(e *ScheduledEvent) uint64 { return e.Seq },
		),
	}
}

// Now returns the current simulated time.
func (s *EventScheduler) Now() float64 {
	return s.clock
}

// Schedule enqueues ev to fire delay seconds from now.
// A negative or non-finite delay is an invariant violation.
func (s *EventScheduler) Schedule(delay float64, ev Event) *ScheduledEvent {
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay < 0 {
		violate("EventScheduler.Schedule", "delay %g for %s event at clock %g", delay, ev.Type(), s.clock)
	}
	return s.push(s.clock+delay, ev)
}

// ScheduleAt enqueues ev at absolute time t, which must not precede the clock.
func (s *EventScheduler) ScheduleAt(t float64, ev Event) *ScheduledEvent {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < s.clock {
		violate("EventScheduler.ScheduleAt", "time %g for %s event precedes clock %g", t, ev.Type(), s.clock)
	}
	return s.push(t, ev)
}

func (s *EventScheduler) push(t float64, ev Event) *ScheduledEvent {
	se := &ScheduledEvent{Time: t, Seq: s.nextSeq, Event: ev}
	s.nextSeq++
	s.events.Push(se)
	return se
}

// Next removes the earliest pending event and advances the clock to its time.
// Returns false when nothing is pending.
func (s *EventScheduler) Next() (*ScheduledEvent, bool) {
	se, ok := s.events.Pop()
	if !ok {
		return nil, false
	}
	if se.Time < s.clock {
		violate("EventScheduler.Next", "time reversal: event %d at %g, clock %g", se.Seq, se.Time, s.clock)
	}
	s.clock = se.Time
	s.dispatched++
	return se, true
}

// Cancel withdraws a pending event by sequence number.
// Returns false if the event already ran or was never scheduled.
func (s *EventScheduler) Cancel(seq uint64) bool {
	_, ok := s.events.Remove(seq)
	return ok
}

// Stop marks the run as complete. Pending events are left in place but the
// event loop will not pop them.
func (s *EventScheduler) Stop() {
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *EventScheduler) Stopped() bool {
	return s.stopped
}

// Pending returns the number of events not yet handed out.
func (s *EventScheduler) Pending() int {
	return s.events.Len()
}

// Dispatched returns the number of events handed out by Next.
func (s *EventScheduler) Dispatched() int {
	return s.dispatched
}
