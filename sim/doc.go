// Package sim provides the discrete-event simulation engine for airport-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - queue.go: PriorityQueue, the comparator-driven binary heap used for both
//     the class queues and the pending-event set
//   - scheduler.go / event.go: the virtual clock and the event types that drive it
//     (Arrival, Departure, Sample)
//   - server.go: the Idle/Serving state machine of a single check-in server
//   - airport.go: the dispatcher that owns the class queues and the server pool
//   - simulator.go: the simulation context and its event loop
//
// # Architecture
//
// The sim package defines the core types; collaborators live in sub-packages:
//   - sim/workload/: input file loading and synthetic workload generation
//   - sim/report/: rendering of the final Report (text, JSON, YAML)
//   - sim/trace/: optional dispatch decision recording
//
// # Key Interfaces
//
//   - Event: a future state transition executed against the Simulator
//   - CompletionObserver: notified by a Server when a passenger departs
//   - DispatchPolicy: chooses the idle server that answers an arrival
//
// Simulated time is float64 seconds from the start of the run. Nothing in this
// package reads the wall clock.
package sim
