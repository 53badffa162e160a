package sim

import "fmt"

const (
	// DispatchClassBound answers an arrival with an idle server of the arriving
	// passenger's class.
	DispatchClassBound = "class-bound"
	// DispatchFirstReady answers an arrival with the first idle server of any
	// class. A server of the wrong class then finds its own queue empty and the
	// arrival is left waiting for the next departure of its class.
	DispatchFirstReady = "first-ready"
)

// ValidDispatchPolicies is the set of recognized dispatch policy names.
var ValidDispatchPolicies = map[string]bool{"": true, DispatchClassBound: true, DispatchFirstReady: true}

// DispatchDecision is the outcome of a DispatchPolicy for one arrival.
type DispatchDecision struct {
	Server *Server // nil when no server is asked
	Reason string
}

// DispatchPolicy picks the idle server that is asked to call the next
// passenger after p has joined its queue. servers is the whole pool in ID order.
type DispatchPolicy interface {
	Name() string
	Select(p *Passenger, servers []*Server) DispatchDecision
}

// NewDispatchPolicy creates a policy by name. Empty selects class-bound.
func NewDispatchPolicy(name string) (DispatchPolicy, error) {
	switch name {
	case "", DispatchClassBound:
		return &ClassBound{}, nil
	case DispatchFirstReady:
		return &FirstReady{}, nil
	default:
		return nil, fmt.Errorf("unknown dispatch policy %q", name)
	}
}

// ClassBound scans only the servers bound to the passenger's class.
// Ties are broken by lowest server ID.
type ClassBound struct{}

func (cb *ClassBound) Name() string { return DispatchClassBound }

// Select implements DispatchPolicy for ClassBound.
func (cb *ClassBound) Select(p *Passenger, servers []*Server) DispatchDecision {
	for _, s := range servers {
		if s.Class == p.Class && s.IsIdle() {
			return DispatchDecision{Server: s, Reason: fmt.Sprintf("idle %s server", s.Class)}
		}
	}
	return DispatchDecision{Reason: fmt.Sprintf("no idle %s server", p.Class)}
}

// FirstReady reproduces the historical scan over the whole pool.
type FirstReady struct{}

func (fr *FirstReady) Name() string { return DispatchFirstReady }

// Select implements DispatchPolicy for FirstReady.
func (fr *FirstReady) Select(p *Passenger, servers []*Server) DispatchDecision {
	for _, s := range servers {
		if s.IsIdle() {
			return DispatchDecision{Server: s, Reason: fmt.Sprintf("first idle server (%s)", s.Class)}
		}
	}
	return DispatchDecision{Reason: "no idle server"}
}
