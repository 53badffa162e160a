// Package trace provides decision-trace recording for dispatch analysis.
// This package has no dependencies on sim/ and it stores pure data types.
package trace

// NoServer marks a dispatch record where the policy asked no server.
const NoServer = -1

// DispatchRecord captures a single dispatch policy decision made on arrival.
type DispatchRecord struct {
	PassengerID  int
	Class        string
	Clock        float64
	Policy       string
	ChosenServer int    // NoServer if the policy found no idle server
	ServerClass  string // class of ChosenServer, empty if none
	Served       bool   // whether the chosen server started serving someone
	Reason       string
}

// Misdirected reports whether the policy asked a server of another class.
func (r DispatchRecord) Misdirected() bool {
	return r.ChosenServer != NoServer && r.ServerClass != r.Class
}

// ServiceRecord captures one completed service.
type ServiceRecord struct {
	PassengerID     int
	Class           string
	ServerID        int
	EnqueueClock    float64
	DispatchClock   float64
	CompletionClock float64
	Wait            float64
}
