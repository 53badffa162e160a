package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{
		PassengerID:  1,
		Class:        "economy",
		Clock:        2.5,
		Policy:       "class-bound",
		ChosenServer: 0,
		ServerClass:  "economy",
		Served:       true,
		Reason:       "idle economy server",
	})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].PassengerID != 1 {
		t.Errorf("expected passenger 1, got %d", st.Dispatches[0].PassengerID)
	}
	if !st.Dispatches[0].Served {
		t.Error("expected served=true")
	}
}

func TestSimulationTrace_RecordService_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a service record is recorded
	st.RecordService(ServiceRecord{
		PassengerID:     4,
		Class:           "business",
		ServerID:        2,
		EnqueueClock:    1,
		DispatchClock:   3,
		CompletionClock: 5,
		Wait:            2,
	})

	// THEN the trace contains one service record with correct data
	if len(st.Services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(st.Services))
	}
	if st.Services[0].ServerID != 2 {
		t.Errorf("expected server 2, got %d", st.Services[0].ServerID)
	}
}

func TestSimulationTrace_NilReceiver_NoPanic(t *testing.T) {
	// GIVEN a nil trace (tracing disabled)
	var st *SimulationTrace

	// WHEN records are appended
	st.RecordDispatch(DispatchRecord{PassengerID: 1})
	st.RecordService(ServiceRecord{PassengerID: 1})

	// THEN nothing happens
	if st != nil {
		t.Error("nil trace must stay nil")
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"", true},
		{"none", true},
		{"decisions", true},
		{"verbose", false},
	}
	for _, tc := range tests {
		if got := IsValidTraceLevel(tc.level); got != tc.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tc.level, got, tc.valid)
		}
	}
}

func TestDispatchRecord_Misdirected(t *testing.T) {
	tests := []struct {
		name   string
		record DispatchRecord
		want   bool
	}{
		{"same class", DispatchRecord{Class: "economy", ChosenServer: 0, ServerClass: "economy"}, false},
		{"other class", DispatchRecord{Class: "economy", ChosenServer: 3, ServerClass: "business"}, true},
		{"no server", DispatchRecord{Class: "economy", ChosenServer: NoServer}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.Misdirected(); got != tc.want {
				t.Errorf("Misdirected() = %v, want %v", got, tc.want)
			}
		})
	}
}
