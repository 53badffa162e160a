package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 {
		t.Errorf("expected 0 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AnsweredCount != 0 || summary.UnansweredCount != 0 {
		t.Error("expected 0 answered and unanswered")
	}
	if summary.UniqueServers != 0 {
		t.Errorf("expected 0 unique servers, got %d", summary.UniqueServers)
	}
	if summary.MeanWait != 0 || summary.MaxWait != 0 {
		t.Error("expected 0 wait values")
	}
	if len(summary.ServerDistribution) != 0 {
		t.Error("expected empty server distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("expected non-nil summary")
	}
	if summary.TotalDecisions != 0 || summary.CompletedServices != 0 {
		t.Error("expected zero counts for nil trace")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed dispatch and service records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordDispatch(DispatchRecord{PassengerID: 0, Class: "economy", ChosenServer: 0, ServerClass: "economy", Served: true})
	st.RecordDispatch(DispatchRecord{PassengerID: 1, Class: "economy", ChosenServer: NoServer})
	st.RecordDispatch(DispatchRecord{PassengerID: 2, Class: "economy", ChosenServer: 1, ServerClass: "business"})
	st.RecordService(ServiceRecord{PassengerID: 0, ServerID: 0, Wait: 0})
	st.RecordService(ServiceRecord{PassengerID: 1, ServerID: 0, Wait: 4})
	st.RecordService(ServiceRecord{PassengerID: 2, ServerID: 0, Wait: 2})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts reflect the records
	if summary.TotalDecisions != 3 {
		t.Errorf("expected 3 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AnsweredCount != 1 {
		t.Errorf("expected 1 answered, got %d", summary.AnsweredCount)
	}
	if summary.UnansweredCount != 2 {
		t.Errorf("expected 2 unanswered, got %d", summary.UnansweredCount)
	}
	if summary.MisdirectedCount != 1 {
		t.Errorf("expected 1 misdirected, got %d", summary.MisdirectedCount)
	}
	if summary.CompletedServices != 3 {
		t.Errorf("expected 3 completed services, got %d", summary.CompletedServices)
	}
	if summary.MeanWait != 2 {
		t.Errorf("expected mean wait 2, got %f", summary.MeanWait)
	}
	if summary.MaxWait != 4 {
		t.Errorf("expected max wait 4, got %f", summary.MaxWait)
	}
	if summary.UniqueServers != 1 {
		t.Errorf("expected 1 unique server, got %d", summary.UniqueServers)
	}
	if summary.ServerDistribution[0] != 3 {
		t.Errorf("expected server 0 to serve 3, got %d", summary.ServerDistribution[0])
	}
}
