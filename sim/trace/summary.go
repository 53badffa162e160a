package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	AnsweredCount      int // decisions that started a service
	UnansweredCount    int // decisions that found no server or an empty queue
	MisdirectedCount   int // decisions that asked a server of another class
	CompletedServices  int
	MeanWait           float64
	MaxWait            float64
	UniqueServers      int
	ServerDistribution map[int]int // server ID → count of passengers served
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServerDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Dispatches)
	for _, d := range st.Dispatches {
		if d.Served {
			summary.AnsweredCount++
		} else {
			summary.UnansweredCount++
		}
		if d.Misdirected() {
			summary.MisdirectedCount++
		}
	}

	if len(st.Services) > 0 {
		totalWait := 0.0
		for _, s := range st.Services {
			summary.ServerDistribution[s.ServerID]++
			totalWait += s.Wait
			if s.Wait > summary.MaxWait {
				summary.MaxWait = s.Wait
			}
		}
		summary.CompletedServices = len(st.Services)
		summary.MeanWait = totalWait / float64(len(st.Services))
	}

	summary.UniqueServers = len(summary.ServerDistribution)

	return summary
}
