package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/inference-sim/airport-sim/sim/trace"
)

// WriteTraceSummary renders a dispatch trace summary in the text layout.
func WriteTraceSummary(w io.Writer, s *trace.TraceSummary) error {
	var b strings.Builder
	b.WriteString("=== Dispatch Trace Summary ===\n")
	fmt.Fprintf(&b, "Dispatch Decisions     : %d\n", s.TotalDecisions)
	fmt.Fprintf(&b, "  Started a service    : %d\n", s.AnsweredCount)
	fmt.Fprintf(&b, "  Left waiting         : %d\n", s.UnansweredCount)
	fmt.Fprintf(&b, "  Asked wrong class    : %d\n", s.MisdirectedCount)
	fmt.Fprintf(&b, "Completed Services     : %d\n", s.CompletedServices)
	if s.CompletedServices > 0 {
		fmt.Fprintf(&b, "Mean / Max Wait        : %.2f s / %.2f s\n", s.MeanWait, s.MaxWait)
	}
	fmt.Fprintf(&b, "Servers Used           : %d\n", s.UniqueServers)

	ids := make([]int, 0, len(s.ServerDistribution))
	for id := range s.ServerDistribution {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(&b, "  Server %-3d           : %d passengers\n", id, s.ServerDistribution[id])
	}
	_, err := io.WriteString(w, b.String())
	return err
}
