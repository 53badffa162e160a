// Aggregates queue, wait and service statistics for the final report.

package sim

import (
	"math"

	"github.com/DataDog/sketches-go/ddsketch"
	"github.com/aclements/go-moremath/stats"
	"github.com/sirupsen/logrus"
)

// waitSketchAccuracy is the relative accuracy of the wait-time quantile sketches.
const waitSketchAccuracy = 0.01

// StatsCollector aggregates counts and sums while the simulation runs.
// Derived metrics are computed only in Report.
type StatsCollector struct {
	served      [numFareClasses]int
	waitSum     [numFareClasses]float64
	serviceSum  float64
	maxQueueLen [numFareClasses]int
	samples     [numFareClasses][]float64
	waits       [numFareClasses]*ddsketch.DDSketch

	lastCompletion float64
	hasCompletion  bool
}

// NewStatsCollector creates an empty collector.
func NewStatsCollector() *StatsCollector {
	sc := &StatsCollector{}
	for _, c := range FareClasses {
		sketch, err := ddsketch.NewDefaultDDSketch(waitSketchAccuracy)
		if err != nil {
			panic(err)
		}
		sc.waits[c] = sketch
		sc.samples[c] = make([]float64, 0)
	}
	return sc
}

// RecordQueueLength updates the maximum observed length of class c's queue.
func (sc *StatsCollector) RecordQueueLength(c FareClass, n int) {
	sc.maxQueueLen[c] = max(sc.maxQueueLen[c], n)
}

// Sample appends one periodic queue-length observation per class.
func (sc *StatsCollector) Sample(economyLen, businessLen int) {
	sc.samples[Economy] = append(sc.samples[Economy], float64(economyLen))
	sc.samples[Business] = append(sc.samples[Business], float64(businessLen))
}

// RecordCompletion accounts for a passenger that has departed at now.
func (sc *StatsCollector) RecordCompletion(p *Passenger, now float64) {
	sc.served[p.Class]++
	sc.waitSum[p.Class] += p.WaitTime
	sc.serviceSum += p.ServiceTime
	sc.lastCompletion = now
	sc.hasCompletion = true
	if err := sc.waits[p.Class].Add(p.WaitTime); err != nil {
		logrus.Warnf("wait time %g of passenger %d not added to sketch: %v", p.WaitTime, p.ID, err)
	}
}

// Served returns the number of completed passengers of class c.
func (sc *StatsCollector) Served(c FareClass) int {
	return sc.served[c]
}

// ServedTotal returns the number of completed passengers of all classes.
func (sc *StatsCollector) ServedTotal() int {
	return sc.served[Economy] + sc.served[Business]
}

// Samples returns the periodic queue-length observations of class c.
func (sc *StatsCollector) Samples(c FareClass) []float64 {
	return sc.samples[c]
}

// Report builds the final snapshot. servers supplies per-server idle time and
// end is the simulated time the run stopped at; a server still idle at end
// counts its open idle interval up to end.
func (sc *StatsCollector) Report(servers []*Server, end float64) Report {
	total := sc.ServedTotal()
	r := Report{
		Served:             total,
		AverageServiceTime: ratio(sc.serviceSum, total),
		AverageWait:        ratio(sc.waitSum[Economy]+sc.waitSum[Business], total),
		LastCompletionTime: math.NaN(),
		EndTime:            end,
		Servers:            make([]ServerReport, 0, len(servers)),
	}
	if sc.hasCompletion {
		r.LastCompletionTime = sc.lastCompletion
	}
	r.Economy = sc.classReport(Economy)
	r.Business = sc.classReport(Business)
	for _, s := range servers {
		r.Servers = append(r.Servers, ServerReport{
			ID:       s.ID,
			Class:    s.Class.String(),
			IdleTime: s.IdleTimeAt(end),
			Served:   s.Served,
		})
	}
	return r
}

func (sc *StatsCollector) classReport(c FareClass) ClassReport {
	cr := ClassReport{
		Served:             sc.served[c],
		AverageWait:        ratio(sc.waitSum[c], sc.served[c]),
		AverageQueueLength: math.NaN(),
		QueueLengthStdDev:  math.NaN(),
		MaxQueueLength:     sc.maxQueueLen[c],
		Samples:            len(sc.samples[c]),
		WaitP50:            math.NaN(),
		WaitP95:            math.NaN(),
		WaitP99:            math.NaN(),
	}
	if len(sc.samples[c]) > 0 {
		sample := stats.Sample{Xs: sc.samples[c]}
		cr.AverageQueueLength = sample.Mean()
		cr.QueueLengthStdDev = sample.StdDev()
	}
	if !sc.waits[c].IsEmpty() {
		qs, err := sc.waits[c].GetValuesAtQuantiles([]float64{0.50, 0.95, 0.99})
		if err != nil {
			logrus.Warnf("%s wait quantiles unavailable: %v", c, err)
		} else {
			cr.WaitP50, cr.WaitP95, cr.WaitP99 = qs[0], qs[1], qs[2]
		}
	}
	return cr
}

// ratio divides sum by n, returning NaN when n is zero.
func ratio(sum float64, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
