// Defines Report, the final snapshot of a simulation run such as:
// served counts, average waits, queue lengths and per-server idle time.

package sim

// Report is the final statistics of a run. Averages whose denominator is
// zero (no passenger of a class, no samples) are NaN.
type Report struct {
	Served             int     // passengers served, all classes
	AverageServiceTime float64 // total service time / Served
	AverageWait        float64 // total wait time / Served

	Economy  ClassReport
	Business ClassReport

	LastCompletionTime float64 // time of the last departure, NaN if none
	EndTime            float64 // clock value when the event loop stopped
	Finished           bool    // every admitted passenger departed
	Unserved           int     // admitted passengers that never departed

	Servers []ServerReport
}

// ClassReport holds the statistics of one fare class.
type ClassReport struct {
	Served             int
	AverageWait        float64
	WaitP50            float64
	WaitP95            float64
	WaitP99            float64
	AverageQueueLength float64 // mean of the periodic samples
	QueueLengthStdDev  float64
	MaxQueueLength     int
	Samples            int // number of periodic samples taken
}

// ServerReport holds the statistics of one server.
type ServerReport struct {
	ID       int
	Class    string
	IdleTime float64 // total idle time up to the end of the run
	Served   int
}

// Class returns the report of fare class c.
func (r Report) Class(c FareClass) ClassReport {
	if c == Business {
		return r.Business
	}
	return r.Economy
}
