// Package report renders the final statistics of a simulation run.
//
// Metrics that are undefined for a run (an average over zero passengers or
// zero samples) are NaN in sim.Report. They are written as null in JSON and
// YAML and as "undefined" in the text format.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/airport-sim/sim"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats is the set of recognized output format names.
var ValidFormats = map[string]bool{FormatText: true, FormatJSON: true, FormatYAML: true}

// Output is the serialized form of sim.Report.
type Output struct {
	Served             int            `json:"served" yaml:"served"`
	AverageServiceTime *float64       `json:"average_service_time" yaml:"average_service_time"`
	AverageWait        *float64       `json:"average_wait" yaml:"average_wait"`
	Economy            ClassOutput    `json:"economy" yaml:"economy"`
	Business           ClassOutput    `json:"business" yaml:"business"`
	LastCompletionTime *float64       `json:"last_completion_time" yaml:"last_completion_time"`
	EndTime            float64        `json:"end_time" yaml:"end_time"`
	Finished           bool           `json:"finished" yaml:"finished"`
	Unserved           int            `json:"unserved" yaml:"unserved"`
	Servers            []ServerOutput `json:"servers" yaml:"servers"`
}

// ClassOutput is the serialized form of sim.ClassReport.
type ClassOutput struct {
	Served             int      `json:"served" yaml:"served"`
	AverageWait        *float64 `json:"average_wait" yaml:"average_wait"`
	WaitP50            *float64 `json:"wait_p50" yaml:"wait_p50"`
	WaitP95            *float64 `json:"wait_p95" yaml:"wait_p95"`
	WaitP99            *float64 `json:"wait_p99" yaml:"wait_p99"`
	AverageQueueLength *float64 `json:"average_queue_length" yaml:"average_queue_length"`
	QueueLengthStdDev  *float64 `json:"queue_length_stddev" yaml:"queue_length_stddev"`
	MaxQueueLength     int      `json:"max_queue_length" yaml:"max_queue_length"`
	Samples            int      `json:"samples" yaml:"samples"`
}

// ServerOutput is the serialized form of sim.ServerReport.
type ServerOutput struct {
	ID       int     `json:"id" yaml:"id"`
	Class    string  `json:"class" yaml:"class"`
	IdleTime float64 `json:"idle_time" yaml:"idle_time"`
	Served   int     `json:"served" yaml:"served"`
}

// NewOutput converts r, mapping NaN metrics to nil.
func NewOutput(r sim.Report) Output {
	out := Output{
		Served:             r.Served,
		AverageServiceTime: defined(r.AverageServiceTime),
		AverageWait:        defined(r.AverageWait),
		Economy:            newClassOutput(r.Economy),
		Business:           newClassOutput(r.Business),
		LastCompletionTime: defined(r.LastCompletionTime),
		EndTime:            r.EndTime,
		Finished:           r.Finished,
		Unserved:           r.Unserved,
		Servers:            make([]ServerOutput, 0, len(r.Servers)),
	}
	for _, s := range r.Servers {
		out.Servers = append(out.Servers, ServerOutput(s))
	}
	return out
}

func newClassOutput(c sim.ClassReport) ClassOutput {
	return ClassOutput{
		Served:             c.Served,
		AverageWait:        defined(c.AverageWait),
		WaitP50:            defined(c.WaitP50),
		WaitP95:            defined(c.WaitP95),
		WaitP99:            defined(c.WaitP99),
		AverageQueueLength: defined(c.AverageQueueLength),
		QueueLengthStdDev:  defined(c.QueueLengthStdDev),
		MaxQueueLength:     c.MaxQueueLength,
		Samples:            c.Samples,
	}
}

func defined(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Write renders r to w in the given format.
func Write(w io.Writer, r sim.Report, format string) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, Text(r))
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(NewOutput(r), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewOutput(r)); err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown report format %q; valid: text, json, yaml", format)
	}
}

// Text renders r in the human-readable layout printed by `airport-sim run`.
func Text(r sim.Report) string {
	var b strings.Builder
	b.WriteString("=== Simulation Report ===\n")
	fmt.Fprintf(&b, "Passengers Served      : %d\n", r.Served)
	fmt.Fprintf(&b, "Average Service Time   : %s\n", seconds(r.AverageServiceTime))
	fmt.Fprintf(&b, "Average Wait           : %s\n", seconds(r.AverageWait))
	fmt.Fprintf(&b, "Last Completed Service : %s\n", seconds(r.LastCompletionTime))
	fmt.Fprintf(&b, "Simulation End         : %.2f s\n", r.EndTime)
	if !r.Finished {
		fmt.Fprintf(&b, "Unserved Passengers    : %d\n", r.Unserved)
	}
	for _, c := range sim.FareClasses {
		cr := r.Class(c)
		fmt.Fprintf(&b, "\n--- %s ---\n", strings.ToUpper(c.String()[:1])+c.String()[1:])
		fmt.Fprintf(&b, "Served                 : %d\n", cr.Served)
		fmt.Fprintf(&b, "Average Wait           : %s\n", seconds(cr.AverageWait))
		fmt.Fprintf(&b, "Wait p50/p95/p99       : %s / %s / %s\n", seconds(cr.WaitP50), seconds(cr.WaitP95), seconds(cr.WaitP99))
		fmt.Fprintf(&b, "Average Queue Length   : %s\n", number(cr.AverageQueueLength))
		fmt.Fprintf(&b, "Max Queue Length       : %d\n", cr.MaxQueueLength)
	}
	if len(r.Servers) > 0 {
		b.WriteString("\n--- Servers ---\n")
		for _, s := range r.Servers {
			fmt.Fprintf(&b, "Server %-3d %-10s: idle %.2f s, served %d\n", s.ID, "("+s.Class+")", s.IdleTime, s.Served)
		}
	}
	return b.String()
}

func seconds(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f s", v)
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", v)
}
