// Package testutil provides shared test infrastructure for the airport simulator.
// It holds the golden scenario types and assertion helpers used across
// sim/ and cmd/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_scenarios.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is one hand-computed simulation run.
type GoldenScenario struct {
	Name            string            `json:"name"`
	EconomyServers  int               `json:"economy_servers"`
	BusinessServers int               `json:"business_servers"`
	Passengers      []GoldenPassenger `json:"passengers"`
	Metrics         GoldenMetrics     `json:"metrics"`
}

// GoldenPassenger is one input record of a scenario.
type GoldenPassenger struct {
	Arrival float64 `json:"arrival"`
	Service float64 `json:"service"`
	Class   int     `json:"class"`
}

// GoldenMetrics represents the expected report of a scenario.
// A nil pointer means the metric is undefined (NaN) for that run.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	Served                 int `json:"served"`
	ServedEconomy          int `json:"served_economy"`
	ServedBusiness         int `json:"served_business"`
	MaxQueueLengthEconomy  int `json:"max_queue_length_economy"`
	MaxQueueLengthBusiness int `json:"max_queue_length_business"`

	// Deterministic floating-point metrics (derived from simulation clock)
	AverageServiceTime        *float64  `json:"average_service_time"`
	AverageWait               *float64  `json:"average_wait"`
	AverageWaitEconomy        *float64  `json:"average_wait_economy"`
	AverageWaitBusiness       *float64  `json:"average_wait_business"`
	AverageQueueLengthEconomy *float64  `json:"average_queue_length_economy"`
	LastCompletionTime        *float64  `json:"last_completion_time"`
	ServerIdleTimes           []float64 `json:"server_idle_times"`
}

// LoadGoldenDataset loads the golden scenarios from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertMetric compares an optional golden value with a computed one.
// A nil want requires got to be NaN.
func AssertMetric(t *testing.T, name string, want *float64, got, relTol float64) {
	t.Helper()
	if want == nil {
		if !math.IsNaN(got) {
			t.Errorf("%s: got %v, want undefined (NaN)", name, got)
		}
		return
	}
	if math.IsNaN(got) {
		t.Errorf("%s: got undefined (NaN), want %v", name, *want)
		return
	}
	AssertFloat64Equal(t, name, *want, got, relTol)
}
