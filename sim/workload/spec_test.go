package workload

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGeneratorSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	yaml := `
seed: 7
servers:
  economy: 3
  business: 1
rate: 0.5
business_share: 0.25
num_passengers: 40
arrival:
  process: gamma
  cv: 2.0
economy:
  service:
    type: exponential
    params:
      mean: 3
business:
  service:
    type: constant
    params:
      value: 1.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadGeneratorSpec(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Seed != 7 {
		t.Errorf("seed = %d, want 7", spec.Seed)
	}
	if spec.Servers.Economy != 3 || spec.Servers.Business != 1 {
		t.Errorf("servers = %+v, want 3/1", spec.Servers)
	}
	if spec.Arrival.CV == nil || *spec.Arrival.CV != 2.0 {
		t.Errorf("arrival cv = %v, want 2.0", spec.Arrival.CV)
	}
	if spec.Business.Service.Params["value"] != 1.5 {
		t.Errorf("business service value = %v, want 1.5", spec.Business.Service.Params["value"])
	}
	if err := spec.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadGeneratorSpec_UnknownKey_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	if err := os.WriteFile(path, []byte("seed: 1\nrat: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGeneratorSpec(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestGeneratorSpec_Validate_Rejects(t *testing.T) {
	cv := 20.0
	tests := []struct {
		name   string
		mutate func(*GeneratorSpec)
		want   string
	}{
		{"negative servers", func(s *GeneratorSpec) { s.Servers.Business = -1 }, "server counts"},
		{"zero rate", func(s *GeneratorSpec) { s.Rate = 0 }, "rate must be positive"},
		{"NaN rate", func(s *GeneratorSpec) { s.Rate = math.NaN() }, "rate must be a finite number"},
		{"share above one", func(s *GeneratorSpec) { s.BusinessShare = 1.5 }, "business_share"},
		{"no stop condition", func(s *GeneratorSpec) { s.NumPassengers = 0; s.Horizon = 0 }, "horizon or num_passengers"},
		{"unknown process", func(s *GeneratorSpec) { s.Arrival.Process = "burst" }, "unknown arrival process"},
		{"weibull cv out of range", func(s *GeneratorSpec) { s.Arrival = ArrivalSpec{Process: "weibull", CV: &cv} }, "weibull CV"},
		{"unknown dist", func(s *GeneratorSpec) { s.Economy.Service.Type = "pareto" }, "economy.service"},
		{"NaN param", func(s *GeneratorSpec) { s.Business.Service.Params = map[string]float64{"mean": math.NaN()} }, "business.service.params.mean"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultGeneratorSpec()
			tc.mutate(spec)
			err := spec.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestDefaultGeneratorSpec_Valid(t *testing.T) {
	if err := DefaultGeneratorSpec().Validate(); err != nil {
		t.Errorf("default spec invalid: %v", err)
	}
}
