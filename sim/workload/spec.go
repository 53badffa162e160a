package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// GeneratorSpec is the top-level synthetic workload configuration.
// Loaded from YAML via LoadGeneratorSpec(path).
type GeneratorSpec struct {
	Seed          int64       `yaml:"seed"`
	Servers       ServersSpec `yaml:"servers"`
	Rate          float64     `yaml:"rate"`                     // aggregate arrivals per second
	BusinessShare float64     `yaml:"business_share"`           // fraction of arrivals that fly business
	Horizon       float64     `yaml:"horizon,omitempty"`        // seconds; 0 = unlimited (use passengers only)
	NumPassengers int         `yaml:"num_passengers,omitempty"` // 0 = unlimited (use horizon only)
	Arrival       ArrivalSpec `yaml:"arrival"`
	Economy       ClassSpec   `yaml:"economy"`
	Business      ClassSpec   `yaml:"business"`
}

// ServersSpec is the server pool written to the generated input header.
type ServersSpec struct {
	Economy  int `yaml:"economy"`
	Business int `yaml:"business"`
}

// ClassSpec configures what one fare class asks of a server.
type ClassSpec struct {
	Service DistSpec `yaml:"service"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string   `yaml:"process"`
	CV      *float64 `yaml:"cv,omitempty"`
}

// DistSpec parameterizes a service time distribution, in seconds.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validArrivalProcesses = map[string]bool{
		"poisson": true, "gamma": true, "weibull": true, "constant": true,
	}
	validDistTypes = map[string]bool{
		"gaussian": true, "exponential": true, "lognormal": true, "constant": true,
	}
)

// DefaultGeneratorSpec returns the workload used when no spec file is given:
// two economy desks and one business desk, one passenger every 1.5 s on average.
func DefaultGeneratorSpec() *GeneratorSpec {
	return &GeneratorSpec{
		Seed:          42,
		Servers:       ServersSpec{Economy: 2, Business: 1},
		Rate:          2.0 / 3.0,
		BusinessShare: 0.2,
		NumPassengers: 100,
		Arrival:       ArrivalSpec{Process: "poisson"},
		Economy:       ClassSpec{Service: DistSpec{Type: "exponential", Params: map[string]float64{"mean": 2.5}}},
		Business:      ClassSpec{Service: DistSpec{Type: "exponential", Params: map[string]float64{"mean": 2.0}}},
	}
}

// LoadGeneratorSpec reads and parses a YAML generator specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *GeneratorSpec) Validate() error {
	if s.Servers.Economy < 0 || s.Servers.Business < 0 {
		return fmt.Errorf("server counts must be non-negative, got %d/%d", s.Servers.Economy, s.Servers.Business)
	}
	if err := validateFinitePositive("rate", s.Rate); err != nil {
		return err
	}
	if math.IsNaN(s.BusinessShare) || s.BusinessShare < 0 || s.BusinessShare > 1 {
		return fmt.Errorf("business_share must be in [0, 1], got %f", s.BusinessShare)
	}
	if math.IsNaN(s.Horizon) || math.IsInf(s.Horizon, 0) || s.Horizon < 0 {
		return fmt.Errorf("horizon must be a finite non-negative number, got %f", s.Horizon)
	}
	if s.NumPassengers < 0 {
		return fmt.Errorf("num_passengers must be non-negative, got %d", s.NumPassengers)
	}
	if s.Horizon == 0 && s.NumPassengers == 0 {
		return fmt.Errorf("at least one of horizon or num_passengers is required")
	}
	if !validArrivalProcesses[s.Arrival.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, gamma, weibull, constant", s.Arrival.Process)
	}
	if s.Arrival.CV != nil {
		if err := validateFinitePositive("arrival.cv", *s.Arrival.CV); err != nil {
			return err
		}
		if s.Arrival.Process == "weibull" && (*s.Arrival.CV < 0.01 || *s.Arrival.CV > 10.4) {
			return fmt.Errorf("weibull CV must be in [0.01, 10.4], got %f", *s.Arrival.CV)
		}
	}
	if err := validateDistSpec("economy.service", &s.Economy.Service); err != nil {
		return err
	}
	return validateDistSpec("business.service", &s.Business.Service)
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: gaussian, exponential, lognormal, constant", prefix, d.Type)
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
