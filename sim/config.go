package sim

import (
	"fmt"
	"math"

	"github.com/inference-sim/airport-sim/sim/trace"
)

// DefaultSampleInterval is the simulated period between queue-length samples, in seconds.
const DefaultSampleInterval = 1.0

// ServerConfig groups the size of the server pool per fare class.
type ServerConfig struct {
	Economy  int // servers bound to the economy queue
	Business int // servers bound to the business queue
}

// NewServerConfig creates a ServerConfig.
func NewServerConfig(economy, business int) ServerConfig {
	return ServerConfig{Economy: economy, Business: business}
}

// Count returns the number of servers bound to class c.
func (sc ServerConfig) Count(c FareClass) int {
	if c == Business {
		return sc.Business
	}
	return sc.Economy
}

// Total returns the size of the whole pool.
func (sc ServerConfig) Total() int {
	return sc.Economy + sc.Business
}

// Config groups everything NewSimulator needs besides the passenger records.
type Config struct {
	Servers        ServerConfig
	SampleInterval float64           // seconds between queue-length samples (default 1.0)
	DispatchPolicy string            // "class-bound" (default) or "first-ready"
	Trace          trace.TraceConfig // decision tracing, off by default
}

// NewConfig creates a Config with default sampling, dispatch and tracing.
func NewConfig(servers ServerConfig) Config {
	return Config{
		Servers:        servers,
		SampleInterval: DefaultSampleInterval,
		DispatchPolicy: DispatchClassBound,
		Trace:          trace.TraceConfig{Level: trace.TraceLevelNone},
	}
}

// Validate checks server counts, the sample interval and the policy names.
func (c Config) Validate() error {
	if c.Servers.Economy < 0 {
		return newConfigError("economy server count", fmt.Sprintf("%d is negative", c.Servers.Economy))
	}
	if c.Servers.Business < 0 {
		return newConfigError("business server count", fmt.Sprintf("%d is negative", c.Servers.Business))
	}
	if math.IsNaN(c.SampleInterval) || math.IsInf(c.SampleInterval, 0) || c.SampleInterval <= 0 {
		return newConfigError("sample interval", fmt.Sprintf("%g is not a positive duration", c.SampleInterval))
	}
	if !ValidDispatchPolicies[c.DispatchPolicy] {
		return newConfigError("dispatch policy", fmt.Sprintf("unknown policy %q", c.DispatchPolicy))
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return newConfigError("trace level", fmt.Sprintf("unknown level %q", c.Trace.Level))
	}
	return nil
}
