package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/airport-sim/sim"
	"github.com/inference-sim/airport-sim/sim/trace"
)

// loadTestConfig parses args against fresh run flags and loads the merged config.
func loadTestConfig(t *testing.T, cfgFile string, args ...string) (*RunConfig, error) {
	t.Helper()
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	addRunFlags(fs)
	require.NoError(t, fs.Parse(args))
	v, err := newViper(fs)
	require.NoError(t, err)
	return LoadRunConfig(v, cfgFile)
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRunConfig_FlagDefaults(t *testing.T) {
	cfg, err := loadTestConfig(t, "", "--input", "passengers.txt")

	require.NoError(t, err)
	assert.Equal(t, RunConfig{
		Input:           "passengers.txt",
		EconomyServers:  -1,
		BusinessServers: -1,
		SampleInterval:  sim.DefaultSampleInterval,
		DispatchPolicy:  sim.DispatchClassBound,
		Format:          "text",
		Trace:           "none",
		Log:             "error",
	}, *cfg)
}

func TestLoadRunConfig_FileThenFlags(t *testing.T) {
	// GIVEN a config file choosing the historical policy and a 30s timeout
	path := writeConfig(t, "airport.yaml", `
input: from-file.txt
dispatch_policy: first-ready
sample_interval: 2.5
format: yaml
timeout: 30s
`)

	// WHEN --format is also given on the command line
	cfg, err := loadTestConfig(t, path, "--format", "json")

	// THEN the flag wins and the file fills the rest
	require.NoError(t, err)
	assert.Equal(t, "from-file.txt", cfg.Input)
	assert.Equal(t, sim.DispatchFirstReady, cfg.DispatchPolicy)
	assert.Equal(t, 2.5, cfg.SampleInterval)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadRunConfig_Environment(t *testing.T) {
	t.Setenv("AIRPORTSIM_DISPATCH_POLICY", "first-ready")
	t.Setenv("AIRPORTSIM_BUSINESS_SERVERS", "4")

	cfg, err := loadTestConfig(t, "", "--input", "p.txt")

	require.NoError(t, err)
	assert.Equal(t, sim.DispatchFirstReady, cfg.DispatchPolicy)
	assert.Equal(t, 4, cfg.BusinessServers)
}

func TestLoadRunConfig_UnknownKey_ReturnsError(t *testing.T) {
	path := writeConfig(t, "airport.yaml", "input: p.txt\ndispatch_polcy: first-ready\n")

	_, err := loadTestConfig(t, path)

	assert.ErrorContains(t, err, "dispatch_polcy")
}

func TestLoadRunConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := loadTestConfig(t, filepath.Join(t.TempDir(), "nope.yaml"), "--input", "p.txt")
	assert.ErrorContains(t, err, "reading config file")
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", nil, "no passenger file"},
		{"bad format", []string{"--input", "p", "--format", "xml"}, "unknown format"},
		{"bad trace", []string{"--input", "p", "--trace", "all"}, "unknown trace level"},
		{"bad log", []string{"--input", "p", "--log", "loud"}, "invalid log level"},
		{"negative timeout", []string{"--input", "p", "--timeout", "-1s"}, "timeout"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadTestConfig(t, "", tc.args...)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestRunConfig_SimConfig_ServerOverrides(t *testing.T) {
	cfg := &RunConfig{EconomyServers: -1, BusinessServers: 3, SampleInterval: 0.5, DispatchPolicy: sim.DispatchFirstReady, Trace: "decisions"}

	got := cfg.SimConfig(sim.NewServerConfig(2, 1))

	assert.Equal(t, sim.NewServerConfig(2, 3), got.Servers)
	assert.Equal(t, 0.5, got.SampleInterval)
	assert.Equal(t, sim.DispatchFirstReady, got.DispatchPolicy)
	assert.Equal(t, trace.TraceLevelDecisions, got.Trace.Level)
}
