package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/airport-sim/sim/workload"
)

func TestGenerateWorkload_Defaults_WritesLoadableFile(t *testing.T) {
	var out bytes.Buffer

	in, err := generateWorkload(generateOptions{Passengers: 25}, &out)

	require.NoError(t, err)
	assert.Len(t, in.Records, 25)
	back, err := workload.Load(&out)
	require.NoError(t, err)
	assert.Equal(t, in.Servers, back.Servers)
	assert.Equal(t, in.Records, back.Records)
}

// TestGenerateWorkload_SeedOverride verifies that the CLI seed replaces the
// spec's seed: different seeds give different files, equal seeds equal ones.
func TestGenerateWorkload_SeedOverride(t *testing.T) {
	gen := func(seed int64) string {
		var out bytes.Buffer
		_, err := generateWorkload(generateOptions{Seed: &seed, Passengers: 20}, &out)
		require.NoError(t, err)
		return out.String()
	}

	assert.Equal(t, gen(100), gen(100))
	assert.NotEqual(t, gen(100), gen(200))
}

func TestGenerateWorkload_SpecFileAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "gen.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(`
seed: 3
servers: {economy: 4, business: 2}
rate: 1
business_share: 0.5
num_passengers: 12
arrival: {process: constant}
economy:
  service: {type: constant, params: {value: 2}}
business:
  service: {type: constant, params: {value: 1}}
`), 0644))
	outPath := filepath.Join(dir, "passengers.txt")
	var stdout bytes.Buffer

	_, err := generateWorkload(generateOptions{SpecPath: specPath, Output: outPath}, &stdout)

	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	in, err := workload.LoadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 4, in.Servers.Economy)
	assert.Len(t, in.Records, 12)
	for _, r := range in.Records {
		assert.Contains(t, []float64{1, 2}, r.ServiceTime)
	}
}

func TestGenerateWorkload_BadSpec(t *testing.T) {
	_, err := generateWorkload(generateOptions{SpecPath: filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{})
	assert.Error(t, err)
}
