package cmd

import (
	"fmt"
	"io"

	"github.com/inference-sim/airport-sim/sim/workload"
)

// generateOptions are the `airport-sim generate` overrides applied on top of
// the generator spec. Zero values keep the spec's setting.
type generateOptions struct {
	SpecPath   string
	Seed       *int64
	Passengers int
	Output     string // empty = out
}

// generateWorkload builds a passenger file from the spec and writes it.
func generateWorkload(opts generateOptions, out io.Writer) (*workload.Input, error) {
	spec := workload.DefaultGeneratorSpec()
	if opts.SpecPath != "" {
		loaded, err := workload.LoadGeneratorSpec(opts.SpecPath)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}
	if opts.Seed != nil {
		spec.Seed = *opts.Seed
	}
	if opts.Passengers > 0 {
		spec.NumPassengers = opts.Passengers
	}

	in, err := workload.Generate(spec)
	if err != nil {
		return nil, err
	}
	if opts.Output != "" {
		if err := workload.WriteFile(opts.Output, in); err != nil {
			return nil, fmt.Errorf("writing passenger file: %w", err)
		}
		return in, nil
	}
	if err := workload.Write(out, in); err != nil {
		return nil, fmt.Errorf("writing passenger file: %w", err)
	}
	return in, nil
}
