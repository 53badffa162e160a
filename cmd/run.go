package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/airport-sim/sim"
	"github.com/inference-sim/airport-sim/sim/report"
	"github.com/inference-sim/airport-sim/sim/trace"
	"github.com/inference-sim/airport-sim/sim/workload"
)

// runSimulation loads the passenger file, runs it and writes the report to
// stdout (or cfg.Output). The trace summary follows a text report; with a
// machine-readable format it goes to stderr so stdout stays parseable.
func runSimulation(cfg *RunConfig, stdout, stderr io.Writer) error {
	in, err := workload.LoadFile(cfg.Input)
	if err != nil {
		return err
	}
	if in.Dropped > 0 {
		logrus.Infof("Dropped %d passengers with a non-positive service time", in.Dropped)
	}

	s, err := sim.NewSimulator(cfg.SimConfig(in.Servers), in.Records)
	if err != nil {
		return err
	}
	if cfg.Progress && len(in.Records) > 0 {
		bar := progressbar.NewOptions(len(in.Records),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("passengers served"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		s.OnComplete(func(*sim.Passenger) { _ = bar.Add(1) })
		defer func() { _ = bar.Finish() }()
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	r, err := s.Run(ctx)
	if err != nil {
		return err
	}
	logrus.Infof("Simulated %.3fs in %s", r.EndTime, time.Since(startTime))

	out := stdout
	if cfg.Output != "" {
		file, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}
	if err := report.Write(out, r, cfg.Format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if s.Trace != nil {
		summaryOut := out
		if cfg.Format != report.FormatText {
			summaryOut = stderr
		}
		if _, err := io.WriteString(summaryOut, "\n"); err != nil {
			return err
		}
		if err := report.WriteTraceSummary(summaryOut, trace.Summarize(s.Trace)); err != nil {
			return fmt.Errorf("writing trace summary: %w", err)
		}
	}
	return nil
}
