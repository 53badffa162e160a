package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inference-sim/airport-sim/sim"
	"github.com/inference-sim/airport-sim/sim/report"
	"github.com/inference-sim/airport-sim/sim/trace"
)

var (
	cfgFile string // Optional config file for `run` (YAML, JSON or TOML)

	// CLI flags for `generate`
	genSpecPath   string // Generator spec YAML
	genSeed       int64  // Seed override
	genPassengers int    // Passenger count override
	genOutput     string // Passenger file to write
	genLogLevel   string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "airport-sim",
	Short: "Discrete-event simulator for airport check-in queues",
}

// runCmd executes the simulation using parameters from flags, environment and config file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the check-in simulation on a passenger file",
	Run: func(cmd *cobra.Command, args []string) {
		v, err := newViper(cmd.LocalFlags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg, err := LoadRunConfig(v, cfgFile)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		// Set up logging
		level, _ := logrus.ParseLevel(cfg.Log)
		logrus.SetLevel(level)

		if err := runSimulation(cfg, os.Stdout, os.Stderr); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// generateCmd writes a synthetic passenger file
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic passenger file",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(genLogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", genLogLevel)
		}
		logrus.SetLevel(level)

		opts := generateOptions{SpecPath: genSpecPath, Passengers: genPassengers, Output: genOutput}
		if cmd.Flags().Changed("seed") {
			opts.Seed = &genSeed
		}
		in, err := generateWorkload(opts, os.Stdout)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		logrus.Infof("Wrote %d passengers for %d economy / %d business servers",
			len(in.Records), in.Servers.Economy, in.Servers.Business)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRunFlags defines the `run` flags. They are read through viper, never
// through package variables.
func addRunFlags(fs *pflag.FlagSet) {
	fs.String("input", "", "Passenger file: 'economy,business' header then 'arrival,service,class' lines")
	fs.Int("economy-servers", -1, "Override the economy server count from the input file")
	fs.Int("business-servers", -1, "Override the business server count from the input file")
	fs.Float64("sample-interval", sim.DefaultSampleInterval, "Seconds between queue-length samples")
	fs.String("dispatch-policy", sim.DispatchClassBound, "Dispatch policy on arrival (class-bound, first-ready)")
	fs.String("format", report.FormatText, "Report format (text, json, yaml)")
	fs.String("output", "", "Write the report to this file instead of stdout")
	fs.String("trace", string(trace.TraceLevelNone), "Dispatch trace level (none, decisions)")
	fs.String("log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	fs.Bool("progress", false, "Show a progress bar of served passengers on stderr")
	fs.Duration("timeout", 0, "Abandon the run after this much wall-clock time (0 = no limit)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file for run (keys match flag names with underscores)")

	addRunFlags(runCmd.Flags())

	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "Generator spec YAML (default: built-in workload)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed overriding the spec's seed")
	generateCmd.Flags().IntVar(&genPassengers, "passengers", 0, "Number of passengers overriding the spec (0 = keep)")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "Write the passenger file here instead of stdout")
	generateCmd.Flags().StringVar(&genLogLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
}
