package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/inference-sim/airport-sim/sim"
	"github.com/inference-sim/airport-sim/sim/report"
	"github.com/inference-sim/airport-sim/sim/trace"
)

// envPrefix namespaces environment overrides, e.g. AIRPORTSIM_DISPATCH_POLICY.
const envPrefix = "AIRPORTSIM"

// RunConfig holds every setting of `airport-sim run`. Values are layered
// flags over environment over config file over flag defaults.
type RunConfig struct {
	Input           string        `mapstructure:"input"`
	EconomyServers  int           `mapstructure:"economy_servers"`  // < 0 = take from input file
	BusinessServers int           `mapstructure:"business_servers"` // < 0 = take from input file
	SampleInterval  float64       `mapstructure:"sample_interval"`
	DispatchPolicy  string        `mapstructure:"dispatch_policy"`
	Format          string        `mapstructure:"format"`
	Output          string        `mapstructure:"output"` // empty = stdout
	Trace           string        `mapstructure:"trace"`
	Log             string        `mapstructure:"log"`
	Progress        bool          `mapstructure:"progress"`
	Timeout         time.Duration `mapstructure:"timeout"` // wall-clock limit, 0 = none
}

// newViper returns a viper instance reading AIRPORTSIM_* variables and the
// given flags. Flag names use dashes; config keys use underscores.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == "help" {
			return
		}
		bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("binding flags: %w", bindErr)
	}
	return v, nil
}

// LoadRunConfig reads cfgFile (if set) into v and decodes the merged settings.
// Unknown keys in the config file are rejected.
func LoadRunConfig(v *viper.Viper, cfgFile string) (*RunConfig, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		logrus.Infof("Using config file: %s", v.ConfigFileUsed())
	}

	var cfg RunConfig
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that sim.Config does not cover.
func (c *RunConfig) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no passenger file given (--input)")
	}
	if !report.ValidFormats[c.Format] {
		return fmt.Errorf("unknown format %q; valid: text, json, yaml", c.Format)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, decisions", c.Trace)
	}
	if _, err := logrus.ParseLevel(c.Log); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log, err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", c.Timeout)
	}
	return nil
}

// SimConfig builds the simulator configuration for a file whose header
// declared servers. Non-negative server overrides replace the header values.
func (c *RunConfig) SimConfig(servers sim.ServerConfig) sim.Config {
	if c.EconomyServers >= 0 {
		servers.Economy = c.EconomyServers
	}
	if c.BusinessServers >= 0 {
		servers.Business = c.BusinessServers
	}
	cfg := sim.NewConfig(servers)
	cfg.SampleInterval = c.SampleInterval
	cfg.DispatchPolicy = c.DispatchPolicy
	cfg.Trace = trace.TraceConfig{Level: trace.TraceLevel(c.Trace)}
	return cfg
}
