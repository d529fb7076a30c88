// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package loopbench

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment variables that override the
// configuration, e.g. LOOPBENCH_LOOPS=4.
const EnvPrefix = "LOOPBENCH_"

// Config describes a benchmark run.
type Config struct {
	// Loops is the number of independent control loops run in parallel.
	Loops int `koanf:"loops"`
	// Cycles is the number of cycles each loop runs. Zero runs until the
	// context is canceled.
	Cycles int64 `koanf:"cycles"`
	// Period is the target cycle period. Zero runs cycles back to back.
	Period time.Duration `koanf:"period"`
	// Sensors is the number of samples read per cycle.
	Sensors int `koanf:"sensors"`
	// HistoryWindow is the number of filtered samples kept per loop.
	HistoryWindow int `koanf:"history_window"`
	// Actuators is the number of commands staged per cycle.
	Actuators int `koanf:"actuators"`
	// MaxOutliers bounds the outliers kept per cycle; further outliers are
	// counted and dropped.
	MaxOutliers int `koanf:"max_outliers"`
	// EventLog is the number of events kept per loop.
	EventLog int `koanf:"event_log"`
	// MaxLatency is the highest cycle latency the histograms track.
	MaxLatency time.Duration `koanf:"max_latency"`
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `koanf:"metrics_addr"`
	// Seed seeds the simulated sensors. Zero picks a random seed.
	Seed int64 `koanf:"seed"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Loops:         1,
		Cycles:        1000,
		Period:        time.Millisecond,
		Sensors:       32,
		HistoryWindow: 64,
		Actuators:     8,
		MaxOutliers:   4,
		EventLog:      16,
		MaxLatency:    time.Second,
	}
}

// Validate checks that the configuration describes a runnable benchmark.
func (c Config) Validate() error {
	switch {
	case c.Loops <= 0:
		return errors.Newf("loops must be positive, got %d", c.Loops)
	case c.Cycles < 0:
		return errors.Newf("cycles must not be negative, got %d", c.Cycles)
	case c.Period < 0:
		return errors.Newf("period must not be negative, got %s", c.Period)
	case c.Sensors <= 0:
		return errors.Newf("sensors must be positive, got %d", c.Sensors)
	case c.HistoryWindow <= 0:
		return errors.Newf("history_window must be positive, got %d", c.HistoryWindow)
	case c.Actuators < 0:
		return errors.Newf("actuators must not be negative, got %d", c.Actuators)
	case c.MaxOutliers < 0:
		return errors.Newf("max_outliers must not be negative, got %d", c.MaxOutliers)
	case c.EventLog <= 0:
		return errors.Newf("event_log must be positive, got %d", c.EventLog)
	case c.MaxLatency < minLatency:
		return errors.Newf("max_latency must be at least %s, got %s", minLatency, c.MaxLatency)
	}
	return nil
}

// Loader assembles a Config from, in increasing priority, the defaults, an
// optional YAML file, the environment and explicit overrides.
type Loader struct {
	k          *koanf.Koanf
	configPath string
	envPrefix  string
	overrides  map[string]interface{}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigFile reads the YAML file at path. A missing file is an error.
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) {
		l.configPath = path
	}
}

// WithEnvPrefix changes the prefix of the environment variables consulted.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithOverrides applies values on top of every other source, the way
// command line flags do.
func WithOverrides(overrides map[string]interface{}) LoaderOption {
	return func(l *Loader) {
		l.overrides = overrides
	}
}

// NewLoader returns a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: EnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the validated configuration.
func (l *Loader) Load() (Config, error) {
	if err := l.loadDefaults(); err != nil {
		return Config{}, errors.Wrap(err, "loading defaults")
	}
	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return Config{}, errors.Wrapf(err, "reading config file")
		}
		if err := l.k.Load(file.Provider(l.configPath), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "parsing %s", l.configPath)
		}
	}
	if err := l.loadEnv(); err != nil {
		return Config{}, errors.Wrap(err, "loading environment")
	}
	if len(l.overrides) > 0 {
		if err := l.k.Load(confmap.Provider(l.overrides, "."), nil); err != nil {
			return Config{}, errors.Wrap(err, "applying overrides")
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (l *Loader) loadDefaults() error {
	d := Defaults()
	return l.k.Load(confmap.Provider(map[string]interface{}{
		"loops":          d.Loops,
		"cycles":         d.Cycles,
		"period":         d.Period,
		"sensors":        d.Sensors,
		"history_window": d.HistoryWindow,
		"actuators":      d.Actuators,
		"max_outliers":   d.MaxOutliers,
		"event_log":      d.EventLog,
		"max_latency":    d.MaxLatency,
		"metrics_addr":   d.MetricsAddr,
		"seed":           d.Seed,
	}, "."), nil)
}

// loadEnv maps LOOPBENCH_HISTORY_WINDOW to history_window. Keys are flat,
// so underscores are kept.
func (l *Loader) loadEnv() error {
	return l.k.Load(env.ProviderWithValue(l.envPrefix, ".", func(key, value string) (string, interface{}) {
		return strings.ToLower(strings.TrimPrefix(key, l.envPrefix)), value
	}), nil)
}
