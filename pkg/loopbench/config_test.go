// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package loopbench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loopbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
loops: 2
cycles: 500
period: 5ms
history_window: 8
`), 0o644))
	t.Setenv("LOOPBENCH_CYCLES", "700")
	t.Setenv("LOOPBENCH_MAX_OUTLIERS", "1")

	cfg, err := NewLoader(
		WithConfigFile(path),
		WithOverrides(map[string]interface{}{"loops": 6}),
	).Load()
	require.NoError(t, err)

	exp := Defaults()
	exp.Loops = 6
	exp.Cycles = 700
	exp.Period = 5 * time.Millisecond
	exp.HistoryWindow = 8
	exp.MaxOutliers = 1
	require.Equal(t, exp, cfg)
}

func TestLoadEnvPrefix(t *testing.T) {
	t.Setenv("BENCH_SENSORS", "4")
	t.Setenv("LOOPBENCH_SENSORS", "5")
	cfg, err := NewLoader(WithEnvPrefix("BENCH_")).Load()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Sensors)
}

func TestLoadErrors(t *testing.T) {
	_, err := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))).Load()
	require.ErrorContains(t, err, "reading config file")

	t.Setenv("LOOPBENCH_LOOPS", "0")
	_, err = NewLoader().Load()
	require.ErrorContains(t, err, "invalid config: loops must be positive, got 0")
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Config)
		err    string
	}{
		{"loops", func(c *Config) { c.Loops = -1 }, "loops must be positive"},
		{"cycles", func(c *Config) { c.Cycles = -1 }, "cycles must not be negative"},
		{"period", func(c *Config) { c.Period = -time.Second }, "period must not be negative"},
		{"sensors", func(c *Config) { c.Sensors = 0 }, "sensors must be positive"},
		{"history", func(c *Config) { c.HistoryWindow = 0 }, "history_window must be positive"},
		{"actuators", func(c *Config) { c.Actuators = -1 }, "actuators must not be negative"},
		{"outliers", func(c *Config) { c.MaxOutliers = -1 }, "max_outliers must not be negative"},
		{"events", func(c *Config) { c.EventLog = 0 }, "event_log must be positive"},
		{"latency", func(c *Config) { c.MaxLatency = time.Nanosecond }, "max_latency must be at least 1µs"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.modify(&cfg)
			require.ErrorContains(t, cfg.Validate(), tc.err)
		})
	}
	require.NoError(t, Defaults().Validate())
}
