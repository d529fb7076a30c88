// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package loopbench

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := Defaults()
	cfg.Cycles = 50
	cfg.Sensors = 16
	cfg.HistoryWindow = 4
	cfg.Actuators = 3
	cfg.MaxOutliers = 1
	cfg.EventLog = 5
	cfg.Seed = 1
	return cfg
}

func TestLoopCycle(t *testing.T) {
	cfg := testConfig()
	l, err := NewLoop(0, cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		require.NoError(t, l.Cycle())
	}
	require.Equal(t, int64(20), l.Stats().Cycles)

	live, constructed := l.containerSize(containerSamples)
	require.Equal(t, 16, live)
	require.Equal(t, 16, constructed)
	live, _ = l.containerSize(containerHistory)
	require.Equal(t, 4, live)
	live, constructed = l.containerSize(containerCommands)
	require.Equal(t, 3, live)
	require.Equal(t, 3, constructed)
	live, constructed = l.containerSize(containerEvents)
	require.Equal(t, 5, live)
	require.Equal(t, cfg.EventLog+3, constructed)
	live, _ = l.containerSize(containerOutliers)
	require.LessOrEqual(t, live, 1)

	// The samples are left sorted and the setpoint is split over actuators.
	for i := 1; i < l.samples.Len(); i++ {
		a, _ := l.samples.Get(i - 1)
		b, _ := l.samples.Get(i)
		require.LessOrEqual(t, a.value, b.value)
	}
	for i := 0; i < l.commands.Len(); i++ {
		c, _ := l.commands.Get(i)
		require.Equal(t, i, c.actuator)
		require.InDelta(t, l.Stats().Setpoint/float64(i+1), c.setpoint, 1e-12)
	}
}

func TestLoopDropsOutliers(t *testing.T) {
	cfg := testConfig()
	cfg.Sensors = 256
	cfg.MaxOutliers = 0
	l, err := NewLoop(0, cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Cycle())
	}
	// About 5% of normally distributed samples are outliers.
	require.Greater(t, l.Stats().DroppedOutliers, int64(0))
	require.True(t, l.outliers.Empty())
}

func TestLoopIsDeterministic(t *testing.T) {
	run := func() CycleStats {
		l, err := NewLoop(0, testConfig(), rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		for i := 0; i < 30; i++ {
			require.NoError(t, l.Cycle())
		}
		return l.Stats()
	}
	require.Equal(t, run(), run())
}

func TestLoopSteadyStateDoesNotAllocate(t *testing.T) {
	cfg := testConfig()
	cfg.Sensors = 64
	cfg.MaxOutliers = 2
	l, err := NewLoop(0, cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(500, func() {
		if err := l.Cycle(); err != nil {
			t.Fatal(err)
		}
	})
	require.Zero(t, allocs)
}

func TestNewLoopRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Sensors = 0
	_, err := NewLoop(0, cfg, rand.New(rand.NewSource(1)))
	require.Error(t, err)
}
