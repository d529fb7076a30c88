// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package loopbench

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/log"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/randutil"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/timeutil"
	"golang.org/x/sync/errgroup"
)

// LoopReport summarizes one loop of a run.
type LoopReport struct {
	ID              int
	Cycles          int64
	Overruns        int64
	DroppedOutliers int64
	// Allocs is the number of heap objects allocated by the process while
	// the loop's cycles ran. Loops running in parallel see each other's
	// allocations.
	Allocs uint64
	// AllocBytes is the number of heap bytes allocated alongside Allocs.
	AllocBytes uint64
	// AllocsPerCycle is the moving average of Allocs per cycle at the end
	// of the run.
	AllocsPerCycle float64
	Latency        LatencySummary
}

// Report summarizes a run.
type Report struct {
	Seed    int64
	Elapsed time.Duration
	Loops   []LoopReport
	// Latency merges the cycle latencies of every loop.
	Latency LatencySummary
}

type runOptions struct {
	metrics       *Metrics
	newTimeSource func() timeutil.TimeSource
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithMetrics exports the progress of the run through m.
func WithMetrics(m *Metrics) RunOption {
	return func(o *runOptions) {
		o.metrics = m
	}
}

// WithTimeSource makes every loop pace its cycles with a TimeSource returned
// by newTimeSource, which is called once per loop.
func WithTimeSource(newTimeSource func() timeutil.TimeSource) RunOption {
	return func(o *runOptions) {
		o.newTimeSource = newTimeSource
	}
}

// Run runs cfg.Loops loops in parallel, each on its own goroutine with its
// own containers, and returns once every loop completed cfg.Cycles cycles.
// With cfg.Cycles == 0 the loops run until ctx is canceled, which then ends
// the run without an error. The first loop to fail cancels the others.
func Run(ctx context.Context, cfg Config, opts ...RunOption) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := runOptions{
		newTimeSource: func() timeutil.TimeSource { return &timeutil.DefaultTimeSource{} },
	}
	for _, opt := range opts {
		opt(&o)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = randutil.NewPseudoSeed()
	}
	log.Infof(ctx, "running %d loops of %d cycles, period %s, seed %d",
		cfg.Loops, cfg.Cycles, cfg.Period, seed)

	start := timeutil.Now()
	reports := make([]LoopReport, cfg.Loops)
	hists := make([]*Histogram, cfg.Loops)
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Loops; i++ {
		r := &loopRunner{
			id:   i,
			cfg:  cfg,
			seed: seed + int64(i),
			ts:   o.newTimeSource(),
			hist: NewHistogram(cfg.MaxLatency),
		}
		if o.metrics != nil {
			r.metrics = o.metrics.forLoop(i)
		}
		hists[i] = r.hist
		g.Go(func() error {
			report, err := r.run(gCtx)
			reports[i] = report
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewHistogram(cfg.MaxLatency)
	for _, h := range hists {
		merged.Merge(h)
	}
	return &Report{
		Seed:    seed,
		Elapsed: timeutil.Since(start),
		Loops:   reports,
		Latency: merged.Summary(),
	}, nil
}

type loopRunner struct {
	id      int
	cfg     Config
	seed    int64
	ts      timeutil.TimeSource
	hist    *Histogram
	metrics *loopMetrics
	// dropped is the number of dropped outliers already exported.
	dropped int64
}

func (r *loopRunner) run(ctx context.Context) (LoopReport, error) {
	ctx = logtags.AddTag(ctx, "loop", r.id)
	loop, err := NewLoop(r.id, r.cfg, rand.New(rand.NewSource(r.seed)))
	if err != nil {
		return LoopReport{}, err
	}

	report := LoopReport{ID: r.id}
	allocsPerCycle := ewma.NewMovingAverage()
	overrunLog := log.Every(time.Second)
	var ms runtime.MemStats

	for r.cfg.Cycles == 0 || report.Cycles < r.cfg.Cycles {
		if ctx.Err() != nil {
			break
		}
		runtime.ReadMemStats(&ms)
		mallocs, allocBytes := ms.Mallocs, ms.TotalAlloc
		start := r.ts.NowMono()

		if err := loop.Cycle(); err != nil {
			return report, errors.Wrapf(err, "loop %d, cycle %d", r.id, report.Cycles+1)
		}

		elapsed := r.ts.NowMono().Sub(start)
		runtime.ReadMemStats(&ms)
		allocs := ms.Mallocs - mallocs
		report.AllocBytes += ms.TotalAlloc - allocBytes

		report.Cycles++
		report.Allocs += allocs
		allocsPerCycle.Add(float64(allocs))
		r.hist.Record(elapsed)
		overrun := r.cfg.Period > 0 && elapsed > r.cfg.Period
		if overrun {
			report.Overruns++
			if overrunLog.ShouldLog() {
				log.Warningf(ctx, "cycle %d took %s, longer than the %s period (%d overruns so far)",
					report.Cycles, elapsed, r.cfg.Period, report.Overruns)
			}
		}
		r.record(loop, elapsed, allocs, allocsPerCycle.Value(), overrun)

		if r.cfg.Period > 0 {
			if err := r.ts.Sleep(ctx, r.cfg.Period-elapsed); err != nil {
				break
			}
		}
	}

	report.DroppedOutliers = loop.Stats().DroppedOutliers
	report.AllocsPerCycle = allocsPerCycle.Value()
	report.Latency = r.hist.Summary()
	if err := ctx.Err(); err != nil && r.cfg.Cycles != 0 {
		return report, errors.Wrapf(err, "loop %d stopped after %d of %d cycles",
			r.id, report.Cycles, r.cfg.Cycles)
	}
	log.Infof(ctx, "done: %d cycles, %d overruns, %.2f allocations per cycle",
		report.Cycles, report.Overruns, report.AllocsPerCycle)
	return report, nil
}

func (r *loopRunner) record(
	loop *Loop, elapsed time.Duration, allocs uint64, allocsPerCycle float64, overrun bool,
) {
	m := r.metrics
	if m == nil {
		return
	}
	m.cycles.Inc()
	m.allocs.Add(float64(allocs))
	m.allocsPerCycle.Set(allocsPerCycle)
	m.cycleLatency.Observe(elapsed.Seconds())
	if overrun {
		m.overruns.Inc()
	}
	if dropped := loop.Stats().DroppedOutliers; dropped > r.dropped {
		m.droppedOutliers.Add(float64(dropped - r.dropped))
		r.dropped = dropped
	}
	for c := container(0); c < numContainers; c++ {
		live, constructed := loop.containerSize(c)
		m.lens[c].Set(float64(live))
		m.caps[c].Set(float64(constructed))
	}
}
