// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package loopbench

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "loopbench"

// Metrics are the Prometheus collectors exported by a run. Every series is
// labeled with the loop that produced it.
type Metrics struct {
	Cycles          *prometheus.CounterVec
	Overruns        *prometheus.CounterVec
	Allocs          *prometheus.CounterVec
	AllocsPerCycle  *prometheus.GaugeVec
	DroppedOutliers *prometheus.CounterVec
	CycleLatency    *prometheus.HistogramVec
	ContainerLen    *prometheus.GaugeVec
	ContainerCap    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cycles_total",
			Help:      "Number of completed control cycles.",
		}, []string{"loop"}),
		Overruns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "overruns_total",
			Help:      "Number of cycles that took longer than the period.",
		}, []string{"loop"}),
		Allocs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "heap_allocs_total",
			Help:      "Heap objects allocated by the process while a cycle ran.",
		}, []string{"loop"}),
		AllocsPerCycle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "heap_allocs_per_cycle",
			Help:      "Moving average of heap objects allocated per cycle.",
		}, []string{"loop"}),
		DroppedOutliers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dropped_outliers_total",
			Help:      "Outliers that did not fit the bounded outlier list.",
		}, []string{"loop"}),
		CycleLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cycle_duration_seconds",
			Help:      "Time spent in a control cycle, excluding the sleep.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"loop"}),
		ContainerLen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "container_length",
			Help:      "Live elements in a loop container at the end of a cycle.",
		}, []string{"loop", "container"}),
		ContainerCap: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "container_constructed",
			Help:      "Elements a loop container constructed so far.",
		}, []string{"loop", "container"}),
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// loopMetrics holds the series of one loop, resolved once so that updating
// them each cycle does not look up labels.
type loopMetrics struct {
	cycles          prometheus.Counter
	overruns        prometheus.Counter
	allocs          prometheus.Counter
	allocsPerCycle  prometheus.Gauge
	droppedOutliers prometheus.Counter
	cycleLatency    prometheus.Observer
	lens, caps      [numContainers]prometheus.Gauge
}

func (m *Metrics) forLoop(id int) *loopMetrics {
	loop := strconv.Itoa(id)
	lm := &loopMetrics{
		cycles:          m.Cycles.WithLabelValues(loop),
		overruns:        m.Overruns.WithLabelValues(loop),
		allocs:          m.Allocs.WithLabelValues(loop),
		allocsPerCycle:  m.AllocsPerCycle.WithLabelValues(loop),
		droppedOutliers: m.DroppedOutliers.WithLabelValues(loop),
		cycleLatency:    m.CycleLatency.WithLabelValues(loop),
	}
	for c := container(0); c < numContainers; c++ {
		lm.lens[c] = m.ContainerLen.WithLabelValues(loop, c.String())
		lm.caps[c] = m.ContainerCap.WithLabelValues(loop, c.String())
	}
	return lm
}

// ServeMetrics serves the metrics gathered by g on addr until ctx is
// canceled.
func ServeMetrics(ctx context.Context, addr string, g prometheus.Gatherer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(g),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return errors.Wrapf(err, "serving metrics on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
