// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package loopbench

import (
	"fmt"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/syncutil"
)

const (
	sigFigs    = 2
	minLatency = time.Microsecond
)

// Histogram records cycle latencies. It is threadsafe but intended to be
// owned by one loop and read by the reporter.
type Histogram struct {
	maxLatency time.Duration
	mu         struct {
		syncutil.Mutex
		h *hdrhistogram.Histogram
	}
}

// NewHistogram returns a Histogram tracking latencies up to maxLatency.
func NewHistogram(maxLatency time.Duration) *Histogram {
	h := &Histogram{maxLatency: maxLatency}
	h.mu.h = hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), sigFigs)
	return h
}

// Record saves a new datapoint and should be called once per cycle.
func (h *Histogram) Record(elapsed time.Duration) {
	if elapsed < minLatency {
		elapsed = minLatency
	} else if elapsed > h.maxLatency {
		elapsed = h.maxLatency
	}

	h.mu.Lock()
	err := h.mu.h.RecordValue(elapsed.Nanoseconds())
	h.mu.Unlock()

	if err != nil {
		// The histogram only drops values that are out of range, and the
		// value was clamped to the range above.
		panic(fmt.Sprintf("recording value: %s", err))
	}
}

// Merge adds the datapoints of other to h.
func (h *Histogram) Merge(other *Histogram) {
	other.mu.Lock()
	snapshot := hdrhistogram.Import(other.mu.h.Export())
	other.mu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.mu.h.Merge(snapshot)
}

// Summary returns the count and a few quantiles of the recorded latencies.
func (h *Histogram) Summary() LatencySummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mu.h.TotalCount() == 0 {
		return LatencySummary{}
	}
	return LatencySummary{
		Count: h.mu.h.TotalCount(),
		P50:   time.Duration(h.mu.h.ValueAtQuantile(50)),
		P99:   time.Duration(h.mu.h.ValueAtQuantile(99)),
		Max:   time.Duration(h.mu.h.Max()),
		Mean:  time.Duration(h.mu.h.Mean()),
	}
}

// LatencySummary condenses a Histogram.
type LatencySummary struct {
	Count int64
	P50   time.Duration
	P99   time.Duration
	Max   time.Duration
	Mean  time.Duration
}
