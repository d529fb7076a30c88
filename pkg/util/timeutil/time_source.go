// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"context"
	"time"

	"github.com/cockroachdb/crlib/crtime"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/syncutil"
)

// TimeSource abstracts the monotonic clock and the sleep primitive so that
// code driven by them can be tested with a ManualTime.
type TimeSource interface {
	NowMono() crtime.Mono
	Sleep(ctx context.Context, d time.Duration) error
}

// DefaultTimeSource is the process monotonic clock with a reusable Sleeper.
// It must not be shared between goroutines.
type DefaultTimeSource struct {
	sleeper Sleeper
}

var _ TimeSource = (*DefaultTimeSource)(nil)

// NowMono implements TimeSource.
func (*DefaultTimeSource) NowMono() crtime.Mono {
	return crtime.NowMono()
}

// Sleep implements TimeSource.
func (s *DefaultTimeSource) Sleep(ctx context.Context, d time.Duration) error {
	return s.sleeper.Sleep(ctx, d)
}

// ManualTime is a TimeSource whose clock only moves when told to. Sleep
// advances the clock by the requested duration instead of blocking.
type ManualTime struct {
	mu  syncutil.Mutex
	now crtime.Mono
}

var _ TimeSource = (*ManualTime)(nil)

// NewManualTime returns a ManualTime reading start.
func NewManualTime(start crtime.Mono) *ManualTime {
	return &ManualTime{now: start}
}

// NowMono implements TimeSource.
func (m *ManualTime) NowMono() crtime.Mono {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Sleep implements TimeSource.
func (m *ManualTime) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		m.Advance(d)
	}
	return nil
}
