// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"context"
	"time"
)

// Sleeper puts a goroutine to sleep for a given duration, reusing a single
// time.Timer across calls so that a loop sleeping once per iteration does not
// allocate a timer per iteration. The zero value is ready to use.
//
// A Sleeper must not be used by more than one goroutine at a time.
type Sleeper struct {
	timer *time.Timer
}

// Sleep blocks for d or until ctx is done, whichever comes first, and returns
// ctx.Err() in the latter case. A non-positive d returns immediately.
func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	if s.timer == nil {
		s.timer = time.NewTimer(d)
	} else {
		s.timer.Reset(d)
	}
	select {
	case <-s.timer.C:
		return nil
	case <-ctx.Done():
		if !s.timer.Stop() {
			// Drain a concurrent expiry so the next Reset starts clean.
			select {
			case <-s.timer.C:
			default:
			}
		}
		return ctx.Err()
	}
}

// Stop releases the underlying timer.
func (s *Sleeper) Stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
