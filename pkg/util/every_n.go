// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package util

import (
	"time"

	"github.com/cockroachdb/crlib/crtime"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/syncutil"
)

// Instant is a point in time that can be subtracted from another of its kind.
// Both time.Time and crtime.Mono qualify.
type Instant[T any] interface {
	Sub(T) time.Duration
}

// EveryN provides a way to rate limit spammy events. It tracks how recently a
// given event has occurred so that it can determine whether it's worth
// handling again.
//
// The zero value for EveryN is usable and is equivalent to Every(0), meaning
// that all calls to ShouldProcess will return true.
//
// NOTE: If you specifically care about log messages, you should use the
// version of this in the log package.
type EveryN[T Instant[T]] struct {
	// N is the minimum duration of time between processed events.
	N time.Duration

	syncutil.Mutex
	processed     bool
	lastProcessed T
}

// Every is a convenience constructor for an EveryN object that allows an
// event every n duration of wall time.
func Every(n time.Duration) EveryN[time.Time] {
	return EveryN[time.Time]{N: n}
}

// EveryMono is like Every but is driven by the monotonic clock.
func EveryMono(n time.Duration) EveryN[crtime.Mono] {
	return EveryN[crtime.Mono]{N: n}
}

// ShouldProcess returns whether it's been more than N time since the last
// event. The first call always returns true.
func (e *EveryN[T]) ShouldProcess(now T) bool {
	var shouldProcess bool
	e.Lock()
	if !e.processed || now.Sub(e.lastProcessed) >= e.N {
		shouldProcess = true
		e.processed = true
		e.lastProcessed = now
	}
	e.Unlock()
	return shouldProcess
}
