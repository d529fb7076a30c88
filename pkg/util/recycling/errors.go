// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import "github.com/cockroachdb/errors"

// Error kinds reported by the containers in this package. Callers match them
// with errors.Is; the returned errors wrap these sentinels with the offending
// index, size or capacity.
var (
	// ErrIndexOutOfRange is returned when an index falls outside the live
	// region of a container.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrResourceExhausted is returned when a bounded or preallocated
	// container cannot hold the requested number of elements.
	ErrResourceExhausted = errors.New("capacity exhausted")
	// ErrEmptyContainer is returned by peek and remove operations on a
	// container without live elements.
	ErrEmptyContainer = errors.New("container is empty")
	// ErrConcurrentMutation is returned by a cursor whose list was
	// structurally modified since the cursor was created or last reset.
	ErrConcurrentMutation = errors.New("container modified during iteration")
	// ErrNoSuchElement is returned by Cursor.Next once the cursor is
	// exhausted.
	ErrNoSuchElement = errors.New("no more elements")
	// ErrIllegalConstruction is returned by constructors given an unusable
	// configuration.
	ErrIllegalConstruction = errors.New("illegal container configuration")
)

func indexOutOfRange(index, size int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, size)
}

func resourceExhausted(requested, maxCapacity int) error {
	return errors.Wrapf(ErrResourceExhausted,
		"requested capacity %d is greater than max capacity %d", requested, maxCapacity)
}

func illegalConstruction(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIllegalConstruction, format, args...)
}

// brokenFactory is raised when a factory hands back nil after the container
// was successfully constructed. There is no way to report it through the
// infallible Add of an unbounded list, and the container cannot be left with
// a nil slot.
func brokenFactory(index int) error {
	return errors.Mark(
		errors.AssertionFailedf("element factory returned nil for slot %d", index),
		ErrIllegalConstruction)
}
