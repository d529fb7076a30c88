// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// PreallocatedList is a list of at most a fixed number of elements, all of
// which are constructed by NewPreallocatedList. It never grows and never
// calls its Factory again, so it is the container of choice when the maximum
// number of live elements is known exactly.
type PreallocatedList[E any] struct {
	slotArray[E]
}

// NewPreallocatedList constructs capacity elements and returns an empty list
// over them.
func NewPreallocatedList[E any](f Factory[E], capacity int) (*PreallocatedList[E], error) {
	if capacity < 0 {
		return nil, illegalConstruction("illegal capacity: %d", capacity)
	}
	l := &PreallocatedList[E]{}
	if err := l.init(f, capacity, capacity); err != nil {
		return nil, err
	}
	return l, nil
}

// Add returns the next reserve element. It fails with ErrResourceExhausted
// once all elements are live.
func (l *PreallocatedList[E]) Add() (*E, error) {
	if l.size == len(l.values) {
		return nil, errors.Wrapf(ErrResourceExhausted,
			"cannot add element, max size %d reached", len(l.values))
	}
	return l.getAndGrow(l.size)
}

// RemoveLast removes the last live element.
func (l *PreallocatedList[E]) RemoveLast() error {
	if err := l.removeLast(); err != nil {
		return errors.Wrap(err, "cannot remove last element")
	}
	return nil
}

// Remaining returns how many more elements can be added.
func (l *PreallocatedList[E]) Remaining() int {
	return len(l.values) - l.size
}

// Equal reports whether both lists hold the same number of elements and eq
// holds index-wise. Capacity and reserve elements are not compared.
func (l *PreallocatedList[E]) Equal(other *PreallocatedList[E], eq func(a, b *E) bool) bool {
	return l.equalFunc(&other.slotArray, eq)
}

// Hash combines h over the live elements, in order, with the list length.
// Lists that are Equal under an eq consistent with h hash identically.
func (l *PreallocatedList[E]) Hash(h func(*E) uint64) uint64 {
	const prime = 31
	result := uint64(1)
	result = prime*result + uint64(l.size)
	for i := 0; i < l.size; i++ {
		result = prime*result + h(l.values[i])
	}
	return result
}

// EqualValues compares two preallocated lists of comparable elements by
// value.
func EqualValues[E comparable](a, b *PreallocatedList[E]) bool {
	return a.Equal(b, func(x, y *E) bool { return *x == *y })
}

// SafeFormat implements the redact.SafeFormatter interface.
func (l *PreallocatedList[E]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%d/%d ", redact.Safe(l.size), redact.Safe(len(l.values)))
	l.safeFormat(w)
}

func (l *PreallocatedList[E]) String() string {
	return redact.StringWithoutMarkers(l)
}
