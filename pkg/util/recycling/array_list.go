// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ArrayList is an unbounded array of recycled elements. Elements are
// constructed by the Factory the first time the array grows over them and are
// reused for the lifetime of the list: Clear and the remove operations only
// move elements to the reserve.
//
// Add hands back an element that may still hold state from a previous use;
// callers are expected to initialize every field they care about. A handle
// returned by the list is only meaningful until the next mutation that could
// reuse its slot.
//
// ArrayList is not safe for concurrent use.
type ArrayList[E any] struct {
	slotArray[E]
}

// NewArrayList returns an empty ArrayList. WithInitialCapacity constructs
// reserve elements up front.
func NewArrayList[E any](f Factory[E], opts ...Option) (*ArrayList[E], error) {
	c := applyOptions(0 /* defaultCapacity */, opts)
	l := &ArrayList[E]{}
	if err := l.init(f, c.initialCapacity, noCapacityLimit); err != nil {
		return nil, err
	}
	return l, nil
}

// Add appends an element and returns it. This is the only operation, with
// InsertAt and GetAndGrow, that may allocate, and only when the reserve is
// exhausted.
func (l *ArrayList[E]) Add() *E {
	e, err := l.getAndGrow(l.size)
	if err != nil {
		// An unbounded list only fails on negative indexes.
		panic(errors.HandleAsAssertionFailure(err))
	}
	return e
}

// InsertAt inserts an element at index, shifting the elements at and after
// index to the right, and returns it. index may equal Len.
func (l *ArrayList[E]) InsertAt(index int) (*E, error) {
	return l.insertAt(index, func() (*E, error) { return l.Add(), nil })
}

// GetAndGrow returns the element at index, growing the list to index+1
// elements if it is shorter.
func (l *ArrayList[E]) GetAndGrow(index int) (*E, error) {
	return l.getAndGrow(index)
}

// EqualFunc reports whether both lists hold the same number of elements and
// eq holds index-wise.
func (l *ArrayList[E]) EqualFunc(other *ArrayList[E], eq func(a, b *E) bool) bool {
	return l.equalFunc(&other.slotArray, eq)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (l *ArrayList[E]) SafeFormat(w redact.SafePrinter, _ rune) {
	l.safeFormat(w)
}

func (l *ArrayList[E]) String() string {
	return redact.StringWithoutMarkers(l)
}
