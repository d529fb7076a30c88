// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import "github.com/cockroachdb/redact"

// BoundedArrayList is an ArrayList whose capacity never exceeds a ceiling
// fixed at construction. Growth follows the same policy as ArrayList but is
// clamped to the ceiling; an add that cannot be satisfied within it returns
// ErrResourceExhausted and leaves the list untouched.
type BoundedArrayList[E any] struct {
	slotArray[E]
}

// NewBoundedArrayList returns an empty BoundedArrayList that holds at most
// maxCapacity elements.
func NewBoundedArrayList[E any](
	f Factory[E], maxCapacity int, opts ...Option,
) (*BoundedArrayList[E], error) {
	if maxCapacity < 0 {
		// Rejected here since init reads -1 as no limit at all.
		return nil, illegalConstruction("illegal max capacity: %d", maxCapacity)
	}
	c := applyOptions(0 /* defaultCapacity */, opts)
	l := &BoundedArrayList[E]{}
	if err := l.init(f, c.initialCapacity, maxCapacity); err != nil {
		return nil, err
	}
	return l, nil
}

// MaxCap returns the capacity ceiling.
func (l *BoundedArrayList[E]) MaxCap() int {
	return l.maxCap
}

// Add appends an element and returns it.
func (l *BoundedArrayList[E]) Add() (*E, error) {
	return l.getAndGrow(l.size)
}

// InsertAt inserts an element at index, shifting the elements at and after
// index to the right, and returns it.
func (l *BoundedArrayList[E]) InsertAt(index int) (*E, error) {
	return l.insertAt(index, l.Add)
}

// GetAndGrow returns the element at index, growing the list to index+1
// elements if it is shorter.
func (l *BoundedArrayList[E]) GetAndGrow(index int) (*E, error) {
	return l.getAndGrow(index)
}

// EqualFunc reports whether both lists hold the same number of elements and
// eq holds index-wise.
func (l *BoundedArrayList[E]) EqualFunc(
	other *BoundedArrayList[E], eq func(a, b *E) bool,
) bool {
	return l.equalFunc(&other.slotArray, eq)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (l *BoundedArrayList[E]) SafeFormat(w redact.SafePrinter, _ rune) {
	l.safeFormat(w)
}

func (l *BoundedArrayList[E]) String() string {
	return redact.StringWithoutMarkers(l)
}
