// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/buildutil"
)

// minimumPositiveCapacity is the capacity an empty array list jumps to the
// first time it grows.
const minimumPositiveCapacity = 8

// noCapacityLimit is the maxCap of an array that may grow without bound.
const noCapacityLimit = -1

// slotArray is the storage shared by the array-backed containers. values
// holds one constructed element per slot; values[:size] is the live region
// and values[size:] the reserve. Slots are only ever reordered, never
// dropped, so every element the factory produced stays reachable.
type slotArray[E any] struct {
	values  []*E
	size    int
	factory Factory[E]
	// minPositiveCap is the capacity reached by the first growth of an empty
	// array. It never exceeds maxCap.
	minPositiveCap int
	// maxCap is the capacity ceiling, or noCapacityLimit.
	maxCap int
}

func (s *slotArray[E]) init(f Factory[E], initialCapacity, maxCap int) error {
	if f == nil {
		return illegalConstruction("nil element factory")
	}
	if initialCapacity < 0 {
		return illegalConstruction("illegal capacity: %d", initialCapacity)
	}
	s.minPositiveCap = minimumPositiveCapacity
	if maxCap != noCapacityLimit {
		if maxCap < 0 {
			return illegalConstruction("illegal max capacity: %d", maxCap)
		}
		if initialCapacity > maxCap {
			return illegalConstruction(
				"initial capacity %d is greater than max capacity %d", initialCapacity, maxCap)
		}
		s.minPositiveCap = min(s.minPositiveCap, maxCap)
	}
	values := make([]*E, initialCapacity)
	for i := range values {
		if values[i] = f(); values[i] == nil {
			return illegalConstruction("element factory returned nil for slot %d", i)
		}
	}
	s.values = values
	s.factory = f
	s.maxCap = maxCap
	return nil
}

// ensureCapacity grows the backing array so that it holds at least minCap
// slots. The array grows by half its size, clamped to the ceiling and raised
// to minCap when that is not enough. Existing slots keep their elements; the
// new ones are filled by the factory. If minCap cannot be satisfied nothing
// is modified.
func (s *slotArray[E]) ensureCapacity(minCap int) error {
	prev := len(s.values)
	if minCap <= prev {
		return nil
	}
	bounded := s.maxCap != noCapacityLimit
	if bounded && minCap > s.maxCap {
		return resourceExhausted(minCap, s.maxCap)
	}
	newCap := prev + prev>>1
	if bounded && newCap > s.maxCap {
		newCap = s.maxCap
	}
	if newCap < minCap {
		newCap = minCap
	}
	values := make([]*E, newCap)
	copy(values, s.values)
	for i := prev; i < newCap; i++ {
		if values[i] = s.factory(); values[i] == nil {
			panic(brokenFactory(i))
		}
	}
	s.values = values
	return nil
}

// getAndGrow returns the element at index, extending the live region to
// index+1 and growing the backing array as needed.
func (s *slotArray[E]) getAndGrow(index int) (*E, error) {
	if index < 0 {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index cannot be negative: %d", index)
	}
	if index >= len(s.values) {
		if err := s.ensureCapacity(max(s.minPositiveCap, index+1)); err != nil {
			return nil, err
		}
	}
	if index >= s.size {
		s.size = index + 1
	}
	s.maybeAssertInvariants()
	return s.values[index], nil
}

// insertAt appends an element through add and rotates it into position
// index with adjacent swaps.
func (s *slotArray[E]) insertAt(index int, add func() (*E, error)) (*E, error) {
	if index < 0 || index > s.size {
		return nil, indexOutOfRange(index, s.size)
	}
	e, err := add()
	if err != nil {
		return nil, err
	}
	for i := s.size - 1; i > index; i-- {
		s.values[i], s.values[i-1] = s.values[i-1], s.values[i]
	}
	s.maybeAssertInvariants()
	return e, nil
}

func (s *slotArray[E]) rangeCheck(index int) error {
	if index < 0 || index >= s.size {
		return indexOutOfRange(index, s.size)
	}
	return nil
}

// Len returns the number of live elements.
func (s *slotArray[E]) Len() int {
	return s.size
}

// Cap returns the number of constructed elements, live and reserve.
func (s *slotArray[E]) Cap() int {
	return len(s.values)
}

// Empty returns whether there are no live elements.
func (s *slotArray[E]) Empty() bool {
	return s.size == 0
}

// Clear empties the container without touching its storage. The elements
// move to the reserve and are handed out again, dirty, by later adds.
func (s *slotArray[E]) Clear() {
	s.size = 0
}

// Get returns the element at index i.
func (s *slotArray[E]) Get(i int) (*E, error) {
	if err := s.rangeCheck(i); err != nil {
		return nil, err
	}
	return s.values[i], nil
}

// First returns the first live element, if any.
func (s *slotArray[E]) First() (*E, bool) {
	if s.size == 0 {
		return nil, false
	}
	return s.values[0], true
}

// Last returns the last live element, if any.
func (s *slotArray[E]) Last() (*E, bool) {
	if s.size == 0 {
		return nil, false
	}
	return s.values[s.size-1], true
}

// Swap exchanges the elements at i and j.
func (s *slotArray[E]) Swap(i, j int) error {
	if err := s.rangeCheck(i); err != nil {
		return err
	}
	if err := s.rangeCheck(j); err != nil {
		return err
	}
	s.values[i], s.values[j] = s.values[j], s.values[i]
	return nil
}

// FastRemove removes the element at i in constant time by moving the last
// live element into its place. The order of the remaining elements is not
// preserved.
func (s *slotArray[E]) FastRemove(i int) error {
	if err := s.rangeCheck(i); err != nil {
		return err
	}
	last := s.size - 1
	s.values[i], s.values[last] = s.values[last], s.values[i]
	s.size--
	s.maybeAssertInvariants()
	return nil
}

// Remove removes the element at i, shifting the elements after it one
// position to the left. The removed element is parked at the head of the
// reserve so it is reused by the next add.
func (s *slotArray[E]) Remove(i int) error {
	if err := s.rangeCheck(i); err != nil {
		return err
	}
	removed := s.values[i]
	copy(s.values[i:s.size-1], s.values[i+1:s.size])
	s.values[s.size-1] = removed
	s.size--
	s.maybeAssertInvariants()
	return nil
}

// RemoveFunc removes the first element for which pred returns true,
// preserving order. It reports whether an element was removed.
func (s *slotArray[E]) RemoveFunc(pred func(*E) bool) bool {
	i := s.IndexFunc(pred)
	if i < 0 {
		return false
	}
	if err := s.Remove(i); err != nil {
		panic(errors.HandleAsAssertionFailure(err))
	}
	return true
}

func (s *slotArray[E]) removeLast() error {
	if s.size == 0 {
		return ErrEmptyContainer
	}
	s.size--
	return nil
}

// Sort sorts the live elements with cmp. The sort is stable and does not
// allocate; reserve slots are left where they are.
func (s *slotArray[E]) Sort(cmp Comparator[E]) {
	slices.SortStableFunc(s.values[:s.size], (func(a, b *E) int)(cmp))
}

// Shuffle permutes the live elements uniformly at random (Fisher-Yates).
func (s *slotArray[E]) Shuffle(rng RandSource) {
	for i := s.size; i > 1; i-- {
		j := rng.Intn(i)
		s.values[i-1], s.values[j] = s.values[j], s.values[i-1]
	}
}

// IndexFunc returns the index of the first live element satisfying pred, or
// -1.
func (s *slotArray[E]) IndexFunc(pred func(*E) bool) int {
	for i := 0; i < s.size; i++ {
		if pred(s.values[i]) {
			return i
		}
	}
	return -1
}

// LastIndexFunc returns the index of the last live element satisfying pred,
// or -1.
func (s *slotArray[E]) LastIndexFunc(pred func(*E) bool) int {
	for i := s.size - 1; i >= 0; i-- {
		if pred(s.values[i]) {
			return i
		}
	}
	return -1
}

// ContainsFunc reports whether a live element satisfies pred.
func (s *slotArray[E]) ContainsFunc(pred func(*E) bool) bool {
	return s.IndexFunc(pred) >= 0
}

func (s *slotArray[E]) equalFunc(o *slotArray[E], eq func(a, b *E) bool) bool {
	if s == o {
		return true
	}
	if s.size != o.size {
		return false
	}
	for i := 0; i < s.size; i++ {
		if !eq(s.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

func (s *slotArray[E]) safeFormat(w redact.SafePrinter) {
	w.SafeRune('[')
	for i := 0; i < s.size; i++ {
		if i > 0 {
			w.SafeRune(' ')
		}
		w.Print(*s.values[i])
	}
	w.SafeRune(']')
}

// verify checks the structural invariants of the array.
func (s *slotArray[E]) verify() error {
	if s.size < 0 || s.size > len(s.values) {
		return errors.AssertionFailedf("size %d outside [0, %d]", s.size, len(s.values))
	}
	if s.maxCap != noCapacityLimit && len(s.values) > s.maxCap {
		return errors.AssertionFailedf("capacity %d exceeds max capacity %d", len(s.values), s.maxCap)
	}
	for i, e := range s.values {
		if e == nil {
			return errors.AssertionFailedf("slot %d holds no element", i)
		}
	}
	return nil
}

func (s *slotArray[E]) maybeAssertInvariants() {
	if !buildutil.Invariants {
		return
	}
	if err := s.verify(); err != nil {
		panic(err)
	}
}
