// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import "golang.org/x/exp/constraints"

// Factory constructs a new element. Every call must return a distinct,
// independently mutable instance; containers call it only when they need a
// slot they have never had before.
type Factory[E any] func() *E

// CopyFunc overwrites the state of dst with the state of src. It must leave
// src untouched and must not retain either pointer.
type CopyFunc[E any] func(dst, src *E)

// Comparator is a three-way ordering: negative when a sorts before b, zero
// when they are equivalent and positive otherwise.
type Comparator[E any] func(a, b *E) int

// RandSource is the random number generator used by Shuffle. *rand.Rand
// satisfies it.
type RandSource interface {
	// Intn returns a uniformly distributed integer in [0, n).
	Intn(n int) int
}

// New returns a Factory producing zero-valued elements.
func New[E any]() Factory[E] {
	return func() *E { return new(E) }
}

// Indexed returns a Factory that passes an incrementing index, starting at
// start, to fn. It is handy when every element needs to know the order in
// which it was constructed.
//
// The returned Factory is stateful and must not be shared between containers
// that are mutated concurrently.
func Indexed[E any](fn func(i int) *E, start int) Factory[E] {
	next := start
	return func() *E {
		e := fn(next)
		next++
		return e
	}
}

// Assign is the CopyFunc for element types whose state is fully captured by
// a shallow copy.
func Assign[E any](dst, src *E) {
	*dst = *src
}

// Ordered returns an ascending Comparator for ordered element types.
func Ordered[E constraints.Ordered]() Comparator[E] {
	return func(a, b *E) int {
		switch {
		case *a < *b:
			return -1
		case *a > *b:
			return 1
		default:
			return 0
		}
	}
}
