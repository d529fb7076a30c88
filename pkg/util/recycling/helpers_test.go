// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// point is a small mutable element used throughout the tests.
type point struct {
	x, y int
}

// countingFactory returns a factory of zero-valued elements and a pointer to
// the number of elements it has constructed.
func countingFactory[E any]() (Factory[E], *int) {
	var n int
	return func() *E {
		n++
		return new(E)
	}, &n
}

// nilAfter returns a factory that constructs n elements and then hands back
// nil, breaking the Factory contract.
func nilAfter[E any](n int) Factory[E] {
	return func() *E {
		if n == 0 {
			return nil
		}
		n--
		return new(E)
	}
}

// liveValues copies the live ints of an array-backed container.
func liveValues(s *slotArray[int]) []int {
	out := make([]int, s.size)
	for i := range out {
		out[i] = *s.values[i]
	}
	return out
}

// fill appends vs to an ArrayList.
func fill(l *ArrayList[int], vs ...int) {
	for _, v := range vs {
		*l.Add() = v
	}
}

// requireSameMultiset checks that got is a permutation of want.
func requireSameMultiset(t *testing.T, want, got []int) {
	t.Helper()
	want, got = slices.Clone(want), slices.Clone(got)
	slices.Sort(want)
	slices.Sort(got)
	require.Equal(t, want, got)
}

// requireSlotsIntact checks that the array still holds every element it ever
// constructed, each exactly once.
func requireSlotsIntact[E any](t *testing.T, s *slotArray[E], constructed int) {
	t.Helper()
	require.NoError(t, s.verify())
	require.Len(t, s.values, constructed)
	seen := make(map[*E]struct{}, len(s.values))
	for _, e := range s.values {
		seen[e] = struct{}{}
	}
	require.Len(t, seen, constructed)
}
