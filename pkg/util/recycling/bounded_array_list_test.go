// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestNewBoundedArrayListErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		f    Factory[int]
		max  int
		opts []Option
	}{
		{name: "nil factory", max: 4},
		{name: "negative max", f: New[int](), max: -2},
		{name: "negative initial", f: New[int](), max: 4, opts: []Option{WithInitialCapacity(-1)}},
		{name: "initial above max", f: New[int](), max: 4, opts: []Option{WithInitialCapacity(5)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBoundedArrayList(tc.f, tc.max, tc.opts...)
			require.True(t, errors.Is(err, ErrIllegalConstruction), "%v", err)
		})
	}
}

func TestBoundedArrayListCeiling(t *testing.T) {
	f, constructed := countingFactory[int]()
	l, err := NewBoundedArrayList(f, 5)
	require.NoError(t, err)
	require.Equal(t, 5, l.MaxCap())

	for i := 0; i < 5; i++ {
		e, err := l.Add()
		require.NoError(t, err)
		*e = i
	}
	// The minimum positive capacity is clamped to the ceiling.
	require.Equal(t, 5, l.Cap())
	require.Equal(t, 5, *constructed)

	_, err = l.Add()
	require.True(t, errors.Is(err, ErrResourceExhausted), "%v", err)
	_, err = l.InsertAt(0)
	require.True(t, errors.Is(err, ErrResourceExhausted), "%v", err)
	_, err = l.GetAndGrow(5)
	require.True(t, errors.Is(err, ErrResourceExhausted), "%v", err)

	require.Equal(t, 5, l.Len())
	require.Equal(t, 5, l.Cap())
	require.Equal(t, 5, *constructed)
	require.Equal(t, []int{0, 1, 2, 3, 4}, liveValues(&l.slotArray))
}

func TestBoundedArrayListGrowthIsClamped(t *testing.T) {
	l, err := NewBoundedArrayList(New[int](), 10, WithInitialCapacity(2))
	require.NoError(t, err)

	var caps []int
	for i := 0; i < 10; i++ {
		_, err := l.Add()
		require.NoError(t, err)
		if len(caps) == 0 || caps[len(caps)-1] != l.Cap() {
			caps = append(caps, l.Cap())
		}
	}
	require.Equal(t, []int{2, 8, 10}, caps)
	_, err = l.Add()
	require.True(t, errors.Is(err, ErrResourceExhausted), "%v", err)
}

func TestBoundedArrayListGetAndGrow(t *testing.T) {
	l, err := NewBoundedArrayList(New[int](), 16)
	require.NoError(t, err)

	_, err = l.GetAndGrow(16)
	require.EqualError(t, err,
		"requested capacity 17 is greater than max capacity 16: capacity exhausted")
	require.Equal(t, 0, l.Len())
	require.Equal(t, 0, l.Cap())

	e, err := l.GetAndGrow(15)
	require.NoError(t, err)
	*e = 7
	require.Equal(t, 16, l.Len())
	require.Equal(t, 16, l.Cap())
}

func TestBoundedArrayListZeroCeiling(t *testing.T) {
	l, err := NewBoundedArrayList(New[int](), 0)
	require.NoError(t, err)
	_, err = l.Add()
	require.True(t, errors.Is(err, ErrResourceExhausted), "%v", err)
	require.True(t, l.Empty())
}

func TestBoundedArrayListInsertAndRemove(t *testing.T) {
	l, err := NewBoundedArrayList(New[int](), 4)
	require.NoError(t, err)
	for _, v := range []int{1, 2, 3} {
		e, err := l.Add()
		require.NoError(t, err)
		*e = v
	}
	e, err := l.InsertAt(0)
	require.NoError(t, err)
	*e = 0
	require.Equal(t, "[0 1 2 3]", l.String())

	require.NoError(t, l.Remove(2))
	require.NoError(t, l.FastRemove(0))
	require.Equal(t, "[3 1]", l.String())

	other, err := NewBoundedArrayList(New[int](), 2)
	require.NoError(t, err)
	for _, v := range []int{3, 1} {
		e, err := other.Add()
		require.NoError(t, err)
		*e = v
	}
	require.True(t, l.EqualFunc(other, func(a, b *int) bool { return *a == *b }))
}
