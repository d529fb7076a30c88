// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"testing"

	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/randutil"
	"github.com/stretchr/testify/require"
)

const maxCount = 100

func testRingBuffer(t *testing.T, count int) {
	var buffer Buffer[int]
	naiveBuffer := make([]int, 0, count)
	for elementIdx := 0; elementIdx < count; elementIdx++ {
		if buffer.Len() != len(naiveBuffer) {
			t.Errorf("Length mismatch: expected %v, found %v", len(naiveBuffer), buffer.Len())
		}
		switch elementIdx % 6 {
		case 0, 1:
			buffer.AddFirst(elementIdx)
			naiveBuffer = append([]int{elementIdx}, naiveBuffer...)
		case 2, 3:
			buffer.AddLast(elementIdx)
			naiveBuffer = append(naiveBuffer, elementIdx)
		case 4:
			if len(naiveBuffer) > 0 {
				require.Equal(t, naiveBuffer[0], buffer.PopFirst())
				naiveBuffer = naiveBuffer[1:]
			}
		case 5:
			if len(naiveBuffer) > 0 {
				require.Equal(t, naiveBuffer[len(naiveBuffer)-1], buffer.PopLast())
				naiveBuffer = naiveBuffer[:len(naiveBuffer)-1]
			}
		}
		for pos, el := range naiveBuffer {
			require.Equal(t, el, buffer.Get(pos))
		}
		if len(naiveBuffer) > 0 {
			require.Equal(t, naiveBuffer[0], buffer.GetFirst())
			require.Equal(t, naiveBuffer[len(naiveBuffer)-1], buffer.GetLast())
		}
	}
}

func TestRingBuffer(t *testing.T) {
	for count := 1; count <= maxCount; count++ {
		testRingBuffer(t, count)
	}
}

func TestRingBufferRandom(t *testing.T) {
	rng, _ := randutil.NewTestRand()
	buffer := MakeBuffer[int](3)
	var naive []int
	for i := 0; i < 1000; i++ {
		switch rng.Intn(4) {
		case 0:
			buffer.AddFirst(i)
			naive = append([]int{i}, naive...)
		case 1:
			buffer.AddLast(i)
			naive = append(naive, i)
		case 2:
			if len(naive) > 0 {
				require.Equal(t, naive[0], buffer.PopFirst())
				naive = naive[1:]
			}
		case 3:
			if len(naive) > 0 {
				require.Equal(t, naive[len(naive)-1], buffer.PopLast())
				naive = naive[:len(naive)-1]
			}
		}
		require.Equal(t, len(naive), buffer.Len())
	}
}

func TestRingBufferPopClearsSlot(t *testing.T) {
	buffer := MakeBuffer[*int](2)
	v := 1
	buffer.AddLast(&v)
	buffer.AddLast(&v)
	buffer.PopFirst()
	buffer.PopLast()
	for _, p := range buffer.buffer {
		require.Nil(t, p)
	}
}

func TestRingBufferReserve(t *testing.T) {
	var buffer Buffer[int]
	buffer.Reserve(5)
	require.Equal(t, 5, buffer.Cap())
	require.Equal(t, 0, buffer.Len())

	for i := 0; i < 5; i++ {
		buffer.AddLast(i)
	}
	require.Equal(t, 5, buffer.Cap())
	require.Panics(t, func() { buffer.Reserve(4) })

	buffer.PopFirst()
	buffer.AddLast(5)
	buffer.Reserve(8)
	require.Equal(t, 8, buffer.Cap())
	for i := 0; i < 5; i++ {
		require.Equal(t, i+1, buffer.Get(i))
	}
	buffer.AddLast(6)
	require.Equal(t, 6, buffer.GetLast())

	buffer.Reset()
	require.Equal(t, 0, buffer.Len())
	require.Equal(t, 8, buffer.Cap())
	require.Panics(t, func() { buffer.GetFirst() })
}
