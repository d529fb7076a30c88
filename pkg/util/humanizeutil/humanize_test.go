// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package humanizeutil

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIBytes(t *testing.T) {
	require.Equal(t, "0 B", IBytes(0))
	require.Equal(t, "1.0 KiB", IBytes(1024))
	require.Equal(t, "-1.0 KiB", IBytes(-1024))
}

func TestCount(t *testing.T) {
	require.Equal(t, "1,234,567", Count(1234567))
	require.Equal(t, "-12", Count(-12))
}

func TestRate(t *testing.T) {
	require.Equal(t, "0.25", Rate(0.25))
	require.Equal(t, "3", Rate(3))
	require.Equal(t, "n/a", Rate(math.NaN()))
}

func TestDuration(t *testing.T) {
	testCases := []struct {
		val time.Duration
		exp string
	}{
		{val: 0, exp: "0µs"},
		{val: 12, exp: "0µs"},
		{val: 123456, exp: "123µs"},
		{val: 12345678, exp: "12ms"},
		{val: 12345678912, exp: "12.3s"},
		{val: 3 * time.Minute, exp: "3m0s"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.exp, Duration(tc.val), "%d", tc.val)
	}
}
