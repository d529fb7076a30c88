// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package humanizeutil renders byte counts, counts and durations for
// reports read by people.
package humanizeutil

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// IBytes is an int64 version of go-humanize's IBytes.
func IBytes(value int64) string {
	if value < 0 {
		return fmt.Sprintf("-%s", humanize.IBytes(uint64(-value)))
	}
	return humanize.IBytes(uint64(value))
}

// Count formats an integer with thousands separators.
func Count(value int64) string {
	return humanize.Comma(value)
}

// Rate formats a per-unit quantity with up to two decimals, e.g. "0.25".
func Rate(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "n/a"
	}
	return humanize.Ftoa(math.Round(value*100) / 100)
}
