// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package loopbench

import (
	"fmt"
	"io"

	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/humanizeutil"
	"github.com/olekukonko/tablewriter"
)

var reportColumns = []string{
	"loop", "cycles", "overruns", "dropped", "allocs", "alloc bytes", "allocs/cycle", "p50", "p99", "max",
}

// Print writes the report as a table with one row per loop and a total.
func (r *Report) Print(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader(reportColumns)

	var total LoopReport
	for _, l := range r.Loops {
		table.Append(reportRow(fmt.Sprint(l.ID), l))
		total.Cycles += l.Cycles
		total.Overruns += l.Overruns
		total.DroppedOutliers += l.DroppedOutliers
		total.Allocs += l.Allocs
		total.AllocBytes += l.AllocBytes
	}
	total.AllocsPerCycle = allocsPer(total.Allocs, total.Cycles)
	total.Latency = r.Latency
	table.Append(reportRow("all", total))
	table.Render()

	_, err := fmt.Fprintf(w, "seed %d, elapsed %s\n", r.Seed, humanizeutil.Duration(r.Elapsed))
	return err
}

func reportRow(name string, l LoopReport) []string {
	return []string{
		name,
		humanizeutil.Count(l.Cycles),
		humanizeutil.Count(l.Overruns),
		humanizeutil.Count(l.DroppedOutliers),
		humanizeutil.Count(int64(l.Allocs)),
		humanizeutil.IBytes(int64(l.AllocBytes)),
		humanizeutil.Rate(l.AllocsPerCycle),
		humanizeutil.Duration(l.Latency.P50),
		humanizeutil.Duration(l.Latency.P99),
		humanizeutil.Duration(l.Latency.Max),
	}
}

func allocsPer(allocs uint64, cycles int64) float64 {
	if cycles == 0 {
		return 0
	}
	return float64(allocs) / float64(cycles)
}
