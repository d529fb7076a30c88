// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestOverrides(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.AddFlagSet(runFlags)
	require.NoError(t, fs.Parse([]string{"--cycles=20", "--period=2ms", "--metrics-addr=:9090"}))

	require.Equal(t, map[string]interface{}{
		"cycles":       "20",
		"period":       "2ms",
		"metrics_addr": ":9090",
	}, overrides(fs))
}
