// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/loopbench"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

var runFlags = pflag.NewFlagSet(`run`, pflag.ContinueOnError)
var configFile = runFlags.String("config", "", "YAML file to read the configuration from")

// flagKeys maps the flags that override configuration keys to those keys.
var flagKeys = map[string]string{
	"loops":        "loops",
	"cycles":       "cycles",
	"period":       "period",
	"seed":         "seed",
	"metrics-addr": "metrics_addr",
}

func init() {
	d := loopbench.Defaults()
	runFlags.Int("loops", d.Loops, "number of loops run in parallel")
	runFlags.Int64("cycles", d.Cycles, "cycles per loop, 0 to run until interrupted")
	runFlags.Duration("period", d.Period, "target cycle period, 0 to run cycles back to back")
	runFlags.Int64("seed", d.Seed, "seed of the simulated sensors, 0 for a random seed")
	runFlags.String("metrics-addr", d.MetricsAddr, "address to serve Prometheus metrics on")
	runCmd.Flags().AddFlagSet(runFlags)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the control loops and print a report",
	Long: `Run the control loops and print a report.

Settings come from, in increasing priority, the defaults, the file named by
--config, LOOPBENCH_* environment variables and the flags given explicitly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, cmd)
	},
}

// overrides collects the values of the flags set on the command line.
func overrides(fs *pflag.FlagSet) map[string]interface{} {
	out := map[string]interface{}{}
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

func run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := loopbench.NewLoader(
		loopbench.WithConfigFile(*configFile),
		loopbench.WithOverrides(overrides(cmd.Flags())),
	).Load()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := loopbench.NewMetrics(reg)

	g, gCtx := errgroup.WithContext(ctx)
	runCtx, cancelServer := context.WithCancel(gCtx)
	defer cancelServer()
	if cfg.MetricsAddr != "" {
		log.Infof(ctx, "serving metrics on %s", cfg.MetricsAddr)
		g.Go(func() error {
			return loopbench.ServeMetrics(runCtx, cfg.MetricsAddr, reg)
		})
	}
	var report *loopbench.Report
	g.Go(func() error {
		defer cancelServer()
		var err error
		report, err = loopbench.Run(gCtx, cfg, loopbench.WithMetrics(metrics))
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return report.Print(cmd.OutOrStdout())
}
