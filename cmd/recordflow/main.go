// Command recordflow assembles the employee dashboard for the bundled sample
// dataset.
//
// Usage:
//
//	recordflow [-config path] [-parallel] [-workers n] [-format text|json] ...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vnykmshr/recordflow/pkg/aggregation/collect"
	"github.com/vnykmshr/recordflow/pkg/metrics"
	"github.com/vnykmshr/recordflow/pkg/record"
	"github.com/vnykmshr/recordflow/pkg/report"
	"github.com/vnykmshr/recordflow/pkg/scheduling/parallel"
	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "recordflow: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	config, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(stderr, config.LogFormat, config.LogLevel)
	if err != nil {
		return err
	}

	gatherer := prometheus.NewRegistry()
	registry := metrics.New(metrics.Config{
		Enabled:   config.Metrics,
		Registry:  gatherer,
		Namespace: config.MetricsNamespace,
	})

	var ev *parallel.Evaluator
	if config.Parallel {
		ev, err = parallel.New(parallel.Config{
			Name:     "cli",
			Workers:  config.Workers,
			MinChunk: config.MinChunk,
			Logger:   logger,
			Metrics:  registry,
		})
		if err != nil {
			return err
		}
	}

	assembler, err := report.New(report.Config{
		HighEarnerThreshold: config.HighEarnerThreshold,
		TopN:                config.TopN,
		Parallel:            ev,
		Logger:              logger,
		Metrics:             registry,
	})
	if err != nil {
		return err
	}

	records := record.Sample()
	r, err := assembler.Assemble(ctx, records)
	if err != nil {
		return err
	}

	bands, err := stream.Collect(ctx,
		stream.Instrument(stream.FromSlice(records), "salary_bands", registry),
		collect.GroupingByWith(record.SalaryBand, collect.Counting[record.Record]()))
	if err != nil {
		return err
	}

	logger.Info("dashboard ready",
		"mode", assembler.Mode(), "records", len(records), "departments", len(r.Departments))

	switch config.Format {
	case "json":
		err = writeJSON(stdout, r)
	default:
		err = render(stdout, r, bands, config.HighEarnerThreshold)
	}
	if err != nil {
		return err
	}

	if registry != nil {
		return writeMetrics(stderr, gatherer)
	}
	return nil
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func writeJSON(w io.Writer, r *report.BusinessReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
