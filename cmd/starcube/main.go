package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JieJackyZhang/Pattern-Recognition/cube"
	"github.com/JieJackyZhang/Pattern-Recognition/pipeline"
)

func newLogger(lvl string) (log.Logger, error) {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)
	return logger, nil
}

func main() {
	var (
		cfg         pipeline.Config
		metricsFile string
		logLevel    string
	)

	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file after the run")
	flag.StringVar(&logLevel, "log.level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger, err := newLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	reg := prometheus.NewRegistry()
	cfg.Metrics = cube.NewMetrics(reg)
	cfg.Console = os.Stdout
	cfg.Progress = os.Stderr

	level.Info(logger).Log(
		"msg", "starting starcube",
		"input", cfg.Input,
		"output", cfg.Output,
		"min_support", cfg.MinSupport,
		"reorder", cfg.Reorder,
		"format", cfg.Format,
	)

	report, err := pipeline.Run(cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "run failed", "run_id", report.RunID, "err", err)
		if errors.Is(err, pipeline.ErrVerify) {
			level.Error(logger).Log("msg", "the cube does not match the brute-force computation")
		}
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "report", "summary", report.String())
	level.Info(logger).Log("msg", "engine stats", "stats", report.Stats.String())
	level.Debug(logger).Log("msg", "memory", "report", report.Memory.JSON())

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			level.Error(logger).Log("msg", "failed to write metrics", "file", metricsFile, "err", err)
			os.Exit(1)
		}
	}
}
