package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/JieJackyZhang/Pattern-Recognition/cube"
	"github.com/JieJackyZhang/Pattern-Recognition/dataset"
	"github.com/JieJackyZhang/Pattern-Recognition/errutil"
	"github.com/JieJackyZhang/Pattern-Recognition/output"
	"github.com/JieJackyZhang/Pattern-Recognition/utils"
)

var ErrVerify = errors.New("cube differs from brute force")

// Report summarizes a finished run.
type Report struct {
	RunID      string
	Input      string
	Dimensions []string
	Tuples     int
	Cells      int
	Digest     string
	Stats      cube.Stats
	Memory     utils.MemReport
	Verified   bool
	Duration   time.Duration
}

func (r Report) String() string {
	return fmt.Sprintf("run %s: %s cells over %d dimensions from %s tuples of %s, digest %s, total %v",
		r.RunID,
		humanize.Comma(int64(r.Cells)),
		len(r.Dimensions),
		humanize.Comma(int64(r.Tuples)),
		r.Input,
		r.Digest,
		r.Duration,
	)
}

// Run reads cfg.Input, computes its iceberg cube and writes the cells to the console and the
// result file. The result file is only created once the input has been read and encoded.
func Run(cfg Config, logger log.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	start := time.Now()
	report := Report{RunID: uuid.NewString(), Input: cfg.Input}
	logger = log.With(logger, "run_id", report.RunID)

	ds, err := load(cfg, logger)
	if err != nil {
		return report, err
	}
	report.Dimensions = ds.Names()
	report.Tuples = ds.TupleCount()

	var digest *output.Digest
	var stats cube.Stats
	err = withResult(cfg, ds.Names(), func(sink output.LabelSink) error {
		digest = output.NewDigest(cfg.Width)
		var ref *output.Collector
		sinks := []output.LabelSink{sink, digest}
		if cfg.Verify {
			ref = output.NewCollector()
			sinks = append(sinks, ref)
		}

		eng := cube.New(
			cube.WithMinSupport(cfg.MinSupport),
			cube.WithLogger(logger),
			cube.WithMetrics(cfg.Metrics),
		)
		var err error
		stats, err = eng.Compute(ds, output.Decode(ds, output.Multi(sinks...)))
		if err != nil {
			return fmt.Errorf("compute cube: %w", err)
		}
		report.Memory = eng.MemReport()
		level.Info(logger).Log("msg", "cube computed", "cells", stats.CellsEmitted, "duration", stats.Duration, "arenas", humanize.Bytes(uint64(stats.ArenaBytes)))

		if cfg.Verify {
			if err := verify(ds, cfg.MinSupport, ref); err != nil {
				return err
			}
			report.Verified = true
			level.Info(logger).Log("msg", "cube verified against brute force", "cells", ref.Len())
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	report.Stats = stats
	report.Cells = stats.CellsEmitted
	report.Digest = digest.String()
	report.Duration = time.Since(start)

	if cfg.StatsLog != "" {
		err := utils.AppendStats(cfg.StatsLog, filepath.Base(cfg.Input),
			int64(cfg.MinSupport),
			int64(stats.Dimensions),
			int64(stats.Tuples),
			int64(stats.CellsEmitted),
			int64(stats.TreesMaterialized),
			int64(stats.NodesCreated),
			int64(stats.ArenaBytes),
			stats.Duration.Microseconds(),
		)
		if err != nil {
			return report, err
		}
	}
	level.Info(logger).Log("msg", "run finished", "cells", report.Cells, "digest", report.Digest, "duration", report.Duration)
	return report, nil
}

// load reads, encodes, star-reduces and optionally reorders the input.
func load(cfg Config, logger log.Logger) (*dataset.Dataset, error) {
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if cfg.Progress != nil && !cfg.Quiet {
		size := int64(-1)
		if st, err := f.Stat(); err == nil {
			size = st.Size()
		}
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("reading "+filepath.Base(cfg.Input)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}

	stageStart := time.Now()
	table, err := dataset.Read(r, dataset.ReadOptions{HasHeader: cfg.Header})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.Input, err)
	}
	level.Info(logger).Log("msg", "input read", "rows", len(table.Rows), "delimiter", string(table.Delimiter), "duration", time.Since(stageStart))

	stageStart = time.Now()
	ds, err := dataset.Encode(table)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cfg.Input, err)
	}
	if err := ds.Compress(cfg.MinSupport); err != nil {
		return nil, err
	}
	level.Info(logger).Log("msg", "dataset encoded", "tuples", ds.TupleCount(), "dimensions", ds.DimensionCount(), "duration", time.Since(stageStart))

	for i := 0; i < ds.DimensionCount(); i++ {
		d := ds.Dimension(i)
		level.Debug(logger).Log("msg", "dimension", "name", d.Name, "cardinality", d.Cardinality(), "star_cardinality", d.StarCardinality())
	}

	if cfg.Reorder {
		names := ds.Names()
		perm := ds.ReorderDimensions()
		order := utils.Map(perm, func(c int) string { return names[c] })
		level.Debug(logger).Log("msg", "dimensions reordered", "order", strings.Join(order, ","))
	}
	return ds, nil
}

// withResult opens the console and result-file sinks, runs fn with them and closes them.
// A failed run removes its result file.
func withResult(cfg Config, names []string, fn func(output.LabelSink) error) (err error) {
	var console []io.Writer
	if !cfg.Quiet && cfg.Console != nil {
		console = append(console, cfg.Console)
	}

	var file io.WriteCloser
	if cfg.Output != "" {
		file, err = output.CreateResultFile(cfg.Output)
		if err != nil {
			return err
		}
		defer func() {
			err = errutil.First(err, file.Close())
			if err != nil {
				_ = os.Remove(cfg.Output)
			}
		}()
	}

	var pq *output.ParquetWriter
	textOuts := console
	if file != nil {
		if cfg.Format == FormatParquet {
			pq = output.NewParquetWriter(file, names)
		} else {
			textOuts = append(textOuts, file)
		}
	}
	text := output.NewTextWriter(cfg.Width, textOuts...)

	sink := output.LabelSink(text)
	if pq != nil {
		sink = output.Multi(text, pq)
	}

	err = fn(sink)
	err = errutil.First(err, text.Flush())
	if pq != nil {
		err = errutil.First(err, pq.Close())
	}
	return err
}

func verify(ds *dataset.Dataset, minSupport int, got *output.Collector) error {
	want := output.NewCollector()
	if err := cube.BruteForce(ds, minSupport, output.Decode(ds, want)); err != nil {
		return fmt.Errorf("brute force: %w", err)
	}
	if got.Duplicates() > 0 {
		return fmt.Errorf("%w: %d cells emitted more than once", ErrVerify, got.Duplicates())
	}
	if diff := got.Diff(want); diff != "" {
		return fmt.Errorf("%w: %s", ErrVerify, diff)
	}
	return nil
}
