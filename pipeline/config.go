package pipeline

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/JieJackyZhang/Pattern-Recognition/cube"
	"github.com/JieJackyZhang/Pattern-Recognition/output"
)

const (
	FormatText    = "text"
	FormatParquet = "parquet"
)

var ErrConfig = errors.New("invalid configuration")

// Config describes one cube run.
type Config struct {
	Input      string
	Output     string
	MinSupport int
	Header     bool
	Reorder    bool
	Format     string
	Width      int
	Quiet      bool
	Verify     bool
	StatsLog   string

	// Console receives the result lines unless Quiet is set. Progress receives the input
	// progress bar; nil disables it.
	Console  io.Writer
	Progress io.Writer
	Metrics  *cube.Metrics
}

// RegisterFlags registers the run flags with their defaults.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.Input, "in", "", "Input flat file, one tuple per line")
	f.StringVar(&c.Output, "out", "", "Result file; a .zst suffix compresses it (empty: console only)")
	f.IntVar(&c.MinSupport, "min-support", 1, "Minimum count a cell needs to be reported")
	f.BoolVar(&c.Header, "header", false, "The first line holds the dimension names")
	f.BoolVar(&c.Reorder, "reorder", true, "Order dimensions by descending cardinality before computing")
	f.StringVar(&c.Format, "format", FormatText, "Result file format: text or parquet")
	f.IntVar(&c.Width, "width", output.DefaultWidth, "Column width of a label in text output")
	f.BoolVar(&c.Quiet, "quiet", false, "Do not echo cells or progress to the console")
	f.BoolVar(&c.Verify, "verify", false, "Cross-check the cube against a brute-force computation")
	f.StringVar(&c.StatsLog, "stats-log", "", "Append one CSV line of run statistics to this file")
}

func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: no input file", ErrConfig)
	}
	if c.MinSupport < 0 {
		return fmt.Errorf("%w: min-support %d is negative", ErrConfig, c.MinSupport)
	}
	switch c.Format {
	case FormatText:
	case FormatParquet:
		if c.Output == "" {
			return fmt.Errorf("%w: parquet format needs a result file", ErrConfig)
		}
	default:
		return fmt.Errorf("%w: unknown format %q", ErrConfig, c.Format)
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: width %d must be positive", ErrConfig, c.Width)
	}
	return nil
}
