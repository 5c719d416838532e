package cube

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/JieJackyZhang/Pattern-Recognition/utils"
)

var (
	ErrNoData          = errors.New("no data")
	ErrShape           = errors.New("inconsistent input shape")
	ErrCodeOutOfRange  = errors.New("code out of range")
	ErrNegativeSupport = errors.New("negative minimum support")
)

// Source is the encoded dataset the engine consumes: a code matrix indexed
// [dimension][tuple] with codes in 0..Cardinalities()[dimension], 0 being the wildcard.
type Source interface {
	Columns() [][]int32
	Cardinalities() []int
}

// Input is a Source held in memory.
type Input struct {
	Matrix [][]int32
	Cards  []int
}

func (in Input) Columns() [][]int32 {
	return in.Matrix
}

func (in Input) Cardinalities() []int {
	return in.Cards
}

// validate checks the source and returns its tuple count.
func validate(src Source) (int, error) {
	columns, cards := src.Columns(), src.Cardinalities()
	if len(columns) == 0 || len(columns[0]) == 0 {
		return 0, ErrNoData
	}
	if len(cards) != len(columns) {
		return 0, fmt.Errorf("%w: %d columns, %d cardinalities", ErrShape, len(columns), len(cards))
	}
	tuples := len(columns[0])
	for d, col := range columns {
		if len(col) != tuples {
			return 0, fmt.Errorf("%w: column %d has %d tuples, want %d", ErrShape, d, len(col), tuples)
		}
		for ti, v := range col {
			if v < 0 || int(v) > cards[d] {
				return 0, fmt.Errorf("%w: dimension %d tuple %d code %d, cardinality %d", ErrCodeOutOfRange, d, ti, v, cards[d])
			}
		}
	}
	return tuples, nil
}

// Engine computes iceberg cubes with the Star-Cubing algorithm. An Engine runs one
// computation at a time; it is not safe for concurrent use.
type Engine struct {
	minSupport int
	logger     log.Logger
	metrics    *Metrics

	trees []*starTree
	sink  Sink
	err   error
	stats Stats
}

func New(opts ...Option) *Engine {
	cfg := applyOptions(opts)
	return &Engine{
		minSupport: cfg.minSupport,
		logger:     cfg.logger,
		metrics:    cfg.metrics,
	}
}

func (e *Engine) MinSupport() int {
	return e.minSupport
}

// Compute emits to sink every cell of the iceberg cube of src: each group-by over a subset
// of dimensions whose count is at least the minimum support, unselected dimensions set to
// the wildcard. Every qualifying cell is emitted exactly once, in no particular order.
func (e *Engine) Compute(src Source, sink Sink) (Stats, error) {
	if e.minSupport < 0 {
		return Stats{}, fmt.Errorf("%w: %d", ErrNegativeSupport, e.minSupport)
	}
	tuples, err := validate(src)
	if err != nil {
		return Stats{}, err
	}
	columns, cards := src.Columns(), src.Cardinalities()
	dims := len(columns)

	start := time.Now()
	e.sink = sink
	e.err = nil
	e.stats = Stats{Dimensions: dims, Tuples: tuples}
	e.trees = make([]*starTree, dims)
	for s := range e.trees {
		e.trees[s] = newStarTree(e, s, dims)
	}

	base := e.trees[0]
	base.nodes = newArena(tuples + 1)
	base.root = newBaseBuilder(columns, cards, &base.nodes).build()
	e.stats.BaseNodes = base.nodes.len()
	level.Debug(e.logger).Log("msg", "base tree built", "nodes", e.stats.BaseNodes, "dimensions", dims, "tuples", tuples)

	base.aggregate()

	e.stats.ArenaBytes = e.arenaBytes()
	e.stats.Duration = time.Since(start)
	stats := e.stats
	err = e.err
	e.sink = nil
	if err != nil {
		return stats, err
	}

	if e.metrics != nil {
		e.metrics.observe(stats)
	}
	level.Debug(e.logger).Log(
		"msg", "cube computed",
		"cells", stats.CellsEmitted,
		"trees", stats.TreesMaterialized,
		"nodes_created", stats.NodesCreated,
		"nodes_merged", stats.NodesMerged,
		"pruned", stats.PrunedBySupport,
		"duration", stats.Duration,
	)
	return stats, nil
}

func (e *Engine) emit(cell []int32, measure int) {
	if e.err != nil {
		return
	}
	if err := e.sink.Emit(cell, measure); err != nil {
		e.err = fmt.Errorf("emit cell: %w", err)
		return
	}
	e.stats.CellsEmitted++
}

func (e *Engine) arenaBytes() int {
	total := 0
	for _, t := range e.trees {
		total += t.nodes.byteSize()
	}
	return total
}

// MemReport reports the node arenas retained from the last computation.
func (e *Engine) MemReport() utils.MemReport {
	r := utils.MemReport{Name: "Engine"}
	for _, t := range e.trees {
		r.Children = append(r.Children, utils.MemReport{
			Name:       fmt.Sprintf("tree[%d] arena", t.start),
			TotalBytes: t.nodes.byteSize(),
		})
		r.TotalBytes += t.nodes.byteSize()
	}
	return r
}
