package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
)

// Collector keeps every cell in memory, keyed by its formatted labels.
type Collector struct {
	cells map[string]int
	dups  int
}

func NewCollector() *Collector {
	return &Collector{cells: make(map[string]int)}
}

func cellKey(labels []string) string {
	return strings.Join(labels, "\x1f")
}

func (c *Collector) Write(labels []string, measure int) error {
	key := cellKey(labels)
	if _, ok := c.cells[key]; ok {
		c.dups++
	}
	c.cells[key] = measure
	return nil
}

func (c *Collector) Len() int {
	return len(c.cells)
}

// Duplicates counts cells written more than once.
func (c *Collector) Duplicates() int {
	return c.dups
}

// Measure returns the measure of the cell with the given labels.
func (c *Collector) Measure(labels ...string) (int, bool) {
	m, ok := c.cells[cellKey(labels)]
	return m, ok
}

// Lines returns every cell formatted with FormatCell, sorted.
func (c *Collector) Lines(width int) []string {
	out := make([]string, 0, len(c.cells))
	for key, m := range c.cells {
		out = append(out, FormatCell(strings.Split(key, "\x1f"), m, width))
	}
	sort.Strings(out)
	return out
}

// Diff describes the first difference between two collections, or returns "" when they hold
// the same cells with the same measures.
func (c *Collector) Diff(other *Collector) string {
	keys := make([]string, 0, len(c.cells)+len(other.cells))
	for k := range c.cells {
		keys = append(keys, k)
	}
	for k := range other.cells {
		if _, ok := c.cells[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		a, inA := c.cells[k]
		b, inB := other.cells[k]
		label := strings.ReplaceAll(k, "\x1f", ",")
		switch {
		case !inB:
			return fmt.Sprintf("cell (%s) only on the left with measure %d", label, a)
		case !inA:
			return fmt.Sprintf("cell (%s) only on the right with measure %d", label, b)
		case a != b:
			return fmt.Sprintf("cell (%s) measure %d != %d", label, a, b)
		}
	}
	return ""
}

// Digest is an order-independent fingerprint of a cube: the sum of the xxh3 hashes of the
// formatted result lines.
type Digest struct {
	width int
	sum   uint64
	count int
}

func NewDigest(width int) *Digest {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Digest{width: width}
}

func (d *Digest) Write(labels []string, measure int) error {
	d.sum += xxh3.HashString(FormatCell(labels, measure, d.width))
	d.count++
	return nil
}

func (d *Digest) Sum64() uint64 {
	return d.sum
}

func (d *Digest) Count() int {
	return d.count
}

func (d *Digest) String() string {
	return fmt.Sprintf("%016x", d.sum)
}
