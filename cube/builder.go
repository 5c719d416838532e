package cube

// baseBuilder builds the base star-tree top-down, one level per dimension.
//
// At every level the tuple indices of the current range are distributed into one bucket per
// dimension value (a head/tail pair per value plus a next link per tuple), then written back
// in ascending value order, wildcard bucket first. Each non-empty bucket becomes one child
// whose measure is the bucket size.
//
// Cost: O(tuples + cardinality) per level and range, no comparison sort.
type baseBuilder struct {
	columns [][]int32
	nodes   *arena

	sorted []int32
	next   []int32

	// Per-dimension scratch. A level only ever recurses into deeper levels, so the scratch of
	// a level is not disturbed while its buckets are being expanded.
	heads  [][]int32
	tails  [][]int32
	bounds [][]int
}

func newBaseBuilder(columns [][]int32, cards []int, nodes *arena) *baseBuilder {
	tuples := len(columns[0])
	b := &baseBuilder{
		columns: columns,
		nodes:   nodes,
		sorted:  make([]int32, tuples),
		next:    make([]int32, tuples),
		heads:   make([][]int32, len(columns)),
		tails:   make([][]int32, len(columns)),
		bounds:  make([][]int, len(columns)),
	}
	for i := range b.sorted {
		b.sorted[i] = int32(i)
	}
	for d, card := range cards {
		b.heads[d] = make([]int32, card+1)
		b.tails[d] = make([]int32, card+1)
	}
	return b
}

// build creates the root covering every tuple and the full tree below it.
func (b *baseBuilder) build() nodeID {
	tuples := len(b.sorted)
	root := b.nodes.alloc(wildcard, tuples)
	b.partition(root, 0, 0, tuples)
	return root
}

func (b *baseBuilder) partition(parent nodeID, dim, left, right int) {
	col := b.columns[dim]
	heads, tails := b.heads[dim], b.tails[dim]
	for v := range heads {
		heads[v] = -1
	}
	for i := left; i < right; i++ {
		t := b.sorted[i]
		v := col[t]
		b.next[t] = -1
		if heads[v] < 0 {
			heads[v] = t
		} else {
			b.next[tails[v]] = t
		}
		tails[v] = t
	}

	bounds := append(b.bounds[dim][:0], left)
	p := left
	for v := range heads {
		if heads[v] < 0 {
			continue
		}
		for t := heads[v]; t >= 0; t = b.next[t] {
			b.sorted[p] = t
			p++
		}
		bounds = append(bounds, p)
	}
	b.bounds[dim] = bounds

	prev := nilNode
	for i := 0; i+1 < len(bounds); i++ {
		lo, hi := bounds[i], bounds[i+1]
		child := b.nodes.alloc(col[b.sorted[lo]], hi-lo)
		if prev == nilNode {
			b.nodes.at(parent).firstChild = child
		} else {
			b.nodes.at(prev).sibling = child
		}
		prev = child
		if dim+1 < len(b.columns) {
			b.partition(child, dim+1, lo, hi)
		}
	}
}
