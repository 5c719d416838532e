package dataset

import (
	"golang.org/x/exp/slices"
)

// ReorderDimensions stably sorts the dimensions by descending star cardinality so the widest
// partitions come first in the tree. Decode keeps reporting cells in input column order.
// The returned slice maps each working position to its input column.
func (ds *Dataset) ReorderDimensions() []int {
	order := make([]int, len(ds.dims))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) bool {
		return ds.dims[a].StarCardinality() > ds.dims[b].StarCardinality()
	})

	dims := make([]*Dimension, len(ds.dims))
	columns := make([][]int32, len(ds.columns))
	perm := make([]int, len(ds.dims))
	for to, from := range order {
		dims[to] = ds.dims[from]
		columns[to] = ds.columns[from]
		perm[to] = dims[to].Column
	}
	ds.dims = dims
	ds.columns = columns
	return perm
}
