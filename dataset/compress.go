package dataset

import (
	"errors"
	"fmt"
)

var ErrNegativeSupport = errors.New("negative minimum support")

// Compress applies star reduction: in every dimension, codes whose frequency is below
// minSupport become Star and the surviving codes are renumbered densely, keeping their order.
// A dimension in which every value is infrequent ends with star cardinality 0.
func (ds *Dataset) Compress(minSupport int) error {
	if minSupport < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSupport, minSupport)
	}
	if ds.compressed {
		return ErrAlreadyCompressed
	}

	for di, dim := range ds.dims {
		dim.starCodes = make([]int32, len(dim.freq))
		dim.rawCodes = make([]int32, 0, len(dim.freq))
		for i, f := range dim.freq {
			if f >= minSupport {
				dim.rawCodes = append(dim.rawCodes, int32(i+1))
				dim.starCodes[i] = int32(len(dim.rawCodes))
			}
		}

		col := ds.columns[di]
		for ti, raw := range col {
			col[ti] = dim.starCodes[raw-1]
		}
	}
	ds.compressed = true
	return nil
}

func (ds *Dataset) Compressed() bool {
	return ds.compressed
}
