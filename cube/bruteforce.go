package cube

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// MaxBruteForceDimensions bounds BruteForce, which enumerates all 2^D group-bys.
const MaxBruteForceDimensions = 20

var ErrTooManyDimensions = errors.New("too many dimensions for brute force")

// BruteForce computes the same cells as Engine.Compute by grouping the tuples on every subset
// of dimensions separately. Tuples carrying a wildcard code in a selected dimension belong to
// no cell of that group-by. Cells of one group-by are emitted in ascending key order.
func BruteForce(src Source, minSupport int, sink Sink) error {
	if minSupport < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSupport, minSupport)
	}
	tuples, err := validate(src)
	if err != nil {
		return err
	}
	columns := src.Columns()
	dims := len(columns)
	if dims > MaxBruteForceDimensions {
		return fmt.Errorf("%w: %d > %d", ErrTooManyDimensions, dims, MaxBruteForceDimensions)
	}

	key := make([]byte, 4*dims)
	cell := make([]int32, dims)
	for mask := 0; mask < 1<<dims; mask++ {
		counts := make(map[string]int)
	tuple:
		for t := 0; t < tuples; t++ {
			for d := 0; d < dims; d++ {
				v := wildcard
				if mask&(1<<d) != 0 {
					v = columns[d][t]
					if v == wildcard {
						continue tuple
					}
				}
				binary.BigEndian.PutUint32(key[4*d:], uint32(v))
			}
			counts[string(key)]++
		}

		keys := make([]string, 0, len(counts))
		for k, n := range counts {
			if n >= minSupport {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			for d := range cell {
				cell[d] = int32(binary.BigEndian.Uint32([]byte(k[4*d:])))
			}
			if err := sink.Emit(cell, counts[k]); err != nil {
				return fmt.Errorf("emit cell: %w", err)
			}
		}
	}
	return nil
}
