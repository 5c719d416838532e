package dataset

import (
	"errors"
	"fmt"
)

const (
	// Star is the code shared by every wildcarded value.
	Star int32 = 0
	// Wildcard is how a star code is rendered.
	Wildcard = "*"
)

var ErrAlreadyCompressed = errors.New("dataset already compressed")

// Dimension is one encoded column.
type Dimension struct {
	Name string
	// Column is the position of the dimension in the input file.
	Column int

	dict *Dictionary
	freq []int

	// Filled by Compress: starCodes[raw-1] is the star code of a raw code (0 when reduced)
	// and rawCodes[star-1] is the raw code behind a star code.
	starCodes []int32
	rawCodes  []int32
}

// Cardinality is the number of distinct raw values.
func (d *Dimension) Cardinality() int {
	return d.dict.Len()
}

// StarCardinality is the number of values that survived star reduction, or the raw
// cardinality if the dimension has not been compressed.
func (d *Dimension) StarCardinality() int {
	if d.starCodes == nil {
		return d.Cardinality()
	}
	return len(d.rawCodes)
}

// Frequency returns how many tuples carry the raw code.
func (d *Dimension) Frequency(raw int32) int {
	if raw <= 0 || int(raw) > len(d.freq) {
		return 0
	}
	return d.freq[raw-1]
}

// Label decodes a working code, star-reduced or raw depending on the compression state.
func (d *Dimension) Label(code int32) string {
	if code == Star {
		return Wildcard
	}
	raw := code
	if d.rawCodes != nil {
		if int(code) > len(d.rawCodes) {
			return Wildcard
		}
		raw = d.rawCodes[code-1]
	}
	label, ok := d.dict.Label(raw)
	if !ok {
		return Wildcard
	}
	return label
}

// Dataset is a dictionary-encoded table stored dimension-major.
type Dataset struct {
	dims       []*Dimension
	columns    [][]int32
	tuples     int
	compressed bool
}

// Encode assigns each distinct label of every column a dense code starting at 1 and counts
// the frequency of every code.
func Encode(t *Table) (*Dataset, error) {
	if t == nil || len(t.Rows) == 0 {
		return nil, ErrNoData
	}
	width := len(t.Rows[0])
	if width == 0 {
		return nil, ErrNoData
	}

	ds := &Dataset{
		dims:    make([]*Dimension, width),
		columns: make([][]int32, width),
		tuples:  len(t.Rows),
	}
	for di := range ds.dims {
		name := fmt.Sprintf("d%d", di)
		if di < len(t.Names) {
			name = t.Names[di]
		}
		ds.dims[di] = &Dimension{Name: name, Column: di, dict: NewDictionary()}
		ds.dims[di].dict.Begin()
		ds.columns[di] = make([]int32, ds.tuples)
	}

	for ti, row := range t.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: tuple %d has %d fields, want %d", ErrMalformedRow, ti, len(row), width)
		}
		for di, label := range row {
			dim := ds.dims[di]
			code := dim.dict.Code(label)
			if int(code) > len(dim.freq) {
				dim.freq = append(dim.freq, 0)
			}
			dim.freq[code-1]++
			ds.columns[di][ti] = code
		}
	}
	for _, dim := range ds.dims {
		dim.dict.Commit()
	}
	return ds, nil
}

func (ds *Dataset) TupleCount() int {
	return ds.tuples
}

func (ds *Dataset) DimensionCount() int {
	return len(ds.dims)
}

// Dimension returns the dimension at working position i.
func (ds *Dataset) Dimension(i int) *Dimension {
	return ds.dims[i]
}

// Columns returns the code matrix, indexed [dimension][tuple] in working order.
func (ds *Dataset) Columns() [][]int32 {
	return ds.columns
}

// Cardinalities returns the (star) cardinality of every dimension in working order.
func (ds *Dataset) Cardinalities() []int {
	out := make([]int, len(ds.dims))
	for i, d := range ds.dims {
		out[i] = d.StarCardinality()
	}
	return out
}

// Names returns the dimension names in input column order.
func (ds *Dataset) Names() []string {
	out := make([]string, len(ds.dims))
	for _, d := range ds.dims {
		out[d.Column] = d.Name
	}
	return out
}

// Decode turns a cell of working-order codes into labels in input column order.
func (ds *Dataset) Decode(cell []int32) []string {
	out := make([]string, len(ds.dims))
	for i, d := range ds.dims {
		out[d.Column] = d.Label(cell[i])
	}
	return out
}
