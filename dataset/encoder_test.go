package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{
		Names: []string{"city", "product", "channel"},
		Rows: [][]string{
			{"paris", "tea", "web"},
			{"paris", "coffee", "web"},
			{"rome", "tea", "web"},
			{"oslo", "tea", "store"},
			{"paris", "tea", "web"},
		},
	}
}

func TestDictionary(t *testing.T) {
	d := NewDictionary()
	require.Equal(t, int32(1), d.Code("b"))
	require.Equal(t, int32(2), d.Code("a"))
	require.Equal(t, int32(1), d.Code("b"))
	require.Equal(t, int32(3), d.Code(""))
	require.Equal(t, 3, d.Len())

	code, ok := d.Lookup("a")
	require.True(t, ok)
	require.Equal(t, int32(2), code)
	_, ok = d.Lookup("zzz")
	require.False(t, ok)

	label, ok := d.Label(3)
	require.True(t, ok)
	require.Equal(t, "", label)
	_, ok = d.Label(0)
	require.False(t, ok)
	_, ok = d.Label(4)
	require.False(t, ok)
}

func TestDictionary_Batch(t *testing.T) {
	d := NewDictionary()
	require.Equal(t, int32(1), d.Code("before"))

	d.Begin()
	d.Begin()
	for i := 0; i < 1000; i++ {
		require.Equal(t, int32(i+2), d.Code(fmt.Sprintf("label-%03d", i)))
	}
	require.Equal(t, int32(2), d.Code("label-000"))
	code, ok := d.Lookup("before")
	require.True(t, ok)
	require.Equal(t, int32(1), code)
	d.Commit()
	d.Commit()

	require.Nil(t, d.txn)
	require.Equal(t, 1001, d.Len())
	require.Equal(t, 1001, d.index.Len())
	code, ok = d.Lookup("label-999")
	require.True(t, ok)
	require.Equal(t, int32(1001), code)
	require.Equal(t, int32(1002), d.Code("after"))
}

func TestEncode_CommitsDictionaries(t *testing.T) {
	ds, err := Encode(sampleTable())
	require.NoError(t, err)
	for i := 0; i < ds.DimensionCount(); i++ {
		dim := ds.Dimension(i)
		require.Nil(t, dim.dict.txn, "dimension %s", dim.Name)
		require.Equal(t, dim.Cardinality(), dim.dict.index.Len())
	}
	code, ok := ds.Dimension(1).dict.Lookup("coffee")
	require.True(t, ok)
	require.Equal(t, int32(2), code)
}

func TestEncode(t *testing.T) {
	ds, err := Encode(sampleTable())
	require.NoError(t, err)

	require.Equal(t, 5, ds.TupleCount())
	require.Equal(t, 3, ds.DimensionCount())
	require.Equal(t, []int{3, 2, 2}, ds.Cardinalities())
	require.Equal(t, [][]int32{
		{1, 1, 2, 3, 1},
		{1, 2, 1, 1, 1},
		{1, 1, 1, 2, 1},
	}, ds.Columns())

	city := ds.Dimension(0)
	require.Equal(t, "city", city.Name)
	require.Equal(t, 3, city.Frequency(1))
	require.Equal(t, 1, city.Frequency(2))
	require.Equal(t, 0, city.Frequency(9))
	require.Equal(t, []string{"paris", "tea", "web"}, ds.Decode([]int32{1, 1, 1}))
	require.Equal(t, []string{"*", "coffee", "*"}, ds.Decode([]int32{Star, 2, Star}))
}

func TestEncode_NoData(t *testing.T) {
	_, err := Encode(&Table{})
	require.ErrorIs(t, err, ErrNoData)
	_, err = Encode(nil)
	require.ErrorIs(t, err, ErrNoData)
	_, err = Encode(&Table{Rows: [][]string{{}}})
	require.ErrorIs(t, err, ErrNoData)
}

func TestEncode_RaggedRows(t *testing.T) {
	_, err := Encode(&Table{Rows: [][]string{{"a", "b"}, {"c"}}})
	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestCompress(t *testing.T) {
	ds, err := Encode(sampleTable())
	require.NoError(t, err)
	require.NoError(t, ds.Compress(2))
	require.True(t, ds.Compressed())

	// city: paris(3) stays, rome(1) and oslo(1) reduce; product: tea(4) stays, coffee(1)
	// reduces; channel: web(4) stays, store(1) reduces.
	require.Equal(t, []int{1, 1, 1}, ds.Cardinalities())
	require.Equal(t, [][]int32{
		{1, 1, 0, 0, 1},
		{1, 0, 1, 1, 1},
		{1, 1, 1, 0, 1},
	}, ds.Columns())
	require.Equal(t, 3, ds.Dimension(0).Cardinality())
	require.Equal(t, []string{"paris", "tea", "web"}, ds.Decode([]int32{1, 1, 1}))
	require.Equal(t, []string{"*", "*", "*"}, ds.Decode([]int32{0, 0, 0}))

	require.ErrorIs(t, ds.Compress(2), ErrAlreadyCompressed)
}

func TestCompress_RenumbersInOrder(t *testing.T) {
	ds, err := Encode(&Table{Rows: [][]string{{"a"}, {"b"}, {"b"}, {"c"}, {"c"}, {"d"}}})
	require.NoError(t, err)
	require.NoError(t, ds.Compress(2))

	require.Equal(t, []int{2}, ds.Cardinalities())
	require.Equal(t, [][]int32{{0, 1, 1, 2, 2, 0}}, ds.Columns())
	require.Equal(t, []string{"b"}, ds.Decode([]int32{1}))
	require.Equal(t, []string{"c"}, ds.Decode([]int32{2}))
}

func TestCompress_DegenerateDimension(t *testing.T) {
	ds, err := Encode(&Table{Rows: [][]string{{"a", "x"}, {"a", "y"}, {"a", "z"}}})
	require.NoError(t, err)
	require.NoError(t, ds.Compress(2))

	require.Equal(t, []int{1, 0}, ds.Cardinalities())
	require.Equal(t, []int32{0, 0, 0}, ds.Columns()[1])
	require.Equal(t, []string{"a", "*"}, ds.Decode([]int32{1, 0}))
}

func TestCompress_ZeroSupportKeepsEverything(t *testing.T) {
	ds, err := Encode(sampleTable())
	require.NoError(t, err)
	before := [][]int32{}
	for _, c := range ds.Columns() {
		before = append(before, append([]int32(nil), c...))
	}
	require.NoError(t, ds.Compress(0))
	require.Equal(t, before, ds.Columns())
	require.Equal(t, []int{3, 2, 2}, ds.Cardinalities())
}

func TestCompress_NegativeSupport(t *testing.T) {
	ds, err := Encode(sampleTable())
	require.NoError(t, err)
	require.ErrorIs(t, ds.Compress(-1), ErrNegativeSupport)
	require.False(t, ds.Compressed())
}

func TestReorderDimensions(t *testing.T) {
	ds, err := Encode(&Table{
		Names: []string{"low", "high", "mid", "mid2"},
		Rows: [][]string{
			{"a", "p", "x", "u"},
			{"a", "q", "y", "v"},
			{"a", "r", "x", "u"},
		},
	})
	require.NoError(t, err)

	perm := ds.ReorderDimensions()
	require.Equal(t, []int{1, 2, 3, 0}, perm)
	require.Equal(t, []int{3, 2, 2, 1}, ds.Cardinalities())
	require.Equal(t, []int32{1, 2, 3}, ds.Columns()[0])
	require.Equal(t, "high", ds.Dimension(0).Name)
	require.Equal(t, []string{"low", "high", "mid", "mid2"}, ds.Names())

	// Working order is (high, mid, mid2, low); labels come back in input order.
	require.Equal(t, []string{"a", "q", "*", "v"}, ds.Decode([]int32{2, Star, 2, 1}))

	// Already sorted: a second pass is the identity.
	require.Equal(t, []int{1, 2, 3, 0}, ds.ReorderDimensions())
}

func TestReorderDimensions_UsesStarCardinality(t *testing.T) {
	ds, err := Encode(&Table{Rows: [][]string{
		{"a", "p"},
		{"b", "p"},
		{"c", "q"},
		{"c", "q"},
	}})
	require.NoError(t, err)
	require.NoError(t, ds.Compress(2))
	require.Equal(t, []int{1, 2}, ds.Cardinalities())

	require.Equal(t, []int{1, 0}, ds.ReorderDimensions())
	require.Equal(t, []string{"c", "q"}, ds.Decode([]int32{2, 1}))
}
