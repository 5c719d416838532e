package cube

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildBase(in Input) (*arena, nodeID) {
	a := newArena(len(in.Matrix[0]) + 1)
	root := newBaseBuilder(in.Matrix, in.Cards, &a).build()
	return &a, root
}

func children(a *arena, id nodeID) []node {
	var out []node
	for c := a.at(id).firstChild; c != nilNode; c = a.at(c).sibling {
		out = append(out, *a.at(c))
	}
	return out
}

func TestBaseBuilder_Shape(t *testing.T) {
	in := Input{
		Matrix: [][]int32{{2, 1, 1}, {1, 2, 1}},
		Cards:  []int{2, 2},
	}
	a, root := buildBase(in)
	require.Equal(t, 6, a.len())

	r := a.at(root)
	require.Equal(t, wildcard, r.value)
	require.Equal(t, 3, r.measure)

	top := children(a, root)
	require.Len(t, top, 2)
	require.Equal(t, int32(1), top[0].value)
	require.Equal(t, 2, top[0].measure)
	require.Equal(t, int32(2), top[1].value)
	require.Equal(t, 1, top[1].measure)

	under1 := children(a, a.at(root).firstChild)
	require.Len(t, under1, 2)
	require.Equal(t, int32(1), under1[0].value)
	require.Equal(t, int32(2), under1[1].value)
}

// checkSubtree verifies sibling order and that children account for the parent's measure.
func checkSubtree(t *testing.T, a *arena, id nodeID, level, dims int) int {
	n := a.at(id)
	if level == dims {
		require.Equal(t, nilNode, n.firstChild)
		return 1
	}
	kids := children(a, id)
	require.NotEmpty(t, kids)
	sum, leaves := 0, 0
	for i, k := range kids {
		if i > 0 {
			require.Less(t, kids[i-1].value, k.value, "siblings out of order at level %d", level+1)
		}
		sum += k.measure
	}
	require.Equal(t, n.measure, sum)
	for c := n.firstChild; c != nilNode; c = a.at(c).sibling {
		leaves += checkSubtree(t, a, c, level+1, dims)
	}
	return leaves
}

func TestBaseBuilder_Invariants(t *testing.T) {
	for seed := int64(0); seed < 300; seed++ {
		r := rand.New(rand.NewSource(seed))
		in := randomInput(r, 5, 60, 5)
		a, root := buildBase(in)
		require.Equal(t, len(in.Matrix[0]), a.at(root).measure, "seed %d", seed)

		leaves := checkSubtree(t, a, root, 0, len(in.Matrix))
		distinct := make(map[string]struct{})
		row := make([]int32, len(in.Matrix))
		for ti := range in.Matrix[0] {
			for d := range row {
				row[d] = in.Matrix[d][ti]
			}
			distinct[cellKey(row)] = struct{}{}
		}
		require.Equal(t, len(distinct), leaves, "seed %d", seed)
	}
}

func TestArena_Reset(t *testing.T) {
	a := newArena(2)
	for i := 0; i < 10; i++ {
		a.alloc(int32(i), i)
	}
	size := a.byteSize()
	require.Equal(t, 10, a.len())
	a.reset()
	require.Zero(t, a.len())
	require.Equal(t, size, a.byteSize())

	id := a.alloc(4, 7)
	require.Equal(t, nodeID(0), id)
	require.Equal(t, "Node{value: 4, measure: 7, firstChild: -1, sibling: -1}", a.at(id).String())
}
