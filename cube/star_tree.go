package cube

import (
	"github.com/JieJackyZhang/Pattern-Recognition/errutil"
)

// starTree is the star-tree over the dimension suffix [start, D). The engine keeps one per
// start dimension and reuses it every time a parent opens that suffix.
//
// A tree is built while its parent traverses: open seeds the output prefix, generate
// receives every node the parent visits below the opening node, and moveBack retracts one
// level per parent backtrack. When the cursor climbs above the root the tree is complete
// and aggregate runs its own traversal, which in turn builds the deeper trees.
type starTree struct {
	eng   *Engine
	start int
	depth int

	nodes  arena
	root   nodeID
	cursor genCursor

	// buf holds one cell: the inherited prefix [0, start) and the values on the active path.
	buf []int32

	starCount      int
	childTreeCount int
}

func newStarTree(eng *Engine, start, dims int) *starTree {
	depth := dims - start
	return &starTree{
		eng:    eng,
		start:  start,
		depth:  depth,
		nodes:  newArena(64),
		root:   nilNode,
		cursor: newGenCursor(depth),
		buf:    make([]int32, dims),
	}
}

// open starts a new materialization of this tree. The parent's buffer supplies the
// prefix; the dimension just before start is the one being collapsed.
func (t *starTree) open(prefix []int32) {
	copy(t.buf[:t.start-1], prefix[:t.start-1])
	t.buf[t.start-1] = wildcard
	t.nodes.reset()
	t.root = nilNode
	t.cursor.reset()
	t.eng.stats.TreesMaterialized++
}

// generate merges one node of the parent tree into this tree at the cursor.
func (t *starTree) generate(value int32, measure int) {
	c := &t.cursor
	if c.depth == cursorUnrooted {
		t.root = t.nodes.alloc(wildcard, 0)
		t.eng.stats.NodesCreated++
		c.depth = cursorAtRoot
		c.current[0], c.star[0], c.exist[0] = t.root, t.root, t.root
		return
	}

	parent := nilNode
	if c.depth >= 0 {
		parent = c.current[c.depth]
	}
	c.depth++
	d := c.depth
	if d > t.depth {
		errutil.Bug("cursor depth %d beyond tree depth %d", d, t.depth)
	}

	var placed nodeID
	if value == wildcard || d == 0 {
		// Level 0 is the collapsed dimension: everything folds into the root.
		if c.star[d] == nilNode {
			placed = t.nodes.alloc(value, measure)
			t.eng.stats.NodesCreated++
			p := t.nodes.at(parent)
			t.nodes.at(placed).sibling = p.firstChild
			p.firstChild = placed
			c.star[d] = placed
		} else {
			placed = c.star[d]
			t.nodes.at(placed).measure += measure
			t.eng.stats.NodesMerged++
		}
	} else {
		placed = t.insertSorted(parent, d, value, measure)
	}
	c.current[d] = placed
	if d > 0 {
		c.exist[d] = t.nodes.at(parent).firstChild
	}

	if d < t.depth {
		first := t.nodes.at(placed).firstChild
		c.descend(d+1, first, first != nilNode && t.nodes.at(first).value == wildcard)
	}
}

// insertSorted places a real value among the children of parent. Sibling runs reach a tree
// from several parent subtrees, each in ascending order but not ascending overall, so the
// scan always starts at the head of the run.
func (t *starTree) insertSorted(parent nodeID, d int, value int32, measure int) nodeID {
	prev := nilNode
	at := t.cursor.exist[d]
	for at != nilNode && t.nodes.at(at).value < value {
		prev = at
		at = t.nodes.at(at).sibling
	}
	if at != nilNode && t.nodes.at(at).value == value {
		t.nodes.at(at).measure += measure
		t.eng.stats.NodesMerged++
		return at
	}

	id := t.nodes.alloc(value, measure)
	t.eng.stats.NodesCreated++
	t.nodes.at(id).sibling = at
	if prev != nilNode {
		t.nodes.at(prev).sibling = id
	} else {
		t.nodes.at(parent).firstChild = id
	}
	return id
}

// moveBack retracts the cursor by one level; leaving the root completes the tree.
func (t *starTree) moveBack() {
	t.cursor.depth--
	if t.cursor.depth == cursorUnrooted {
		t.aggregate()
	}
}

// aggregate traverses the finished tree, emitting its cells and growing its child trees.
func (t *starTree) aggregate() {
	t.childTreeCount = 0
	// The root is a wildcard node; visiting it brings the count to zero.
	t.starCount = -1
	t.traverse(t.root, 0)
	if t.childTreeCount != 0 {
		errutil.Bug("tree %d finished with %d child trees open", t.start, t.childTreeCount)
	}
}

func (t *starTree) traverse(id nodeID, k int) {
	for id != nilNode {
		if t.eng.err != nil {
			return
		}
		n := *t.nodes.at(id)
		t.firstVisit(n, k)
		t.traverse(n.firstChild, k+1)
		t.backVisit(n, k)
		id = n.sibling
	}
}

func (t *starTree) firstVisit(n node, k int) {
	if k > 0 {
		t.buf[t.start+k-1] = n.value
	}
	if n.value == wildcard {
		t.starCount++
	}

	if k <= t.depth-2 && t.starCount == 0 {
		if n.measure >= t.eng.minSupport {
			t.eng.trees[t.start+1+k].open(t.buf)
			t.childTreeCount++
		} else {
			t.eng.stats.PrunedBySupport++
		}
	}

	for i := 1; i <= t.childTreeCount; i++ {
		t.eng.trees[t.start+i].generate(n.value, n.measure)
	}
}

func (t *starTree) backVisit(n node, k int) {
	for i := t.childTreeCount; i >= 1; i-- {
		t.eng.trees[t.start+i].moveBack()
	}
	// The tree opened at this node has just been aggregated.
	if t.childTreeCount > k {
		t.childTreeCount--
	}

	if t.starCount == 0 && n.measure >= t.eng.minSupport {
		switch k {
		case t.depth:
			t.eng.emit(t.buf, n.measure)
		case t.depth - 1:
			t.buf[len(t.buf)-1] = wildcard
			t.eng.emit(t.buf, n.measure)
		}
	}

	if n.value == wildcard {
		t.starCount--
	}
}
