package cube

// Cursor depths below zero: the tree has been opened but holds no root yet, or its root
// exists and the next generated node belongs to the collapsed dimension.
const (
	cursorUnrooted = -2
	cursorAtRoot   = -1
)

// genCursor tracks where a child tree is being grown while its parent feeds it nodes.
// For every depth d it keeps the node last generated (current), the wildcard child of the
// current parent if any (star) and the head of the sorted sibling run under that parent
// (exist).
type genCursor struct {
	depth   int
	current []nodeID
	star    []nodeID
	exist   []nodeID
}

func newGenCursor(treeDepth int) genCursor {
	c := genCursor{
		current: make([]nodeID, treeDepth+1),
		star:    make([]nodeID, treeDepth+1),
		exist:   make([]nodeID, treeDepth+1),
	}
	c.reset()
	return c
}

func (c *genCursor) reset() {
	c.depth = cursorUnrooted
	for i := range c.current {
		c.current[i] = nilNode
		c.star[i] = nilNode
		c.exist[i] = nilNode
	}
}

// descend points depth d at the children of the node just placed at depth d-1.
func (c *genCursor) descend(d int, firstChild nodeID, firstIsStar bool) {
	c.current[d] = firstChild
	c.exist[d] = firstChild
	c.star[d] = nilNode
	if firstIsStar {
		c.star[d] = firstChild
	}
}
