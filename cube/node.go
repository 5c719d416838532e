package cube

import (
	"fmt"
	"unsafe"
)

// wildcard is the value of star nodes and tree roots.
const wildcard int32 = 0

type nodeID int32

const nilNode nodeID = -1

// node is a star-tree node. Siblings are kept in ascending value order, so a wildcard
// sibling is always the first child of its parent.
type node struct {
	value      int32
	firstChild nodeID
	sibling    nodeID
	measure    int
}

func (n node) String() string {
	return fmt.Sprintf("Node{value: %d, measure: %d, firstChild: %d, sibling: %d}",
		n.value, n.measure, n.firstChild, n.sibling)
}

// arena owns every node of one star-tree. Nodes are addressed by index, so a pointer
// returned by at is only valid until the next alloc.
type arena struct {
	nodes []node
}

func newArena(capacity int) arena {
	return arena{nodes: make([]node, 0, capacity)}
}

func (a *arena) alloc(value int32, measure int) nodeID {
	id := nodeID(len(a.nodes))
	a.nodes = append(a.nodes, node{
		value:      value,
		firstChild: nilNode,
		sibling:    nilNode,
		measure:    measure,
	})
	return id
}

func (a *arena) at(id nodeID) *node {
	return &a.nodes[id]
}

// reset drops all nodes but keeps the backing storage for the next tree.
func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}

func (a *arena) len() int {
	return len(a.nodes)
}

func (a *arena) byteSize() int {
	return cap(a.nodes) * int(unsafe.Sizeof(node{}))
}
