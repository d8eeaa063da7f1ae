package bvh

import "github.com/IngInx747/nbvh/types"

// A flat tree node. The two indices are tagged by the sign of I1:
// an inner node stores the left and right child node indices in I0
// and I1; a leaf stores the first primitive index in I0 and the
// negative primitive count in I1. Child nodes always live at greater
// indices than their parent.
type Node[T types.Float] struct {
	B  types.Box[T]
	I0 int
	I1 int
}

// Check whether the node is a leaf.
func (n *Node[T]) IsLeaf() bool {
	return n.I1 < 0
}

// Get the left child node index. Inner nodes only.
func (n *Node[T]) Left() int {
	return n.I0
}

// Get the right child node index. Inner nodes only.
func (n *Node[T]) Right() int {
	return n.I1
}

// Get the index of the first primitive in the leaf.
func (n *Node[T]) Offset() int {
	return n.I0
}

// Get the number of primitives in the leaf.
func (n *Node[T]) Count() int {
	return -n.I1
}

func (n *Node[T]) setLeaf(offset, count int) {
	n.I0 = offset
	n.I1 = -count
}
