package bvh

import (
	"time"

	"github.com/op/go-logging"

	"github.com/IngInx747/nbvh/types"
)

var logger = logging.MustGetLogger("bvh")

// The library only ever logs build statistics at debug level; keep
// the module silent unless the embedding program opts in.
func init() {
	logging.SetLevel(logging.NOTICE, "bvh")
}

// Bound maps a primitive to a box enclosing it. It is called many
// times during build and must be cheap and pure.
type Bound[P any, T types.Float] func(prim P) types.Box[T]

// Split reorders prims[begin:end] in place and returns the index m
// such that [begin, m) and [m, end) form the two child subsets.
// Returning begin or end signals that no split was possible and the
// caller makes a leaf. A split must not touch primitives outside
// the range.
type Split[P any] func(prims []P, begin, end int) int

// Collide tests a primitive against a ray. It returns true only when
// the hit strictly improves dist and must then shrink dist to the new
// best. It may carry state, e.g. the id of the closest primitive.
type Collide[P any, T types.Float] func(prim P, org, dir types.Vector[T], dist *T) bool

// RangeQuery drives Search. VisitBox is the coarse filter: it may
// report false positives but never false negatives, or subtrees will
// be pruned wrongly. VisitPrimitive is the exact test and may record
// results on the query object.
type RangeQuery[P any, T types.Float] interface {
	VisitBox(b types.Box[T]) bool
	VisitPrimitive(prim P) bool
}

type buildStats struct {
	leafs    int
	maxDepth int
}

// A bounding volume hierarchy over primitives of type P with
// coordinates of type T. The tree owns two parallel slices: the
// primitives, reordered by the build, and the flat node array with
// the root at index 0. After build the tree is immutable.
type Tree[P any, T types.Float] struct {
	prims []P
	nodes []Node[T]
	dim   int
	stats buildStats
}

// Create an empty tree for the given spatial dimension.
func New[P any, T types.Float](dim int) *Tree[P, T] {
	return &Tree[P, T]{dim: dim}
}

// Build the tree over prims, taking ownership of the slice: the
// primitives are reordered in place. An empty slice leaves the tree
// empty. threshold is the attempted upper bound on primitives per
// leaf; values below 1 are treated as 1. Leaves may still exceed it
// when the split strategy cannot partition the range.
//
// Build recurses one level per tree depth, expected O(log n) for the
// provided strategies and O(n) on pathological input.
func (t *Tree[P, T]) Build(prims []P, bound Bound[P, T], split Split[P], threshold int) {
	t.prims = nil
	t.nodes = nil
	t.stats = buildStats{}

	if len(prims) == 0 {
		return
	}
	if threshold < 1 {
		threshold = 1
	}

	start := time.Now()
	t.prims = prims
	t.nodes = append(t.nodes, Node[T]{})
	t.recursiveBuild(0, len(prims), 0, 0, bound, split, threshold)
	logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d\n",
		time.Since(start).Nanoseconds()/1e6,
		t.stats.maxDepth, len(t.nodes), t.stats.leafs,
	)
}

// Build the tree over a copy of src, leaving the input untouched.
func (t *Tree[P, T]) BuildFrom(src []P, bound Bound[P, T], split Split[P], threshold int) {
	if len(src) == 0 {
		t.prims = nil
		t.nodes = nil
		t.stats = buildStats{}
		return
	}
	prims := make([]P, len(src))
	copy(prims, src)
	t.Build(prims, bound, split, threshold)
}

// Partition prims[b:e) under the node at index curr. Nodes are
// appended to t.nodes while building; the slice may move on append,
// so nodes are always addressed through their index.
func (t *Tree[P, T]) recursiveBuild(b, e, curr, depth int, bound Bound[P, T], split Split[P], threshold int) {
	if depth > t.stats.maxDepth {
		t.stats.maxDepth = depth
	}

	n := e - b
	m := e
	if n > threshold {
		m = split(t.prims, b, e)
	}

	// Make a leaf when the range is small enough or the split method
	// failed to produce two sets. A failed split leaves more than
	// threshold primitives in the leaf; strategies that always split,
	// like equal counts, keep the bound strict.
	if m == b || m == e {
		box := types.EmptyBox[T](t.dim)
		for i := b; i < e; i++ {
			box = types.Merge(box, bound(t.prims[i]))
		}
		t.nodes[curr].B = box
		t.nodes[curr].setLeaf(b, n)
		t.stats.leafs++
		return
	}

	t.nodes[curr].B = types.EmptyBox[T](t.dim)

	left := len(t.nodes)
	t.nodes[curr].I0 = left
	t.nodes = append(t.nodes, Node[T]{})
	t.recursiveBuild(b, m, left, depth+1, bound, split, threshold)
	t.nodes[curr].B = types.Merge(t.nodes[curr].B, t.nodes[left].B)

	right := len(t.nodes)
	t.nodes[curr].I1 = right
	t.nodes = append(t.nodes, Node[T]{})
	t.recursiveBuild(m, e, right, depth+1, bound, split, threshold)
	t.nodes[curr].B = types.Merge(t.nodes[curr].B, t.nodes[right].B)
}

// Get the primitives in tree storage order.
func (t *Tree[P, T]) Primitives() []P {
	return t.prims
}

// Get the flat node array. The root, when present, is at index 0.
func (t *Tree[P, T]) Nodes() []Node[T] {
	return t.nodes
}

// Get the box enclosing the whole tree, or the empty identity box
// when the tree is empty.
func (t *Tree[P, T]) AABB() types.Box[T] {
	if len(t.nodes) > 0 {
		return t.nodes[0].B
	}
	return types.EmptyBox[T](t.dim)
}

// Check whether the tree holds any primitives.
func (t *Tree[P, T]) IsEmpty() bool {
	return len(t.nodes) == 0
}

// Get the spatial dimension the tree was created for.
func (t *Tree[P, T]) Dim() int {
	return t.dim
}
