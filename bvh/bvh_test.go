package bvh

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/IngInx747/nbvh/types"
)

// Primitives for the structural tests are boxes themselves; bound is
// the identity.
func boxBound() Bound[types.Box[float64], float64] {
	return func(b types.Box[float64]) types.Box[float64] { return b }
}

func randBoxes(rng *rand.Rand, n, dim int) []types.Box[float64] {
	boxes := make([]types.Box[float64], n)
	for i := range boxes {
		p := make(types.Vector[float64], dim)
		for k := 0; k < dim; k++ {
			p[k] = rng.Float64()*100 - 50
		}
		q := p.Clone()
		for k := 0; k < dim; k++ {
			q[k] += rng.Float64() * 4
		}
		boxes[i] = types.BoxFromPoints(p, q)
	}
	return boxes
}

func sameBox(a, b types.Box[float64]) bool {
	return a.Lo.Equals(b.Lo) && a.Hi.Equals(b.Hi)
}

// Walk the node array and verify the structural invariants: the root
// box encloses everything, every inner box is the merge of its
// children, children live at greater indices, every node is
// reachable exactly once and the leaf ranges partition the primitive
// array.
func checkTree(t *testing.T, tree *Tree[types.Box[float64], float64], bound Bound[types.Box[float64], float64]) {
	t.Helper()

	nodes := tree.Nodes()
	prims := tree.Primitives()

	union := types.EmptyBox[float64](tree.Dim())
	for _, p := range prims {
		union = types.Merge(union, bound(p))
	}
	if !sameBox(tree.AABB(), union) {
		t.Fatalf("expected root box %v-%v; got %v-%v", union.Lo, union.Hi, tree.AABB().Lo, tree.AABB().Hi)
	}

	visited := make([]bool, len(nodes))
	type leafRange struct{ offset, count int }
	var leafs []leafRange

	stack := []int{0}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if curr < 0 || curr >= len(nodes) {
			t.Fatalf("node index %d out of range", curr)
		}
		if visited[curr] {
			t.Fatalf("node %d reached twice", curr)
		}
		visited[curr] = true
		node := &nodes[curr]

		if node.IsLeaf() {
			if node.Count() < 1 {
				t.Fatalf("expected leaf %d to hold at least one primitive; got %d", curr, node.Count())
			}
			leafs = append(leafs, leafRange{node.Offset(), node.Count()})
			continue
		}

		if node.Left() <= curr || node.Right() <= curr {
			t.Fatalf("expected children of %d at greater indices; got %d, %d", curr, node.Left(), node.Right())
		}
		merged := types.Merge(nodes[node.Left()].B, nodes[node.Right()].B)
		if !sameBox(node.B, merged) {
			t.Fatalf("expected node %d box to merge its children", curr)
		}
		stack = append(stack, node.Left(), node.Right())
	}

	for i := range visited {
		if !visited[i] {
			t.Fatalf("node %d unreachable from the root", i)
		}
	}

	sort.Slice(leafs, func(i, j int) bool { return leafs[i].offset < leafs[j].offset })
	next := 0
	for _, lr := range leafs {
		if lr.offset != next {
			t.Fatalf("expected leaf range starting at %d; got %d", next, lr.offset)
		}
		next = lr.offset + lr.count
	}
	if next != len(prims) {
		t.Fatalf("expected leaf ranges to cover %d primitives; covered %d", len(prims), next)
	}
}

func TestBuildInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	bound := boxBound()

	splits := []struct {
		name  string
		split Split[types.Box[float64]]
	}{
		{"equal-counts", EqualCountsSplit(bound)},
		{"middle-point", MiddlePointSplit(bound)},
		{"sah", SAHSplit(bound)},
	}

	for _, s := range splits {
		for _, n := range []int{1, 2, 3, 17, 256} {
			for _, threshold := range []int{1, 4} {
				tree := New[types.Box[float64], float64](3)
				tree.Build(randBoxes(rng, n, 3), bound, s.split, threshold)
				checkTree(t, tree, bound)
			}
		}
	}
}

// Equal counts always splits, so the threshold is a strict bound.
func TestBuildLeafThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	bound := boxBound()

	tree := New[types.Box[float64], float64](3)
	tree.Build(randBoxes(rng, 100, 3), bound, EqualCountsSplit(bound), 4)

	for i := range tree.Nodes() {
		node := &tree.Nodes()[i]
		if node.IsLeaf() && node.Count() > 4 {
			t.Fatalf("expected at most 4 primitives per leaf; got %d", node.Count())
		}
	}
}

func TestBuildThresholdBelowOne(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	bound := boxBound()

	// Values below 1 behave as 1.
	tree := New[types.Box[float64], float64](3)
	tree.Build(randBoxes(rng, 16, 3), bound, EqualCountsSplit(bound), 0)
	checkTree(t, tree, bound)

	for i := range tree.Nodes() {
		node := &tree.Nodes()[i]
		if node.IsLeaf() && node.Count() != 1 {
			t.Fatalf("expected single-primitive leafs; got %d", node.Count())
		}
	}
}

func TestBuildLargeThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	bound := boxBound()

	tree := New[types.Box[float64], float64](3)
	tree.Build(randBoxes(rng, 8, 3), bound, SAHSplit(bound), 100)

	if len(tree.Nodes()) != 1 {
		t.Fatalf("expected a single leaf node; got %d nodes", len(tree.Nodes()))
	}
	if !tree.Nodes()[0].IsLeaf() || tree.Nodes()[0].Count() != 8 {
		t.Fatalf("expected one leaf holding all 8 primitives")
	}
}

func TestBuildEmpty(t *testing.T) {
	bound := boxBound()

	tree := New[types.Box[float64], float64](3)
	tree.Build(nil, bound, EqualCountsSplit(bound), 1)

	if !tree.IsEmpty() {
		t.Fatalf("expected an empty tree")
	}
	if tree.AABB().Valid() {
		t.Fatalf("expected the empty tree box to be the invalid identity box")
	}
	if len(tree.Nodes()) != 0 || len(tree.Primitives()) != 0 {
		t.Fatalf("expected no nodes and no primitives")
	}
}

func TestBuildSinglePrimitive(t *testing.T) {
	bound := boxBound()
	box := types.BoxFromPoints(types.V(0.0, 0.0, 0.0), types.V(1.0, 1.0, 1.0))

	tree := New[types.Box[float64], float64](3)
	tree.Build([]types.Box[float64]{box}, bound, SAHSplit(bound), 1)

	if len(tree.Nodes()) != 1 {
		t.Fatalf("expected exactly one node; got %d", len(tree.Nodes()))
	}
	node := &tree.Nodes()[0]
	if !node.IsLeaf() || node.Offset() != 0 || node.Count() != 1 {
		t.Fatalf("expected the root to be a single-primitive leaf")
	}
	if !sameBox(node.B, box) {
		t.Fatalf("expected the root box to equal the primitive box")
	}
}

// Build takes ownership and reorders the caller's slice; BuildFrom
// copies and leaves the input untouched.
func TestBuildOwnership(t *testing.T) {
	rng := rand.New(rand.NewSource(37))
	bound := boxBound()
	split := EqualCountsSplit(bound)

	boxes := randBoxes(rng, 64, 3)
	original := make([]types.Box[float64], len(boxes))
	copy(original, boxes)

	moved := New[types.Box[float64], float64](3)
	moved.Build(boxes, bound, split, 1)
	if len(moved.Primitives()) != len(boxes) {
		t.Fatalf("expected the tree to own all primitives")
	}
	reordered := false
	for i := range boxes {
		if !sameBox(boxes[i], original[i]) {
			reordered = true
			break
		}
	}
	if !reordered {
		t.Fatalf("expected Build to reorder the input slice in place")
	}

	copied := New[types.Box[float64], float64](3)
	copied.BuildFrom(original, bound, split, 1)
	if len(copied.Primitives()) != len(original) {
		t.Fatalf("expected a full copy of the input")
	}
	checkTree(t, copied, bound)
}

func TestBuildFromLeavesInputUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	bound := boxBound()

	boxes := randBoxes(rng, 32, 3)
	original := make([]types.Box[float64], len(boxes))
	copy(original, boxes)

	tree := New[types.Box[float64], float64](3)
	tree.BuildFrom(boxes, bound, SAHSplit(bound), 1)

	for i := range boxes {
		if !sameBox(boxes[i], original[i]) {
			t.Fatalf("expected BuildFrom to leave the input untouched; index %d moved", i)
		}
	}
}

// A rebuilt tree forgets its previous content.
func TestBuildResets(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	bound := boxBound()
	split := EqualCountsSplit(bound)

	tree := New[types.Box[float64], float64](3)
	tree.Build(randBoxes(rng, 50, 3), bound, split, 1)
	tree.Build(randBoxes(rng, 5, 3), bound, split, 1)

	if len(tree.Primitives()) != 5 {
		t.Fatalf("expected 5 primitives after rebuild; got %d", len(tree.Primitives()))
	}
	checkTree(t, tree, bound)

	tree.Build(nil, bound, split, 1)
	if !tree.IsEmpty() {
		t.Fatalf("expected rebuilding with no input to empty the tree")
	}
}

// Degenerate input: every primitive at the same point still builds.
func TestBuildCoincidentPrimitives(t *testing.T) {
	bound := boxBound()
	point := types.BoxFromPoint(types.V(1.0, 2.0, 3.0))

	boxes := make([]types.Box[float64], 20)
	for i := range boxes {
		boxes[i] = types.Box[float64]{Lo: point.Lo.Clone(), Hi: point.Hi.Clone()}
	}

	for _, s := range []Split[types.Box[float64]]{
		EqualCountsSplit(bound), MiddlePointSplit(bound), SAHSplit(bound),
	} {
		tree := New[types.Box[float64], float64](3)
		tree.Build(boxes, bound, s, 1)
		checkTree(t, tree, bound)
	}
}

func TestBuildAll2D(t *testing.T) {
	rng := rand.New(rand.NewSource(47))
	bound := boxBound()

	tree := New[types.Box[float64], float64](2)
	tree.Build(randBoxes(rng, 40, 2), bound, SAHSplit(bound), 2)
	checkTree(t, tree, bound)
}

func TestEmptyTreeQueries(t *testing.T) {
	tree := New[types.Box[float64], float64](3)

	dist := math.Inf(+1)
	hit := tree.Intersect(
		func(p types.Box[float64], org, dir types.Vector[float64], d *float64) bool { return true },
		types.V(0.0, 0.0, 0.0), types.V(1.0, 0.0, 0.0), &dist,
	)
	if hit {
		t.Fatalf("expected no hit on an empty tree")
	}
	if !math.IsInf(dist, +1) {
		t.Fatalf("expected dist unchanged; got %v", dist)
	}

	if tree.Search(&collectQuery{q: types.BoxFromPoints(types.V(-1.0, -1.0, -1.0), types.V(1.0, 1.0, 1.0))}) {
		t.Fatalf("expected no range hit on an empty tree")
	}
}
