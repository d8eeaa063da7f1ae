package bvh

import "github.com/IngInx747/nbvh/types"

// Intersect casts a ray through the tree and reports whether collide
// accepted any primitive. dist carries the best hit distance: the
// caller seeds it with an upper bound and collide shrinks it on every
// accepted hit, which both orders hits and lets the slab test prune
// nodes entirely beyond the current best.
//
// Children are visited near side first, so a collide that only
// accepts strictly closer hits yields nearest-hit semantics. Within a
// leaf, primitives are visited in storage order.
//
// The tree is not mutated; concurrent queries are safe as long as
// each carries its own collide state and dist.
func (t *Tree[P, T]) Intersect(collide Collide[P, T], org, dir types.Vector[T], dist *T) bool {
	if len(t.nodes) == 0 {
		return false
	}

	inv := make(types.Vector[T], len(dir))
	neg := make([]bool, len(dir))
	for i, d := range dir {
		inv[i] = 1 / d
		neg[i] = d < 0
	}

	hit := false
	stack := make([]int, 0, 64)
	stack = append(stack, 0)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[curr]

		if !node.B.IntersectsRayInv(org, inv, *dist) {
			continue
		}

		if node.IsLeaf() {
			ib := node.Offset()
			ie := ib + node.Count()
			for i := ib; i < ie; i++ {
				if collide(t.prims[i], org, dir, dist) {
					hit = true
				}
			}
		} else {
			// Push far child first so the near child pops first. The
			// near side is the left child unless the ray points down
			// the split axis.
			if neg[node.B.LongestAxis()] {
				stack = append(stack, node.Left(), node.Right())
			} else {
				stack = append(stack, node.Right(), node.Left())
			}
		}
	}

	return hit
}

// Search walks the tree with a range query and reports whether the
// fine test accepted any primitive. Subtrees whose box fails the
// coarse test are pruned. Siblings are visited left before right.
//
// The tree is not mutated; concurrent queries are safe as long as
// each carries its own query state.
func (t *Tree[P, T]) Search(query RangeQuery[P, T]) bool {
	if len(t.nodes) == 0 {
		return false
	}

	hit := false
	stack := make([]int, 0, 64)
	stack = append(stack, 0)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[curr]

		if !query.VisitBox(node.B) {
			continue
		}

		if node.IsLeaf() {
			ib := node.Offset()
			ie := ib + node.Count()
			for i := ib; i < ie; i++ {
				if query.VisitPrimitive(t.prims[i]) {
					hit = true
				}
			}
		} else {
			stack = append(stack, node.Right(), node.Left())
		}
	}

	return hit
}
