package types

import "math"

// An axis-aligned bounding box stored as a pair of corner vectors.
// A non-empty box keeps Lo[i] <= Hi[i] on every axis.
type Box[T Float] struct {
	Lo Vector[T]
	Hi Vector[T]
}

func maxVal[T Float]() T {
	// Overflows to +inf when T is 32 bit wide.
	max64 := math.MaxFloat64
	if T(max64) == T(math.Inf(+1)) {
		return T(math.MaxFloat32)
	}
	return T(max64)
}

// Define the identity box of the given dimension: lo at +max and hi
// at -max on every axis, the neutral element of Merge.
func EmptyBox[T Float](dim int) Box[T] {
	return Box[T]{
		Lo: Splat(dim, +maxVal[T]()),
		Hi: Splat(dim, -maxVal[T]()),
	}
}

// Define a degenerate box holding a single point.
func BoxFromPoint[T Float](p Vector[T]) Box[T] {
	return Box[T]{Lo: p.Clone(), Hi: p.Clone()}
}

// Define the tightest box enclosing all given points.
func BoxFromPoints[T Float](p Vector[T], ps ...Vector[T]) Box[T] {
	lo := p.Clone()
	hi := p.Clone()
	for _, q := range ps {
		lo = Min(lo, q)
		hi = Max(hi, q)
	}
	return Box[T]{Lo: lo, Hi: hi}
}

// Merge two boxes into the smallest box enclosing both.
func Merge[T Float](a, b Box[T]) Box[T] {
	return Box[T]{Lo: Min(a.Lo, b.Lo), Hi: Max(a.Hi, b.Hi)}
}

// Intersect two boxes. The result is invalid when they are disjoint.
func Intersect[T Float](a, b Box[T]) Box[T] {
	return Box[T]{Lo: Max(a.Lo, b.Lo), Hi: Min(a.Hi, b.Hi)}
}

// Check whether the box is non-empty.
func (b Box[T]) Valid() bool {
	for i := range b.Lo {
		if b.Lo[i] > b.Hi[i] {
			return false
		}
	}
	return true
}

// Check whether the box has a positive extent on every axis.
func (b Box[T]) ValidOpen() bool {
	for i := range b.Lo {
		if b.Lo[i] >= b.Hi[i] {
			return false
		}
	}
	return true
}

// Check whether a point lies inside the box, boundary included.
func (b Box[T]) ContainsPoint(p Vector[T]) bool {
	for i := range p {
		if p[i] < b.Lo[i] || p[i] > b.Hi[i] {
			return false
		}
	}
	return true
}

// Check whether a point lies strictly inside the box.
func (b Box[T]) ContainsPointOpen(p Vector[T]) bool {
	for i := range p {
		if p[i] <= b.Lo[i] || p[i] >= b.Hi[i] {
			return false
		}
	}
	return true
}

// Check whether another box lies inside the box, boundary included.
func (b Box[T]) ContainsBox(b2 Box[T]) bool {
	for i := range b.Lo {
		if b2.Lo[i] < b.Lo[i] || b2.Hi[i] > b.Hi[i] {
			return false
		}
	}
	return true
}

// Check whether another box lies strictly inside the box.
func (b Box[T]) ContainsBoxOpen(b2 Box[T]) bool {
	for i := range b.Lo {
		if b2.Lo[i] <= b.Lo[i] || b2.Hi[i] >= b.Hi[i] {
			return false
		}
	}
	return true
}

// Check whether two boxes share any point, boundaries included.
func (b Box[T]) Overlaps(b2 Box[T]) bool {
	for i := range b.Lo {
		if b.Lo[i] > b2.Hi[i] || b2.Lo[i] > b.Hi[i] {
			return false
		}
	}
	return true
}

// Check whether two boxes share interior points.
func (b Box[T]) OverlapsOpen(b2 Box[T]) bool {
	for i := range b.Lo {
		if b.Lo[i] >= b2.Hi[i] || b2.Lo[i] >= b.Hi[i] {
			return false
		}
	}
	return true
}

// Get the box center.
func (b Box[T]) Centroid() Vector[T] {
	return b.Lo.Add(b.Hi).MulS(T(0.5))
}

// Get the box extent along every axis.
func (b Box[T]) Diagonal() Vector[T] {
	return b.Hi.Sub(b.Lo)
}

// Get the axis along which the box is longest.
func (b Box[T]) LongestAxis() int {
	return b.Diagonal().ArgMax()
}

// Get the largest box extent.
func (b Box[T]) MaxComponent() T {
	return b.Diagonal().MaxComponent()
}

// Get the box surface measure: 2*(dx*dy + dx*dz + dy*dz) in 3D and
// the perimeter 2*(dx + dy) in 2D.
func (b Box[T]) Area() T {
	d := b.Diagonal()
	var area T
	for i := range d {
		prod := T(1)
		for j := range d {
			if j != i {
				prod *= d[j]
			}
		}
		area += prod
	}
	return area * 2
}

// Get the box volume.
func (b Box[T]) Volume() T {
	d := b.Diagonal()
	vol := T(1)
	for i := range d {
		vol *= d[i]
	}
	return vol
}

// Test the ray against the box slabs. dist is the current best hit
// distance; boxes entirely beyond it are rejected. The test does not
// update dist as the box is not an entity in space.
func (b Box[T]) IntersectsRay(org, dir Vector[T], dist T) bool {
	t0 := T(math.Inf(-1))
	t1 := T(math.Inf(+1))
	for i := range org {
		k0 := (b.Lo[i] - org[i]) / dir[i]
		k1 := (b.Hi[i] - org[i]) / dir[i]
		if k0 > k1 {
			k0, k1 = k1, k0
		}
		if k0 > t0 {
			t0 = k0
		}
		if k1 < t1 {
			t1 = k1
		}
	}
	return t1 > 0 && t1 >= t0 && dist > t0
}

// Test the ray against the box slabs using a precomputed inverse
// direction, 1/dir component by component.
//
// The arithmetic leans on IEEE 754: when dir[i] is zero the two
// plane distances become infinities — of opposite sign if org[i]
// lies between the slabs, leaving t0 and t1 unchanged, and of the
// same sign otherwise, driving t0 to +inf or t1 to -inf and failing
// the test. No zero-direction branch is needed.
func (b Box[T]) IntersectsRayInv(org, inv Vector[T], dist T) bool {
	t0 := T(math.Inf(-1))
	t1 := T(math.Inf(+1))
	for i := range org {
		k0 := (b.Lo[i] - org[i]) * inv[i]
		k1 := (b.Hi[i] - org[i]) * inv[i]
		if k0 > k1 {
			k0, k1 = k1, k0
		}
		if k0 > t0 {
			t0 = k0
		}
		if k1 < t1 {
			t1 = k1
		}
	}
	return t1 > 0 && t1 >= t0 && dist > t0
}
