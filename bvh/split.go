package bvh

import (
	"math"

	"github.com/IngInx747/nbvh/types"
)

// The number of buckets SAHSplit evaluates along the split axis.
const defaultSAHBuckets = 16

// Split method: equal counts. Reorders the range so that the median
// primitive along the longest centroid axis sits in the middle and
// returns the middle index. Always succeeds for ranges of 2 or more.
func EqualCountsSplit[P any, T types.Float](bound Bound[P, T]) Split[P] {
	return func(prims []P, begin, end int) int {
		cbox := centroidBox(prims, begin, end, bound)
		return equalCounts(prims, begin, end, cbox.LongestAxis(), bound)
	}
}

// Split method: middle point. Partitions the range at the midpoint
// of the centroid box along its longest axis. Falls back to equal
// counts when every centroid lands on one side.
func MiddlePointSplit[P any, T types.Float](bound Bound[P, T]) Split[P] {
	return func(prims []P, begin, end int) int {
		cbox := centroidBox(prims, begin, end, bound)
		dim := cbox.LongestAxis()
		if cbox.Diagonal()[dim] <= 0 {
			return equalCounts(prims, begin, end, dim, bound)
		}

		mid := (cbox.Lo[dim] + cbox.Hi[dim]) * T(0.5)
		m := partition(prims, begin, end, func(p P) bool {
			return bound(p).Centroid()[dim] < mid
		})

		if m == begin || m == end {
			return equalCounts(prims, begin, end, dim, bound)
		}
		return m
	}
}

// Split method: surface area heuristic with 16 buckets.
func SAHSplit[P any, T types.Float](bound Bound[P, T]) Split[P] {
	return SAHSplitBuckets(bound, defaultSAHBuckets)
}

// Split method: surface area heuristic. Centroids are binned into
// nBuckets uniform buckets along the longest centroid axis and the
// bucket boundary minimizing area(B0)*count0 + area(B1)*count1 is
// chosen. Falls back to equal counts on a degenerate partition.
func SAHSplitBuckets[P any, T types.Float](bound Bound[P, T], nBuckets int) Split[P] {
	return func(prims []P, begin, end int) int {
		cbox := centroidBox(prims, begin, end, bound)
		dim := cbox.LongestAxis()
		extent := cbox.Diagonal()[dim]

		// All centroids coincide along dim; the bucket normalization
		// below would divide by zero.
		if extent <= 0 {
			return equalCounts(prims, begin, end, dim, bound)
		}

		bucketOf := func(p P) int {
			t := (bound(p).Centroid()[dim] - cbox.Lo[dim]) / extent
			b := int(T(nBuckets) * t)
			if b >= nBuckets {
				b = nBuckets - 1
			}
			return b
		}

		boxes := make([]types.Box[T], nBuckets)
		counts := make([]int, nBuckets)
		for i := range boxes {
			boxes[i] = types.EmptyBox[T](cbox.Lo.Dim())
		}
		for i := begin; i < end; i++ {
			b := bucketOf(prims[i])
			boxes[b] = types.Merge(boxes[b], bound(prims[i]))
			counts[b]++
		}

		// Cost of splitting into buckets [0,b] and [b+1, nBuckets-1].
		// A candidate with an empty side costs inf*0 = NaN and is
		// never selected.
		minCost := T(math.Inf(+1))
		splitBucket := 0
		for b := 0; b < nBuckets-1; b++ {
			box0 := types.EmptyBox[T](cbox.Lo.Dim())
			box1 := types.EmptyBox[T](cbox.Lo.Dim())
			count0, count1 := 0, 0

			for i := 0; i <= b; i++ {
				box0 = types.Merge(box0, boxes[i])
				count0 += counts[i]
			}
			for i := b + 1; i < nBuckets; i++ {
				box1 = types.Merge(box1, boxes[i])
				count1 += counts[i]
			}

			cost := box0.Area()*T(count0) + box1.Area()*T(count1)
			if minCost > cost {
				minCost = cost
				splitBucket = b
			}
		}

		m := partition(prims, begin, end, func(p P) bool {
			return bucketOf(p) <= splitBucket
		})

		if m == begin || m == end {
			return equalCounts(prims, begin, end, dim, bound)
		}
		return m
	}
}

// The box enclosing the centroids of the primitive boxes over
// prims[begin:end]. Requires a non-empty range.
func centroidBox[P any, T types.Float](prims []P, begin, end int, bound Bound[P, T]) types.Box[T] {
	cbox := types.BoxFromPoint(bound(prims[begin]).Centroid())
	for i := begin + 1; i < end; i++ {
		cbox = types.Merge(cbox, types.BoxFromPoint(bound(prims[i]).Centroid()))
	}
	return cbox
}

func equalCounts[P any, T types.Float](prims []P, begin, end, dim int, bound Bound[P, T]) int {
	mid := begin + (end-begin)/2
	nthElement(prims, begin, end, mid, func(a, b P) bool {
		return bound(a).Centroid()[dim] < bound(b).Centroid()[dim]
	})
	return mid
}

// Reorder prims[begin:end] so that every element satisfying pred
// precedes every element that does not, returning the index of the
// first element of the second group.
func partition[P any](prims []P, begin, end int, pred func(P) bool) int {
	m := begin
	for i := begin; i < end; i++ {
		if pred(prims[i]) {
			prims[m], prims[i] = prims[i], prims[m]
			m++
		}
	}
	return m
}

// Quickselect over prims[begin:end]: places the element of rank k at
// index k with no smaller element after it and no greater element
// before it. O(n) average.
func nthElement[P any](prims []P, begin, end, k int, less func(a, b P) bool) {
	lo, hi := begin, end-1
	for lo < hi {
		// Median of three as the pivot, keeping the common presorted
		// cases away from the quadratic worst case.
		mid := lo + (hi-lo)/2
		if less(prims[mid], prims[lo]) {
			prims[mid], prims[lo] = prims[lo], prims[mid]
		}
		if less(prims[hi], prims[mid]) {
			prims[hi], prims[mid] = prims[mid], prims[hi]
			if less(prims[mid], prims[lo]) {
				prims[mid], prims[lo] = prims[lo], prims[mid]
			}
		}
		prims[lo], prims[mid] = prims[mid], prims[lo]
		pivot := prims[lo]

		i, j := lo-1, hi+1
		for {
			for {
				i++
				if !less(prims[i], pivot) {
					break
				}
			}
			for {
				j--
				if !less(pivot, prims[j]) {
					break
				}
			}
			if i >= j {
				break
			}
			prims[i], prims[j] = prims[j], prims[i]
		}

		if k <= j {
			hi = j
		} else {
			lo = j + 1
		}
	}
}
