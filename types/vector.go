package types

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Scalar lists the element types a vector can hold.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Float lists the element types usable for geometric queries.
type Float interface {
	constraints.Float
}

// An N dimensional vector. The slice length is the dimension.
type Vector[T Scalar] []T

// Define a vector from its components.
func V[T Scalar](comps ...T) Vector[T] {
	return Vector[T](comps)
}

// Define a vector of dim components all set to s.
func Splat[T Scalar](dim int, s T) Vector[T] {
	v := make(Vector[T], dim)
	for i := range v {
		v[i] = s
	}
	return v
}

// Get the vector dimension.
func (v Vector[T]) Dim() int {
	return len(v)
}

// Copy the vector.
func (v Vector[T]) Clone() Vector[T] {
	out := make(Vector[T], len(v))
	copy(out, v)
	return out
}

// Compare two vectors component by component.
func (v Vector[T]) Equals(v2 Vector[T]) bool {
	if len(v) != len(v2) {
		return false
	}
	for i := range v {
		if v[i] != v2[i] {
			return false
		}
	}
	return true
}

// Add a vector.
func (v Vector[T]) Add(v2 Vector[T]) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] + v2[i]
	}
	return out
}

// Subtract a vector.
func (v Vector[T]) Sub(v2 Vector[T]) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] - v2[i]
	}
	return out
}

// Multiply two vectors component by component.
func (v Vector[T]) Mul(v2 Vector[T]) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] * v2[i]
	}
	return out
}

// Divide two vectors component by component. Division follows the
// element type's semantics; for floats a zero divisor yields a
// signed infinity, which the box slab test depends on.
func (v Vector[T]) Div(v2 Vector[T]) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] / v2[i]
	}
	return out
}

// Add a scalar to every component.
func (v Vector[T]) AddS(s T) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] + s
	}
	return out
}

// Subtract a scalar from every component.
func (v Vector[T]) SubS(s T) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] - s
	}
	return out
}

// Multiply the vector with a scalar.
func (v Vector[T]) MulS(s T) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}

// Divide the vector by a scalar.
func (v Vector[T]) DivS(s T) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = v[i] / s
	}
	return out
}

// Negate the vector.
func (v Vector[T]) Neg() Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = -v[i]
	}
	return out
}

// Take the absolute value of every component.
func (v Vector[T]) Abs() Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		if v[i] < 0 {
			out[i] = -v[i]
		} else {
			out[i] = v[i]
		}
	}
	return out
}

// Sum all components.
func (v Vector[T]) Sum() T {
	var r T
	for i := range v {
		r += v[i]
	}
	return r
}

// Calculate dot product of 2 vectors.
func (v Vector[T]) Dot(v2 Vector[T]) T {
	var r T
	for i := range v {
		r += v[i] * v2[i]
	}
	return r
}

// Get the smallest component.
func (v Vector[T]) MinComponent() T {
	r := v[0]
	for _, x := range v[1:] {
		if x < r {
			r = x
		}
	}
	return r
}

// Get the largest component.
func (v Vector[T]) MaxComponent() T {
	r := v[0]
	for _, x := range v[1:] {
		if x > r {
			r = x
		}
	}
	return r
}

// Get the index of the smallest component. Ties resolve to the
// leftmost index.
func (v Vector[T]) ArgMin() int {
	k := 0
	for i := 1; i < len(v); i++ {
		if v[i] < v[k] {
			k = i
		}
	}
	return k
}

// Get the index of the largest component. Ties resolve to the
// leftmost index.
func (v Vector[T]) ArgMax() int {
	k := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[k] {
			k = i
		}
	}
	return k
}

// Calc min components from two vectors.
func Min[T Scalar](v1, v2 Vector[T]) Vector[T] {
	out := make(Vector[T], len(v1))
	for i := range v1 {
		if v2[i] < v1[i] {
			out[i] = v2[i]
		} else {
			out[i] = v1[i]
		}
	}
	return out
}

// Calc max components from two vectors.
func Max[T Scalar](v1, v2 Vector[T]) Vector[T] {
	out := make(Vector[T], len(v1))
	for i := range v1 {
		if v2[i] > v1[i] {
			out[i] = v2[i]
		} else {
			out[i] = v1[i]
		}
	}
	return out
}

// Get the Euclidean vector length.
func Norm[T Float](v Vector[T]) T {
	return T(math.Sqrt(float64(v.Dot(v))))
}

// Get the L1 vector length.
func Norm1[T Float](v Vector[T]) T {
	return v.Abs().Sum()
}

// Get the L-infinity vector length.
func NormInf[T Float](v Vector[T]) T {
	return v.Abs().MaxComponent()
}

// Normalize the vector.
func Normalize[T Float](v Vector[T]) Vector[T] {
	return v.DivS(Norm(v))
}

// Calculate cross product of 2 vectors. Defined for 3 dimensions.
func Cross[T Scalar](a, b Vector[T]) Vector[T] {
	return Vector[T]{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Calculate the scalar cross product of 2 planar vectors.
func Cross2D[T Scalar](a, b Vector[T]) T {
	return a[0]*b[1] - a[1]*b[0]
}
