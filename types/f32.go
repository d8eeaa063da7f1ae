package types

import "golang.org/x/image/math/f32"

// Conversions between float32 vectors and the compact f32 types used
// for packed vertex buffers.

// Widen a packed 2 component vector.
func FromF32Vec2(v f32.Vec2) Vector[float32] {
	return Vector[float32]{v[0], v[1]}
}

// Widen a packed 3 component vector.
func FromF32Vec3(v f32.Vec3) Vector[float32] {
	return Vector[float32]{v[0], v[1], v[2]}
}

// Widen a packed 4 component vector.
func FromF32Vec4(v f32.Vec4) Vector[float32] {
	return Vector[float32]{v[0], v[1], v[2], v[3]}
}

// Pack a 2 component vector.
func (v Vector[T]) F32Vec2() f32.Vec2 {
	return f32.Vec2{float32(v[0]), float32(v[1])}
}

// Pack a 3 component vector.
func (v Vector[T]) F32Vec3() f32.Vec3 {
	return f32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Pack a 4 component vector.
func (v Vector[T]) F32Vec4() f32.Vec4 {
	return f32.Vec4{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}
