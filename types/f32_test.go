package types

import (
	"testing"

	"golang.org/x/image/math/f32"
)

func TestF32RoundTrip(t *testing.T) {
	v3 := f32.Vec3{1, 2, 3}
	w3 := FromF32Vec3(v3)
	if !w3.Equals(Vector[float32]{1, 2, 3}) {
		t.Fatalf("expected (1, 2, 3); got %v", w3)
	}
	if got := w3.F32Vec3(); got != v3 {
		t.Fatalf("expected round trip to %v; got %v", v3, got)
	}

	v2 := f32.Vec2{4, 5}
	if got := FromF32Vec2(v2).F32Vec2(); got != v2 {
		t.Fatalf("expected round trip to %v; got %v", v2, got)
	}

	v4 := f32.Vec4{6, 7, 8, 9}
	if got := FromF32Vec4(v4).F32Vec4(); got != v4 {
		t.Fatalf("expected round trip to %v; got %v", v4, got)
	}
}

func TestF32PackNarrows(t *testing.T) {
	v := V(1.5, 2.5, 3.5)

	if got := v.F32Vec3(); got != (f32.Vec3{1.5, 2.5, 3.5}) {
		t.Fatalf("expected packed (1.5, 2.5, 3.5); got %v", got)
	}
}
