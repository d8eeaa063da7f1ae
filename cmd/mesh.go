package cmd

import (
	"math"
	"math/rand"

	"golang.org/x/image/math/f32"

	"github.com/IngInx747/nbvh/bvh"
	"github.com/IngInx747/nbvh/types"
)

// A triangle soup with vertices packed three per face into a compact
// f32 buffer. The primitives handed to the tree are face ids.
type triangleMesh struct {
	vertices []f32.Vec3
}

func (m *triangleMesh) faceCount() int {
	return len(m.vertices) / 3
}

func (m *triangleMesh) faceIds() []int {
	fids := make([]int, m.faceCount())
	for i := range fids {
		fids[i] = i
	}
	return fids
}

func (m *triangleMesh) vertex(i int) types.Vector[float32] {
	return types.FromF32Vec3(m.vertices[i])
}

// Bound callback for the tree builder.
func (m *triangleMesh) bound() bvh.Bound[int, float32] {
	return func(fid int) types.Box[float32] {
		return types.BoxFromPoints(
			m.vertex(fid*3),
			m.vertex(fid*3+1),
			m.vertex(fid*3+2),
		)
	}
}

// Collide callback for ray queries. Records the id of the closest
// face hit so far in *hitId.
func (m *triangleMesh) collide(hitId *int) bvh.Collide[int, float32] {
	return func(fid int, org, dir types.Vector[float32], dist *float32) bool {
		v0 := m.vertex(fid * 3)
		v1 := m.vertex(fid*3 + 1)
		v2 := m.vertex(fid*3 + 2)
		if intersectTriangle(v0, v1, v2, org, dir, dist) {
			*hitId = fid
			return true
		}
		return false
	}
}

// Möller-Trumbore ray/triangle intersection without culling. Accepts
// only hits strictly closer than *dist and shrinks it on success.
func intersectTriangle(v0, v1, v2, org, dir types.Vector[float32], dist *float32) bool {
	const eps = 1e-9

	v01 := v1.Sub(v0)
	v02 := v2.Sub(v0)
	pvc := types.Cross(dir, v02)
	det := v01.Dot(pvc)

	if float32(math.Abs(float64(det))) < eps {
		return false
	}

	inv := 1 / det
	tvc := org.Sub(v0)
	u := tvc.Dot(pvc) * inv
	if u < 0 || u > 1 {
		return false
	}

	qvc := types.Cross(tvc, v01)
	v := dir.Dot(qvc) * inv
	if v < 0 || u+v > 1 {
		return false
	}

	t := v02.Dot(qvc) * inv
	if t > 0 && *dist > t {
		*dist = t
		return true
	}
	return false
}

// Generate a soup of small random triangles inside a 100-unit cube.
func generateMesh(n int, seed int64) *triangleMesh {
	rng := rand.New(rand.NewSource(seed))
	mesh := &triangleMesh{vertices: make([]f32.Vec3, 0, n*3)}

	for i := 0; i < n; i++ {
		center := types.Vector[float32]{
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
		}
		for k := 0; k < 3; k++ {
			vert := center.Add(types.Vector[float32]{
				rng.Float32()*2 - 1,
				rng.Float32()*2 - 1,
				rng.Float32()*2 - 1,
			})
			mesh.vertices = append(mesh.vertices, vert.F32Vec3())
		}
	}

	return mesh
}

// Generate rays originating on a sphere around the scene and aimed
// at random points near its center.
func generateRays(n int, seed int64) (orgs, dirs []types.Vector[float32]) {
	rng := rand.New(rand.NewSource(seed))
	orgs = make([]types.Vector[float32], n)
	dirs = make([]types.Vector[float32], n)

	for i := 0; i < n; i++ {
		org := types.Vector[float32]{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
		}
		org = types.Normalize(org).MulS(120)
		target := types.Vector[float32]{
			rng.Float32()*40 - 20,
			rng.Float32()*40 - 20,
			rng.Float32()*40 - 20,
		}
		orgs[i] = org
		dirs[i] = types.Normalize(target.Sub(org))
	}

	return orgs, dirs
}
