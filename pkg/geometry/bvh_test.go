package geometry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

func randomVec(random *rand.Rand, scale float64) core.Vec3 {
	return core.NewVec3(
		(random.Float64()*2-1)*scale,
		(random.Float64()*2-1)*scale,
		(random.Float64()*2-1)*scale,
	)
}

// randomMesh scatters small triangles through a cube
func randomMesh(t *testing.T, random *rand.Rand, count int) *Mesh {
	t.Helper()
	data := &MeshData{}
	faces := make([][3]uint32, count)
	for i := 0; i < count; i++ {
		center := randomVec(random, 5)
		base := uint32(len(data.Positions))
		for k := 0; k < 3; k++ {
			data.Positions = append(data.Positions, center.Add(randomVec(random, 0.5)))
		}
		faces[i] = [3]uint32{base, base + 1, base + 2}
	}
	mesh, err := NewMesh(data, faces)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	return mesh
}

func randomRay(random *rand.Rand) core.Ray {
	origin := randomVec(random, 10)
	target := randomVec(random, 4)
	return core.NewRay(origin, target.Subtract(origin))
}

func linearIntersect[T Primitive](elements []T, ray core.Ray) (Interaction, bool) {
	var best Interaction
	found := false
	for _, e := range elements {
		if it, ok := e.Intersect(ray); ok {
			best = it
			found = true
			ray = ray.ClippedTo(it.T)
		}
	}
	return best, found
}

func TestBVHMatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	mesh := randomMesh(t, random, 1000)

	hits := 0
	for i := 0; i < 10000; i++ {
		ray := randomRay(random)
		got, gotOK := mesh.bvh.Intersect(ray)
		want, wantOK := linearIntersect(mesh.Triangles, ray)

		if gotOK != wantOK {
			t.Fatalf("Ray %d: BVH hit=%v, linear hit=%v", i, gotOK, wantOK)
		}
		if gotOK {
			hits++
			if got.T != want.T || got.Primitive != want.Primitive {
				t.Fatalf("Ray %d: BVH hit triangle %d at t=%v, linear hit %d at t=%v",
					i, got.Primitive, got.T, want.Primitive, want.T)
			}
		}
		if shadow := mesh.bvh.Intersects(ray); shadow != gotOK {
			t.Fatalf("Ray %d: Intersects=%v but Intersect found=%v", i, shadow, gotOK)
		}
	}
	if hits == 0 {
		t.Error("Expected some rays to hit the mesh")
	}
}

func TestBVHMatchesLinearScanForSpheres(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	spheres := make([]Sphere, 200)
	for i := range spheres {
		spheres[i] = NewSphere(randomVec(random, 5), 0.1+random.Float64()*0.4)
	}
	bvh, err := NewBVH(spheres)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	for i := 0; i < 5000; i++ {
		ray := randomRay(random)
		got, gotOK := bvh.Intersect(ray)
		want, wantOK := linearIntersect(spheres, ray)
		if gotOK != wantOK || (gotOK && got.T != want.T) {
			t.Fatalf("Ray %d: BVH (%v, %v), linear (%v, %v)", i, gotOK, got.T, wantOK, want.T)
		}
	}
}

func TestBVHNodeBoundsContainChildren(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	mesh := randomMesh(t, random, 500)
	b := mesh.bvh.(*BVH[Triangle])

	union := core.EmptyBBox()
	for _, tri := range mesh.Triangles {
		union = union.Union(tri.BBox())
	}
	if !b.BBox().Contains(union) {
		t.Error("Root bounds must contain every primitive")
	}

	leaves := 0
	for i, node := range b.nodes {
		if node.leaf {
			leaves++
			if !node.bbox.Contains(b.elements[node.index].BBox()) {
				t.Errorf("Leaf %d does not contain its element", i)
			}
			continue
		}
		left, right := b.nodes[i+1], b.nodes[node.index]
		if int(node.index) <= i+1 || int(node.index) >= len(b.nodes) {
			t.Fatalf("Node %d has invalid right child %d", i, node.index)
		}
		if !node.bbox.Contains(left.bbox) || !node.bbox.Contains(right.bbox) {
			t.Errorf("Node %d does not contain its children", i)
		}
	}
	if leaves != len(mesh.Triangles) {
		t.Errorf("Expected one leaf per triangle, got %d leaves for %d triangles", leaves, len(mesh.Triangles))
	}
	if b.NodeCount() != 2*len(mesh.Triangles)-1 {
		t.Errorf("Expected %d nodes, got %d", 2*len(mesh.Triangles)-1, b.NodeCount())
	}
}

func TestBVHDegenerateCentroids(t *testing.T) {
	// Identical spheres all share a centroid and must be split at the median
	spheres := make([]Sphere, 64)
	for i := range spheres {
		spheres[i] = NewSphere(core.Vec3{}, 1)
	}
	bvh, err := NewBVH(spheres)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}
	if bvh.NodeCount() != 127 {
		t.Errorf("Expected 127 nodes, got %d", bvh.NodeCount())
	}
	if !bvh.Intersects(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))) {
		t.Error("Expected a hit through the shared center")
	}
}

func TestBVHEmpty(t *testing.T) {
	_, err := NewBVH([]Sphere{})
	if !errors.Is(err, ErrEmptyAggregate) {
		t.Errorf("Expected ErrEmptyAggregate, got %v", err)
	}
}
