package geometry

import (
	"fmt"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// Mesh is a triangle mesh with its own BVH and an area-weighted triangle distribution
type Mesh struct {
	Data      *MeshData
	Triangles []Triangle
	bvh       Primitive
	cdf       core.DiscreteCDF
}

// NewMesh creates a mesh from shared vertex data and triangle vertex indices
func NewMesh(data *MeshData, faces [][3]uint32) (*Mesh, error) {
	n := uint32(len(data.Positions))
	if len(data.Normals) > 0 && len(data.Normals) != int(n) {
		return nil, fmt.Errorf("geometry: mesh has %d normals for %d positions", len(data.Normals), n)
	}
	if len(data.UVs) > 0 && len(data.UVs) != int(n) {
		return nil, fmt.Errorf("geometry: mesh has %d uvs for %d positions", len(data.UVs), n)
	}

	triangles := make([]Triangle, len(faces))
	areas := make([]float64, len(faces))
	for i, face := range faces {
		for _, v := range face {
			if v >= n {
				return nil, fmt.Errorf("geometry: triangle %d references vertex %d of %d", i, v, n)
			}
		}
		triangles[i] = Triangle{V: face, Index: i, Data: data}
		areas[i] = triangles[i].SurfaceArea()
	}

	bvh, err := NewBVH(triangles)
	if err != nil {
		return nil, err
	}

	return &Mesh{
		Data:      data,
		Triangles: triangles,
		bvh:       bvh,
		cdf:       core.NewDiscreteCDF(areas),
	}, nil
}

// BBox returns the bounds of the mesh
func (m *Mesh) BBox() core.BBox {
	return m.bvh.BBox()
}

// Intersects reports whether the ray hits any triangle
func (m *Mesh) Intersects(ray core.Ray) bool {
	return m.bvh.Intersects(ray)
}

// Intersect returns the closest partial triangle hit
func (m *Mesh) Intersect(ray core.Ray) (Interaction, bool) {
	return m.bvh.Intersect(ray)
}

// HitInfo completes a partial interaction returned by Intersect
func (m *Mesh) HitInfo(it *Interaction) {
	m.Triangles[it.Primitive].HitInfo(it)
}

// SampleSurface picks a triangle proportionally to its area and then a point on it
func (m *Mesh) SampleSurface(sample core.Vec2) Interaction {
	idx, remapped := m.cdf.Sample(sample.X)
	return m.Triangles[idx].SampleSurface(core.NewVec2(remapped, sample.Y))
}

// SurfaceArea returns the summed triangle area
func (m *Mesh) SurfaceArea() float64 {
	return m.cdf.Total()
}
