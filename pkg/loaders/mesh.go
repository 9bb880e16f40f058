package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sshashank124/fission-sub000/pkg/geometry"
)

// MeshFile holds the vertex data and triangle list read from a mesh file
type MeshFile struct {
	Data  *geometry.MeshData
	Faces [][3]uint32
}

// LoadMesh loads an OBJ or PLY file, choosing the parser by extension.
func LoadMesh(path string) (*MeshFile, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".ply":
		return LoadPLY(path)
	default:
		return nil, fmt.Errorf("loader: unsupported mesh format %q for %q", ext, path)
	}
}

// triangulate fans a convex polygon into triangles.
func triangulate(faces [][3]uint32, polygon []uint32) [][3]uint32 {
	for i := 2; i < len(polygon); i++ {
		faces = append(faces, [3]uint32{polygon[0], polygon[i-1], polygon[i]})
	}
	return faces
}
