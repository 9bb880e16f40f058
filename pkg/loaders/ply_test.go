package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// createTestPLY creates a binary PLY file holding a unit square split into two triangles
func createTestPLY(t *testing.T, filename string, order binary.ByteOrder, includeNormals bool, includeColors bool) {
	var buf bytes.Buffer

	format := "binary_little_endian"
	if order == binary.BigEndian {
		format = "binary_big_endian"
	}

	// Write PLY header
	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("comment generated for tests\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")

	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}

	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}

	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	// Write vertex data (4 vertices forming a square)
	vertices := []struct {
		x, y, z    float32
		nx, ny, nz float32
		r, g, b    uint8
	}{
		{0.0, 0.0, 0.0, 0.0, 0.0, 1.0, 255, 0, 0},
		{1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0, 255, 0},
		{1.0, 1.0, 0.0, 0.0, 0.0, 1.0, 0, 0, 255},
		{0.0, 1.0, 0.0, 0.0, 0.0, 1.0, 255, 255, 0},
	}

	for _, v := range vertices {
		binary.Write(&buf, order, []float32{v.x, v.y, v.z})
		if includeNormals {
			binary.Write(&buf, order, []float32{v.nx, v.ny, v.nz})
		}
		if includeColors {
			binary.Write(&buf, order, []uint8{v.r, v.g, v.b})
		}
	}

	// Write face data (2 triangles)
	for _, f := range [][3]int32{{0, 1, 2}, {0, 2, 3}} {
		binary.Write(&buf, order, uint8(3))
		binary.Write(&buf, order, f)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to create test PLY file: %v", err)
	}
}

var squarePositions = []core.Vec3{
	core.NewVec3(0, 0, 0),
	core.NewVec3(1, 0, 0),
	core.NewVec3(1, 1, 0),
	core.NewVec3(0, 1, 0),
}

func checkSquare(t *testing.T, mesh *MeshFile) {
	t.Helper()
	if len(mesh.Data.Positions) != len(squarePositions) {
		t.Fatalf("Expected %d vertices, got %d", len(squarePositions), len(mesh.Data.Positions))
	}
	for i, expected := range squarePositions {
		if mesh.Data.Positions[i] != expected {
			t.Errorf("Vertex %d: expected %v, got %v", i, expected, mesh.Data.Positions[i])
		}
	}

	expectedFaces := [][3]uint32{{0, 1, 2}, {0, 2, 3}}
	if len(mesh.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d faces, got %d", len(expectedFaces), len(mesh.Faces))
	}
	for i, expected := range expectedFaces {
		if mesh.Faces[i] != expected {
			t.Errorf("Face %d: expected %v, got %v", i, expected, mesh.Faces[i])
		}
	}
}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name    string
		order   binary.ByteOrder
		normals bool
		colors  bool
	}{
		{"little endian", binary.LittleEndian, false, false},
		{"big endian", binary.BigEndian, false, false},
		{"with normals", binary.LittleEndian, true, false},
		{"with skipped colors", binary.LittleEndian, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "test.ply")
			createTestPLY(t, testFile, tt.order, tt.normals, tt.colors)

			mesh, err := LoadPLY(testFile)
			if err != nil {
				t.Fatalf("Failed to load PLY: %v", err)
			}
			checkSquare(t, mesh)

			if !tt.normals {
				if len(mesh.Data.Normals) != 0 {
					t.Errorf("Expected no normals, got %d", len(mesh.Data.Normals))
				}
				return
			}
			for i, n := range mesh.Data.Normals {
				if n != core.NewVec3(0, 0, 1) {
					t.Errorf("Normal %d: expected +Z, got %v", i, n)
				}
			}
		})
	}
}

func TestParsePLY_ASCIIQuad(t *testing.T) {
	const src = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
property float u
property float v
element face 1
property list uchar uint vertex_indices
end_header
0 0 0 0 0
1 0 0 1 0
1 1 0 1 1
0 1 0 0 1
4 0 1 2 3
`
	mesh, err := ParsePLY(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}
	checkSquare(t, mesh)
	if len(mesh.Data.UVs) != 4 || mesh.Data.UVs[2] != core.NewVec2(1, 1) {
		t.Errorf("Unexpected uvs %v", mesh.Data.UVs)
	}
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"missing format", "ply\nelement vertex 0\nend_header\n"},
		{"bad count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n"},
		{"unsupported type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{"degenerate face", "ply\nformat ascii 1.0\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n2 0 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.src)); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	if _, err := LoadPLY("nonexistent.ply"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
