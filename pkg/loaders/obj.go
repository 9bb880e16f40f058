package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
)

// objCorner is a face corner as position/uv/normal indices, zero-based with -1 for absent
type objCorner struct {
	v, vt, vn int
}

type objParser struct {
	positions []core.Vec3
	uvs       []core.Vec2
	normals   []core.Vec3

	corners map[objCorner]uint32
	order   []objCorner
	faces   [][3]uint32
}

// LoadOBJ reads a Wavefront OBJ file. Only geometry statements are used;
// groups, materials and smoothing statements are ignored.
func LoadOBJ(path string) (*MeshFile, error) {
	logger.Infof(`parsing wavefront object from "%s"`, path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %q: %w", path, err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %q: %w", path, err)
	}

	logger.Infof("parsed %d vertices and %d triangles in %d ms",
		len(mesh.Data.Positions), len(mesh.Faces), time.Since(start).Milliseconds())
	return mesh, nil
}

// ParseOBJ reads Wavefront OBJ statements from r.
func ParseOBJ(r io.Reader) (*MeshFile, error) {
	p := &objParser{corners: make(map[objCorner]uint32)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "v":
			var v core.Vec3
			v, err = parseVec3(fields[1:])
			p.positions = append(p.positions, v)
		case "vt":
			var v core.Vec2
			v, err = parseVec2(fields[1:])
			p.uvs = append(p.uvs, v)
		case "vn":
			var v core.Vec3
			v, err = parseVec3(fields[1:])
			p.normals = append(p.normals, v)
		case "f":
			err = p.parseFace(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p.mesh(), nil
}

func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face with %d vertices", len(fields))
	}

	polygon := make([]uint32, 0, len(fields))
	for _, field := range fields {
		c, err := p.parseCorner(field)
		if err != nil {
			return err
		}
		index, ok := p.corners[c]
		if !ok {
			index = uint32(len(p.order))
			p.corners[c] = index
			p.order = append(p.order, c)
		}
		polygon = append(polygon, index)
	}
	p.faces = triangulate(p.faces, polygon)
	return nil
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn
func (p *objParser) parseCorner(field string) (objCorner, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("malformed face vertex %q", field)
	}

	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return objCorner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(p.uvs)); err != nil {
			return objCorner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return objCorner{}, err
		}
	}
	return c, nil
}

// resolveIndex converts a one-based or negative relative index to zero-based
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if i < 0 {
		i += count
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return i, nil
}

// mesh flattens the distinct face corners into shared vertex arrays. Normals
// and uvs are kept only when every corner carries them.
func (p *objParser) mesh() *MeshFile {
	hasUV, hasNormal := len(p.order) > 0, len(p.order) > 0
	for _, c := range p.order {
		hasUV = hasUV && c.vt >= 0
		hasNormal = hasNormal && c.vn >= 0
	}

	data := &geometry.MeshData{Positions: make([]core.Vec3, len(p.order))}
	if hasUV {
		data.UVs = make([]core.Vec2, len(p.order))
	}
	if hasNormal {
		data.Normals = make([]core.Vec3, len(p.order))
	}
	for i, c := range p.order {
		data.Positions[i] = p.positions[c.v]
		if hasUV {
			data.UVs[i] = p.uvs[c.vt]
		}
		if hasNormal {
			data.Normals[i] = p.normals[c.vn].Normalize()
		}
	}

	return &MeshFile{Data: data, Faces: p.faces}
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", fields[i])
		}
		out[i] = v
	}
	return out, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	v, err := parseFloats(fields, 3)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func parseVec2(fields []string) (core.Vec2, error) {
	v, err := parseFloats(fields, 2)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.NewVec2(v[0], v[1]), nil
}
