package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is an element declaration with its properties in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// LoadPLY loads a PLY file into shared mesh data. Polygons are fan triangulated.
func LoadPLY(path string) (*MeshFile, error) {
	logger.Infof(`parsing ply mesh from "%s"`, path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %q: %w", path, err)
	}
	defer f.Close()

	mesh, err := ParsePLY(f)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %q: %w", path, err)
	}

	logger.Infof("parsed %d vertices and %d triangles in %d ms",
		len(mesh.Data.Positions), len(mesh.Faces), time.Since(start).Milliseconds())
	return mesh, nil
}

// ParsePLY reads a PLY stream in ascii, binary_little_endian or binary_big_endian format.
func ParsePLY(r io.Reader) (*MeshFile, error) {
	br := bufio.NewReaderSize(r, 1024*1024)
	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		values = &plyASCIIReader{r: br}
	case "binary_little_endian":
		values = &plyBinaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := &MeshFile{Data: &geometry.MeshData{}}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readPLYVertices(values, element, mesh.Data)
		case "face":
			mesh.Faces, err = readPLYFaces(values, element)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s element: %w", element.Name, err)
		}
	}

	return mesh, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	for first := true; ; first = false {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		parts := strings.Fields(line)
		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line")
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line")
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.Type) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported data type in list %s", prop.Name)
		}
		return prop, nil
	}

	prop := PLYProperty{Type: parts[0], Name: parts[1]}
	if getTypeSize(prop.Type) == 0 {
		return PLYProperty{}, fmt.Errorf("unsupported data type: %s", prop.Type)
	}
	return prop, nil
}

func readPLYVertices(values plyValueReader, element PLYElement, data *geometry.MeshData) error {
	// Slots of the attributes we keep in the scratch record
	const (
		x = iota
		y
		z
		nx
		ny
		nz
		u
		v
		numSlots
	)
	slots := make([]int, len(element.Properties))
	var seen [numSlots]bool
	for i, prop := range element.Properties {
		slot := -1
		switch prop.Name {
		case "x":
			slot = x
		case "y":
			slot = y
		case "z":
			slot = z
		case "nx":
			slot = nx
		case "ny":
			slot = ny
		case "nz":
			slot = nz
		case "u", "s", "texture_u":
			slot = u
		case "v", "t", "texture_v":
			slot = v
		}
		if slot >= 0 && prop.IsList {
			return fmt.Errorf("vertex property %s cannot be a list", prop.Name)
		}
		if slot >= 0 {
			seen[slot] = true
		}
		slots[i] = slot
	}
	if !seen[x] || !seen[y] || !seen[z] {
		return fmt.Errorf("vertex element lacks x, y or z")
	}
	hasNormals := seen[nx] && seen[ny] && seen[nz]
	hasUVs := seen[u] && seen[v]

	data.Positions = make([]core.Vec3, 0, element.Count)
	if hasNormals {
		data.Normals = make([]core.Vec3, 0, element.Count)
	}
	if hasUVs {
		data.UVs = make([]core.Vec2, 0, element.Count)
	}

	var record [numSlots]float64
	for i := 0; i < element.Count; i++ {
		for j, prop := range element.Properties {
			if prop.IsList {
				if err := skipPLYList(values, prop); err != nil {
					return err
				}
				continue
			}
			value, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			if slots[j] >= 0 {
				record[slots[j]] = value
			}
		}

		data.Positions = append(data.Positions, core.NewVec3(record[x], record[y], record[z]))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(record[nx], record[ny], record[nz]).Normalize())
		}
		if hasUVs {
			data.UVs = append(data.UVs, core.NewVec2(record[u], record[v]))
		}
	}
	return nil
}

func readPLYFaces(values plyValueReader, element PLYElement) ([][3]uint32, error) {
	faces := make([][3]uint32, 0, element.Count)
	var polygon []uint32

	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipPLYProperty(values, prop); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			count, err := values.read(prop.ListType)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if count < 3 {
				return nil, fmt.Errorf("face %d has %d vertices", i, int(count))
			}

			polygon = polygon[:0]
			for k := 0; k < int(count); k++ {
				index, err := values.read(prop.Type)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				if index < 0 || index > math.MaxUint32 {
					return nil, fmt.Errorf("face %d has invalid index %v", i, index)
				}
				polygon = append(polygon, uint32(index))
			}
			faces = triangulate(faces, polygon)
		}
	}
	return faces, nil
}

func skipPLYElement(values plyValueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipPLYProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(values plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipPLYList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipPLYList(values plyValueReader, prop PLYProperty) error {
	count, err := values.read(prop.ListType)
	if err != nil {
		return err
	}
	for k := 0; k < int(count); k++ {
		if _, err := values.read(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// plyValueReader reads one scalar of a PLY data type as float64
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type plyBinaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (p *plyBinaryReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	b := p.buf[:size]
	if _, err := io.ReadFull(p.r, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(p.order.Uint32(b))), nil
	case "double", "float64":
		return math.Float64frombits(p.order.Uint64(b)), nil
	case "int", "int32":
		return float64(int32(p.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(p.order.Uint32(b)), nil
	case "short", "int16":
		return float64(int16(p.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(p.order.Uint16(b)), nil
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	default:
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
}

type plyASCIIReader struct {
	r *bufio.Reader
}

// read parses the next whitespace separated token
func (p *plyASCIIReader) read(dataType string) (float64, error) {
	var token []byte
	for {
		c, err := p.r.ReadByte()
		if err == io.EOF && len(token) > 0 {
			break
		}
		if err != nil {
			return 0, err
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if len(token) > 0 {
				break
			}
			continue
		}
		token = append(token, c)
	}

	value, err := strconv.ParseFloat(string(token), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token)
	}
	return value, nil
}
