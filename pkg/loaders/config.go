package loaders

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// The yaml document tree of a scene description. Tagged unions are decoded
// into flat structs holding every variant's fields and resolved when the
// scene is built.

type integratorConfig struct {
	Tracer  tracerConfig  `yaml:"tracer"`
	Sampler samplerConfig `yaml:"sampler"`
	Passes  int           `yaml:"passes"`
	Scene   sceneConfig   `yaml:"scene"`
}

type tracerConfig struct {
	Type        string   `yaml:"type"`
	MinDepth    *int     `yaml:"min_depth"`
	MaxDepth    *int     `yaml:"max_depth"`
	RRThreshold *float64 `yaml:"rr_threshold"`
	Range       *float64 `yaml:"range"`
}

type samplerConfig struct {
	Type            string `yaml:"type"`
	SamplesPerPixel *int   `yaml:"samples_per_pixel"`
}

type sceneConfig struct {
	Camera   *cameraConfig   `yaml:"camera"`
	Elements []elementConfig `yaml:"elements"`
}

type cameraConfig struct {
	Type          string        `yaml:"type"`
	FOV           float64       `yaml:"fov"`
	LensRadius    float64       `yaml:"lens_radius"`
	FocalDistance *float64      `yaml:"focal_distance"`
	Resolution    []int         `yaml:"resolution"`
	Transforms    transformList `yaml:"transforms"`
}

type elementConfig struct {
	Type string `yaml:"type"`

	// sphere
	Center *vec3Value `yaml:"center"`
	Radius *float64   `yaml:"radius"`

	// mesh
	OBJ string `yaml:"obj"`
	PLY string `yaml:"ply"`

	// shapes
	BSDF     *bsdfConfig    `yaml:"bsdf"`
	Emission *textureConfig `yaml:"emission"`

	// pointlight
	Position  *vec3Value  `yaml:"position"`
	Intensity *colorValue `yaml:"intensity"`

	// infinitelight
	Texture *textureConfig `yaml:"texture"`
	Color   *colorValue    `yaml:"color"`

	Transforms transformList `yaml:"transforms"`
}

// bsdfConfig accepts a bare variant name or a mapping with parameters
type bsdfConfig struct {
	Type   string         `yaml:"type"`
	Albedo *textureConfig `yaml:"albedo"`
	IOR    *float64       `yaml:"ior"`
	Alpha  *float64       `yaml:"alpha"`
	Ks     *float64       `yaml:"ks"`
}

func (b *bsdfConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		b.Type = node.Value
		return nil
	}
	type plain bsdfConfig
	return strictDecode(node, (*plain)(b))
}

// textureConfig accepts a scalar, an [r,g,b] triple or a typed mapping
type textureConfig struct {
	Type      string      `yaml:"type"`
	Value     *colorValue `yaml:"value"`
	Color1    *colorValue `yaml:"color1"`
	Color2    *colorValue `yaml:"color2"`
	Scale     *vec2Value  `yaml:"scale"`
	LineWidth *float64    `yaml:"line_width"`
	File      string      `yaml:"file"`
	Linear    bool        `yaml:"linear"`
}

func (t *textureConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		type plain textureConfig
		return strictDecode(node, (*plain)(t))
	}

	var c colorValue
	if err := c.UnmarshalYAML(node); err != nil {
		return err
	}
	*t = textureConfig{Type: "constant", Value: &c}
	return nil
}

// transformList is a sequence of single-key mappings applied left to right
type transformList []core.Transform

func (l *transformList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: transforms must be a list", node.Line)
	}

	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return fmt.Errorf("line %d: transform must be a mapping with a single key", item.Line)
		}
		t, err := decodeTransform(item.Content[0].Value, item.Content[1])
		if err != nil {
			return err
		}
		*l = append(*l, t)
	}
	return nil
}

// Compose returns the combined transform, identity when empty
func (l transformList) Compose() core.Transform {
	return core.Compose(l...)
}

func decodeTransform(kind string, node *yaml.Node) (core.Transform, error) {
	switch kind {
	case "translate":
		var v vec3Value
		if err := v.UnmarshalYAML(node); err != nil {
			return core.Transform{}, err
		}
		return core.Translate(core.Vec3(v)), nil
	case "scale":
		var s float64
		if err := node.Decode(&s); err != nil {
			return core.Transform{}, fmt.Errorf("line %d: scale must be a number", node.Line)
		}
		return core.Scale(s), nil
	case "rotate":
		var r struct {
			Axis  vec3Value `yaml:"axis"`
			Angle float64   `yaml:"angle"`
		}
		if err := strictDecode(node, &r); err != nil {
			return core.Transform{}, err
		}
		if core.Vec3(r.Axis).LengthSquared() == 0 {
			return core.Transform{}, fmt.Errorf("line %d: rotate needs a non-zero axis", node.Line)
		}
		return core.Rotate(core.Vec3(r.Axis), r.Angle), nil
	case "look_at":
		var la struct {
			Origin vec3Value  `yaml:"origin"`
			Target vec3Value  `yaml:"target"`
			Up     *vec3Value `yaml:"up"`
		}
		if err := strictDecode(node, &la); err != nil {
			return core.Transform{}, err
		}
		up := core.NewVec3(0, 1, 0)
		if la.Up != nil {
			up = core.Vec3(*la.Up)
		}
		forward := core.Vec3(la.Target).Subtract(core.Vec3(la.Origin))
		if forward.LengthSquared() == 0 || forward.Cross(up).LengthSquared() == 0 {
			return core.Transform{}, fmt.Errorf("line %d: look_at needs distinct origin and target not parallel to up", node.Line)
		}
		return core.LookAt(core.Vec3(la.Origin), core.Vec3(la.Target), up), nil
	default:
		return core.Transform{}, fmt.Errorf("line %d: unknown transform %q", node.Line, kind)
	}
}

// vec3Value accepts [x,y,z] or a scalar splatted to all components
type vec3Value core.Vec3

func (v *vec3Value) UnmarshalYAML(node *yaml.Node) error {
	f, err := decodeFloats(node, 3)
	if err != nil {
		return err
	}
	*v = vec3Value(core.NewVec3(f[0], f[1], f[2]))
	return nil
}

// vec2Value accepts [u,v] or a scalar splatted to both components
type vec2Value core.Vec2

func (v *vec2Value) UnmarshalYAML(node *yaml.Node) error {
	f, err := decodeFloats(node, 2)
	if err != nil {
		return err
	}
	*v = vec2Value(core.NewVec2(f[0], f[1]))
	return nil
}

// colorValue accepts [r,g,b] or a scalar gray level
type colorValue core.Color

func (c *colorValue) UnmarshalYAML(node *yaml.Node) error {
	f, err := decodeFloats(node, 3)
	if err != nil {
		return err
	}
	*c = colorValue(core.NewColor(f[0], f[1], f[2]))
	return nil
}

func decodeFloats(node *yaml.Node, n int) ([]float64, error) {
	out := make([]float64, n)
	switch node.Kind {
	case yaml.ScalarNode:
		var s float64
		if err := node.Decode(&s); err != nil {
			return nil, fmt.Errorf("line %d: expected a number, got %q", node.Line, node.Value)
		}
		for i := range out {
			out[i] = s
		}
	case yaml.SequenceNode:
		if len(node.Content) != n {
			return nil, fmt.Errorf("line %d: expected %d values, got %d", node.Line, n, len(node.Content))
		}
		for i, item := range node.Content {
			if err := item.Decode(&out[i]); err != nil {
				return nil, fmt.Errorf("line %d: expected a number, got %q", item.Line, item.Value)
			}
		}
	default:
		return nil, fmt.Errorf("line %d: expected a number or a list of %d numbers", node.Line, n)
	}
	return out, nil
}

// strictDecode decodes a mapping node rejecting unknown keys
func strictDecode(node *yaml.Node, out interface{}) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	known := yamlKeys(out)
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		if _, ok := known[key.Value]; !ok {
			return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}
	return node.Decode(out)
}

// yamlKeys returns the mapping keys a struct decodes
func yamlKeys(out interface{}) map[string]struct{} {
	t := reflect.TypeOf(out)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name == "" {
			name = strings.ToLower(t.Field(i).Name)
		}
		keys[name] = struct{}{}
	}
	return keys
}
