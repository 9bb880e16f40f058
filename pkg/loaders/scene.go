package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/integrator"
	"github.com/sshashank124/fission-sub000/pkg/lights"
	"github.com/sshashank124/fission-sub000/pkg/log"
	"github.com/sshashank124/fission-sub000/pkg/material"
	"github.com/sshashank124/fission-sub000/pkg/renderer"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

var logger = log.New("loader")

// Defaults for optional scene description fields
const (
	DefaultMinDepth      = 3
	DefaultMaxDepth      = 16
	DefaultRRThreshold   = 0.95
	DefaultFocalDistance = 1.0
	DefaultIOR           = 1.5
	DefaultAlpha         = 0.2
)

type sceneLoader struct {
	path string // scene file, for error messages
	dir  string // base directory for relative paths
}

// LoadScene reads a yaml scene description and builds the integrator it
// describes. Relative paths inside the file resolve against its directory.
func LoadScene(path string) (*renderer.Integrator, error) {
	logger.Noticef(`loading scene from "%s"`, path)
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %q: %w", path, err)
	}
	in, err := ParseScene(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}

	logger.Noticef("loaded %d shapes and %d emitters in %d ms",
		len(in.Scene.Shapes), len(in.Scene.Emitters), time.Since(start).Milliseconds())
	return in, nil
}

// ParseScene decodes a scene description from r. path names the source for
// errors and anchors relative file references.
func ParseScene(r io.Reader, path string) (*renderer.Integrator, error) {
	l := &sceneLoader{path: path, dir: filepath.Dir(path)}

	var cfg integratorConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty document")
		}
		return nil, l.fail("", err)
	}

	return l.integrator(&cfg)
}

func (l *sceneLoader) fail(field string, err error) error {
	return &ConfigError{Path: l.path, Field: field, Err: err}
}

func (l *sceneLoader) failf(field, format string, args ...interface{}) error {
	return l.fail(field, fmt.Errorf(format, args...))
}

func (l *sceneLoader) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(l.dir, file)
}

func (l *sceneLoader) integrator(cfg *integratorConfig) (*renderer.Integrator, error) {
	tracer, err := l.tracer(&cfg.Tracer)
	if err != nil {
		return nil, err
	}
	sampler, err := l.sampler(&cfg.Sampler)
	if err != nil {
		return nil, err
	}
	if cfg.Passes <= 0 {
		return nil, l.failf("passes", "must be a positive integer, got %d", cfg.Passes)
	}
	sc, err := l.scene(&cfg.Scene)
	if err != nil {
		return nil, err
	}

	return &renderer.Integrator{
		Tracer:  tracer,
		Sampler: sampler,
		Scene:   sc,
		Passes:  cfg.Passes,
	}, nil
}

func (l *sceneLoader) tracer(cfg *tracerConfig) (integrator.Tracer, error) {
	switch cfg.Type {
	case "silhouette":
		return integrator.Tracer{Kind: integrator.TracerSilhouette}, nil
	case "normals":
		return integrator.Tracer{Kind: integrator.TracerNormals}, nil
	case "ao":
		return integrator.NewAOTracer(floatOr(cfg.Range, 0)), nil
	case "direct":
		return integrator.Tracer{Kind: integrator.TracerDirect}, nil
	case "path":
		minDepth := intOr(cfg.MinDepth, DefaultMinDepth)
		maxDepth := intOr(cfg.MaxDepth, DefaultMaxDepth)
		rr := floatOr(cfg.RRThreshold, DefaultRRThreshold)
		if minDepth < 0 || maxDepth < 1 {
			return integrator.Tracer{}, l.failf("tracer", "invalid depth range [%d, %d]", minDepth, maxDepth)
		}
		if rr <= 0 || rr > 1 {
			return integrator.Tracer{}, l.failf("tracer.rr_threshold", "must be in (0, 1], got %v", rr)
		}
		return integrator.NewPathTracer(minDepth, maxDepth, rr), nil
	case "":
		return integrator.Tracer{}, l.failf("tracer.type", "missing")
	default:
		return integrator.Tracer{}, l.failf("tracer.type", "unknown tracer %q", cfg.Type)
	}
}

func (l *sceneLoader) sampler(cfg *samplerConfig) (core.Sampler, error) {
	switch cfg.Type {
	case "", core.SamplerIndependent.String():
	default:
		return core.Sampler{}, l.failf("sampler.type", "unknown sampler %q", cfg.Type)
	}

	spp := intOr(cfg.SamplesPerPixel, 1)
	if spp < 1 {
		return core.Sampler{}, l.failf("sampler.samples_per_pixel", "must be positive, got %d", spp)
	}
	return core.NewSampler(core.SamplerIndependent, spp), nil
}

func (l *sceneLoader) scene(cfg *sceneConfig) (*scene.Scene, error) {
	if cfg.Camera == nil {
		return nil, l.failf("scene.camera", "missing")
	}
	camera, err := l.camera(cfg.Camera)
	if err != nil {
		return nil, err
	}

	var shapes []*geometry.Shape
	var emitters []*lights.Emitter
	for i := range cfg.Elements {
		field := fmt.Sprintf("scene.elements[%d]", i)
		shape, emitter, err := l.element(field, &cfg.Elements[i])
		if err != nil {
			return nil, err
		}
		if shape != nil {
			shapes = append(shapes, shape)
		}
		if emitter != nil {
			emitters = append(emitters, emitter)
		}
	}

	sc, err := scene.New(camera, shapes, emitters)
	if err != nil {
		return nil, l.fail("scene.elements", err)
	}
	return sc, nil
}

func (l *sceneLoader) camera(cfg *cameraConfig) (*scene.Camera, error) {
	if cfg.Type != "" && cfg.Type != "perspective" {
		return nil, l.failf("scene.camera.type", "unknown camera %q", cfg.Type)
	}
	if cfg.FOV <= 0 || cfg.FOV >= 180 {
		return nil, l.failf("scene.camera.fov", "must be in (0, 180) degrees, got %v", cfg.FOV)
	}
	if len(cfg.Resolution) != 2 || cfg.Resolution[0] <= 0 || cfg.Resolution[1] <= 0 {
		return nil, l.failf("scene.camera.resolution", "expected [width, height] with positive values, got %v", cfg.Resolution)
	}
	if cfg.LensRadius < 0 {
		return nil, l.failf("scene.camera.lens_radius", "must not be negative")
	}
	focal := floatOr(cfg.FocalDistance, DefaultFocalDistance)
	if focal <= 0 {
		return nil, l.failf("scene.camera.focal_distance", "must be positive")
	}

	return scene.NewCamera(cfg.Resolution[0], cfg.Resolution[1], cfg.FOV,
		cfg.LensRadius, focal, cfg.Transforms.Compose()), nil
}

func (l *sceneLoader) element(field string, cfg *elementConfig) (*geometry.Shape, *lights.Emitter, error) {
	toWorld := cfg.Transforms.Compose()

	switch cfg.Type {
	case "sphere":
		shape, err := l.sphere(field, cfg, toWorld)
		return shape, nil, err
	case "mesh":
		shape, err := l.mesh(field, cfg, toWorld)
		return shape, nil, err
	case "pointlight":
		if cfg.Intensity == nil {
			return nil, nil, l.failf(field+".intensity", "missing")
		}
		position := core.Vec3{}
		if cfg.Position != nil {
			position = core.Vec3(*cfg.Position)
		}
		intensity, err := l.color(field+".intensity", *cfg.Intensity)
		if err != nil {
			return nil, nil, err
		}
		return nil, lights.NewPointEmitter(toWorld.Point(position), intensity), nil
	case "infinitelight":
		var tex *material.Texture
		switch {
		case cfg.Texture != nil && cfg.Color != nil:
			return nil, nil, l.failf(field, "texture and color are mutually exclusive")
		case cfg.Texture != nil:
			var err error
			if tex, err = l.texture(field+".texture", cfg.Texture); err != nil {
				return nil, nil, err
			}
		case cfg.Color != nil:
			c, err := l.color(field+".color", *cfg.Color)
			if err != nil {
				return nil, nil, err
			}
			tex = material.NewConstantTexture(c)
		default:
			return nil, nil, l.failf(field, "infinitelight needs a texture or a color")
		}
		return nil, lights.NewInfiniteEmitter(tex, toWorld), nil
	case "":
		return nil, nil, l.failf(field+".type", "missing")
	default:
		return nil, nil, l.failf(field+".type", "unknown element %q", cfg.Type)
	}
}

// surface resolves the material and optional emission shared by all shapes
func (l *sceneLoader) surface(field string, cfg *elementConfig) (material.BSDF, *material.Texture, error) {
	if cfg.BSDF == nil {
		return material.BSDF{}, nil, l.failf(field+".bsdf", "missing")
	}
	bsdf, err := l.bsdf(field+".bsdf", cfg.BSDF)
	if err != nil {
		return material.BSDF{}, nil, err
	}

	var emission *material.Texture
	if cfg.Emission != nil {
		if emission, err = l.texture(field+".emission", cfg.Emission); err != nil {
			return material.BSDF{}, nil, err
		}
	}
	return bsdf, emission, nil
}

func (l *sceneLoader) sphere(field string, cfg *elementConfig, toWorld core.Transform) (*geometry.Shape, error) {
	bsdf, emission, err := l.surface(field, cfg)
	if err != nil {
		return nil, err
	}

	center := core.Vec3{}
	if cfg.Center != nil {
		center = core.Vec3(*cfg.Center)
	}
	radius := floatOr(cfg.Radius, 1)
	if radius <= 0 {
		return nil, l.failf(field+".radius", "must be positive, got %v", radius)
	}

	sphere := geometry.NewSphere(toWorld.Point(center), radius*toWorld.ScaleFactor())
	return geometry.NewSphereShape(sphere, bsdf, emission), nil
}

func (l *sceneLoader) mesh(field string, cfg *elementConfig, toWorld core.Transform) (*geometry.Shape, error) {
	bsdf, emission, err := l.surface(field, cfg)
	if err != nil {
		return nil, err
	}

	var file *MeshFile
	switch {
	case cfg.OBJ != "" && cfg.PLY != "":
		return nil, l.failf(field, "obj and ply are mutually exclusive")
	case cfg.OBJ != "":
		file, err = LoadOBJ(l.resolve(cfg.OBJ))
	case cfg.PLY != "":
		file, err = LoadPLY(l.resolve(cfg.PLY))
	default:
		return nil, l.failf(field, "mesh needs an obj or ply file")
	}
	if err != nil {
		return nil, err
	}

	data := file.Data
	for i, p := range data.Positions {
		data.Positions[i] = toWorld.Point(p)
	}
	for i, n := range data.Normals {
		data.Normals[i] = toWorld.Normal(n)
	}

	mesh, err := geometry.NewMesh(data, file.Faces)
	if err != nil {
		return nil, l.fail(field, err)
	}
	return geometry.NewMeshShape(mesh, bsdf, emission), nil
}

func (l *sceneLoader) bsdf(field string, cfg *bsdfConfig) (material.BSDF, error) {
	albedo := func() (*material.Texture, error) {
		if cfg.Albedo == nil {
			return nil, l.failf(field+".albedo", "missing")
		}
		return l.texture(field+".albedo", cfg.Albedo)
	}
	ior := floatOr(cfg.IOR, DefaultIOR)
	if ior <= 0 {
		return material.BSDF{}, l.failf(field+".ior", "must be positive, got %v", ior)
	}

	switch cfg.Type {
	case "diffuse":
		tex, err := albedo()
		if err != nil {
			return material.BSDF{}, err
		}
		return material.NewDiffuse(tex), nil
	case "mirror":
		return material.NewMirror(), nil
	case "dielectric":
		return material.NewDielectric(ior), nil
	case "microfacet":
		tex, err := albedo()
		if err != nil {
			return material.BSDF{}, err
		}
		alpha := floatOr(cfg.Alpha, DefaultAlpha)
		if alpha <= 0 {
			return material.BSDF{}, l.failf(field+".alpha", "must be positive, got %v", alpha)
		}
		return material.NewMicrofacet(tex, alpha, ior, floatOr(cfg.Ks, -1)), nil
	case "":
		return material.BSDF{}, l.failf(field+".type", "missing")
	default:
		return material.BSDF{}, l.failf(field+".type", "unknown bsdf %q", cfg.Type)
	}
}

func (l *sceneLoader) texture(field string, cfg *textureConfig) (*material.Texture, error) {
	color := func(name string, c *colorValue) (core.Color, error) {
		if c == nil {
			return core.Color{}, l.failf(field+"."+name, "missing")
		}
		return l.color(field+"."+name, *c)
	}
	scale := core.NewVec2(1, 1)
	if cfg.Scale != nil {
		scale = core.Vec2(*cfg.Scale)
	}

	switch cfg.Type {
	case "constant":
		c, err := color("value", cfg.Value)
		if err != nil {
			return nil, err
		}
		return material.NewConstantTexture(c), nil
	case "checkerboard", "grid", "gradient":
		c1, err := color("color1", cfg.Color1)
		if err != nil {
			return nil, err
		}
		c2, err := color("color2", cfg.Color2)
		if err != nil {
			return nil, err
		}
		switch cfg.Type {
		case "checkerboard":
			return material.NewCheckerboardTexture(c1, c2, scale), nil
		case "grid":
			width := floatOr(cfg.LineWidth, 0.1)
			if width <= 0 || width >= 1 {
				return nil, l.failf(field+".line_width", "must be in (0, 1), got %v", width)
			}
			return material.NewGridTexture(c1, c2, width, scale), nil
		default:
			return material.NewGradientTexture(c1, c2), nil
		}
	case "bitmap":
		if cfg.File == "" {
			return nil, l.failf(field+".file", "missing")
		}
		bitmap, err := LoadImage(l.resolve(cfg.File), cfg.Linear)
		if err != nil {
			return nil, err
		}
		if bitmap.Width == 0 || bitmap.Height == 0 {
			return nil, l.failf(field+".file", "image %q is empty", cfg.File)
		}
		return material.NewBitmapTexture(bitmap, scale), nil
	case "":
		return nil, l.failf(field+".type", "missing")
	default:
		return nil, l.failf(field+".type", "unknown texture %q", cfg.Type)
	}
}

// color rejects components that would turn into negative weights or NaN radiance
func (l *sceneLoader) color(field string, v colorValue) (core.Color, error) {
	c := core.Color(v)
	for _, x := range [3]float64{c.R, c.G, c.B} {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return core.Color{}, l.failf(field, "components must be finite and non-negative, got %v", [3]float64{c.R, c.G, c.B})
		}
	}
	return c, nil
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return fallback
	}
	return *v
}
