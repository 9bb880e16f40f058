package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/integrator"
	"github.com/sshashank124/fission-sub000/pkg/lights"
	"github.com/sshashank124/fission-sub000/pkg/material"
)

const testScene = `
tracer: {type: path, min_depth: 2, max_depth: 8}
sampler: {type: independent, samples_per_pixel: 2}
passes: 4
scene:
  camera:
    type: perspective
    fov: 45
    resolution: [64, 48]
    transforms:
      - look_at: {origin: [0, 1, -5], target: [0, 0, 0], up: [0, 1, 0]}
  elements:
    - type: sphere
      radius: 0.5
      bsdf: {type: diffuse, albedo: [0.8, 0.2, 0.2]}
      transforms:
        - scale: 2
        - translate: [0, 1, 0]
    - type: mesh
      obj: meshes/quad.obj
      bsdf:
        type: microfacet
        alpha: 0.3
        albedo: {type: checkerboard, color1: 0.1, color2: 0.9, scale: 4}
    - type: sphere
      center: [0, 4, 0]
      radius: 0.25
      bsdf: mirror
      emission: 10
    - type: pointlight
      position: [1, 2, 3]
      intensity: [5, 5, 5]
    - type: infinitelight
      texture: {type: bitmap, file: sky.png}
      transforms:
        - rotate: {axis: [0, 1, 0], angle: 90}
`

const quadOBJ = `v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
f 1 2 3 4
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func writeSky(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(0, 0, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, testScene)
	writeFile(t, filepath.Join(dir, "meshes", "quad.obj"), quadOBJ)
	writeSky(t, filepath.Join(dir, "sky.png"))

	in, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if in.Passes != 4 || in.Sampler.SamplesPerPixel != 2 {
		t.Errorf("Unexpected integrator settings: passes %d spp %d", in.Passes, in.Sampler.SamplesPerPixel)
	}
	want := integrator.NewPathTracer(2, 8, DefaultRRThreshold)
	if in.Tracer != want {
		t.Errorf("Expected tracer %+v, got %+v", want, in.Tracer)
	}

	sc := in.Scene
	if sc.Camera.Width != 64 || sc.Camera.Height != 48 || sc.Camera.FOV != 45 {
		t.Errorf("Unexpected camera %+v", sc.Camera)
	}
	if len(sc.Shapes) != 3 {
		t.Fatalf("Expected 3 shapes, got %d", len(sc.Shapes))
	}

	// scale then translate: center (0,1,0), radius 1
	sphere := sc.Shapes[0]
	if sphere.Kind != geometry.ShapeSphere || math.Abs(sphere.Sphere.Radius-1) > 1e-12 ||
		sphere.Sphere.Center.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Unexpected transformed sphere %+v", sphere.Sphere)
	}
	if sphere.BSDF.Kind != material.BSDFDiffuse {
		t.Errorf("Expected diffuse bsdf, got %v", sphere.BSDF.Kind)
	}

	mesh := sc.Shapes[1]
	if mesh.Kind != geometry.ShapeMesh || len(mesh.Mesh.Triangles) != 2 {
		t.Fatalf("Expected a two-triangle mesh, got %+v", mesh)
	}
	if mesh.BSDF.Kind != material.BSDFMicrofacet || mesh.BSDF.Albedo.Kind != material.TextureCheckerboard {
		t.Errorf("Unexpected mesh bsdf %+v", mesh.BSDF)
	}

	if !sc.Shapes[2].IsEmissive() || sc.Shapes[2].BSDF.Kind != material.BSDFMirror {
		t.Errorf("Expected emissive mirror sphere, got %+v", sc.Shapes[2])
	}

	kinds := map[lights.EmitterKind]int{}
	for _, e := range sc.Emitters {
		kinds[e.Kind]++
	}
	if kinds[lights.EmitterArea] != 1 || kinds[lights.EmitterPoint] != 1 || kinds[lights.EmitterInfinite] != 1 {
		t.Errorf("Unexpected emitters %v", kinds)
	}
	if !sc.HasEnvironment() {
		t.Error("Expected an environment emitter")
	}
}

func TestParseSceneDefaults(t *testing.T) {
	const src = `
tracer: {type: path}
passes: 1
scene:
  camera: {fov: 30, resolution: [8, 8]}
  elements:
    - type: infinitelight
      color: 1
`
	in, err := ParseScene(strings.NewReader(src), "defaults.yaml")
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	want := integrator.NewPathTracer(DefaultMinDepth, DefaultMaxDepth, DefaultRRThreshold)
	if in.Tracer != want {
		t.Errorf("Expected default tracer %+v, got %+v", want, in.Tracer)
	}
	if in.Sampler.SamplesPerPixel != 1 || in.Scene.Camera.FocalDistance != DefaultFocalDistance {
		t.Errorf("Unexpected defaults: spp %d focal %v", in.Sampler.SamplesPerPixel, in.Scene.Camera.FocalDistance)
	}
}

func TestParseSceneTracers(t *testing.T) {
	tests := []struct {
		src  string
		kind integrator.TracerKind
	}{
		{"{type: silhouette}", integrator.TracerSilhouette},
		{"{type: normals}", integrator.TracerNormals},
		{"{type: direct}", integrator.TracerDirect},
		{"{type: ao, range: 2}", integrator.TracerAO},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			src := "tracer: " + tt.src + "\npasses: 1\nscene:\n  camera: {fov: 30, resolution: [2, 2]}\n"
			in, err := ParseScene(strings.NewReader(src), "tracer.yaml")
			if err != nil {
				t.Fatalf("ParseScene failed: %v", err)
			}
			if in.Tracer.Kind != tt.kind {
				t.Errorf("Expected %v, got %v", tt.kind, in.Tracer.Kind)
			}
		})
	}

	in, _ := ParseScene(strings.NewReader("tracer: {type: ao}\npasses: 1\nscene:\n  camera: {fov: 30, resolution: [2, 2]}\n"), "ao.yaml")
	if in == nil || !math.IsInf(in.Tracer.AORange, 1) {
		t.Errorf("Expected unbounded default ao range")
	}
}

func TestParseSceneInvalid(t *testing.T) {
	const camera = "\nscene:\n  camera: {fov: 30, resolution: [2, 2]}\n"
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"empty", "", ""},
		{"missing tracer", "passes: 1" + camera, "tracer.type"},
		{"unknown tracer", "tracer: {type: bdpt}\npasses: 1" + camera, "tracer.type"},
		{"zero passes", "tracer: {type: path}" + camera, "passes"},
		{"unknown top level key", "tracer: {type: path}\npasses: 1\ncolour: red" + camera, ""},
		{"bad sampler", "tracer: {type: path}\nsampler: {type: sobol}\npasses: 1" + camera, "sampler.type"},
		{"missing camera", "tracer: {type: path}\npasses: 1\nscene: {}\n", "scene.camera"},
		{"bad resolution", "tracer: {type: path}\npasses: 1\nscene:\n  camera: {fov: 30, resolution: [2]}\n", "scene.camera.resolution"},
		{"unknown element", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: cube}\n", "scene.elements[0].type"},
		{"missing bsdf", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: sphere}\n", "scene.elements[0].bsdf"},
		{"unknown bsdf", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: sphere, bsdf: velvet}\n", "scene.elements[0].bsdf.type"},
		{"unknown bsdf field", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: sphere, bsdf: {type: mirror, shine: 1}}\n", ""},
		{"unknown transform", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: pointlight, intensity: 1, transforms: [{shear: 1}]}\n", ""},
		{"two environments", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: infinitelight, color: 1}\n    - {type: infinitelight, color: 1}\n", "scene.elements"},
		{"negative emission", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: sphere, bsdf: mirror, emission: [-1, 0, 0]}\n", "scene.elements[0].emission.value"},
		{"negative albedo", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: sphere, bsdf: {type: diffuse, albedo: -0.5}}\n", "scene.elements[0].bsdf.albedo.value"},
		{"nan intensity", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: pointlight, intensity: .nan}\n", "scene.elements[0].intensity"},
		{"infinite environment", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: infinitelight, color: [1, .inf, 1]}\n", "scene.elements[0].color"},
		{"mesh without file", "tracer: {type: path}\npasses: 1" + camera + "  elements:\n    - {type: mesh, bsdf: mirror}\n", "scene.elements[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.src), "bad.yaml")
			if !errors.Is(err, ErrConfigInvalid) {
				t.Fatalf("Expected ErrConfigInvalid, got %v", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected a ConfigError, got %T", err)
			}
			if cfgErr.Path != "bad.yaml" {
				t.Errorf("Expected path bad.yaml, got %q", cfgErr.Path)
			}
			if tt.field != "" && cfgErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q (%v)", tt.field, cfgErr.Field, err)
			}
		})
	}
}

func TestLoadSceneMissingMesh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, "tracer: {type: path}\npasses: 1\nscene:\n  camera: {fov: 30, resolution: [2, 2]}\n  elements:\n    - {type: mesh, ply: missing.ply, bsdf: mirror}\n")

	_, err := LoadScene(path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected a not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), filepath.Join(dir, "missing.ply")) {
		t.Errorf("Expected error to name the resolved path, got %v", err)
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestExampleScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example scenes found")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			in, err := LoadScene(path)
			if err != nil {
				t.Fatalf("LoadScene failed: %v", err)
			}
			if len(in.Scene.Shapes) == 0 {
				t.Error("scene has no shapes")
			}
			if len(in.Scene.Emitters) == 0 {
				t.Error("scene has no emitters")
			}
		})
	}
}
