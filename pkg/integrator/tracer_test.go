package integrator

import (
	"math"
	"testing"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/lights"
	"github.com/sshashank124/fission-sub000/pkg/material"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

func newTestScene(t *testing.T, shapes []*geometry.Shape, emitters []*lights.Emitter) *scene.Scene {
	t.Helper()
	camera := scene.NewCamera(32, 32, 45, 0, 0,
		core.LookAt(core.NewVec3(0, 0, -3), core.Vec3{}, core.NewVec3(0, 1, 0)))
	s, err := scene.New(camera, shapes, emitters)
	if err != nil {
		t.Fatalf("scene.New failed: %v", err)
	}
	return s
}

func unitSphere(bsdf material.BSDF, emission *material.Texture) *geometry.Shape {
	return geometry.NewSphereShape(geometry.NewSphere(core.Vec3{}, 1), bsdf, emission)
}

func whiteEnvironment() *lights.Emitter {
	return lights.NewInfiniteEmitter(material.NewConstantTexture(core.White), core.IdentityTransform())
}

func gray(v float64) *material.Texture {
	return material.NewConstantTexture(core.Gray(v))
}

// averagePixel averages n traces through the continuous pixel position pos
func averagePixel(tr Tracer, s *scene.Scene, pos core.Vec2, n int) core.Color {
	sum := core.Black
	for i := 0; i < n; i++ {
		sampler := core.NewSampler(core.SamplerIndependent, 1).ForTile(i, 0, 0)
		sampler.PrepareForPixel(int(pos.X), int(pos.Y))
		sum = sum.Add(tr.Trace(s, &sampler, s.Camera.RayAt(pos, &sampler)))
	}
	return sum.Multiply(1 / float64(n))
}

func TestSilhouetteTracer(t *testing.T) {
	s := newTestScene(t, []*geometry.Shape{unitSphere(material.NewDiffuse(gray(1)), nil)}, nil)
	tr := Tracer{Kind: TracerSilhouette}

	if got := averagePixel(tr, s, core.NewVec2(16.5, 16.5), 1); got != core.Black {
		t.Errorf("Center pixel: got %+v, expected black", got)
	}
	if got := averagePixel(tr, s, core.NewVec2(0.5, 0.5), 1); got != core.White {
		t.Errorf("Corner pixel: got %+v, expected white", got)
	}
}

func TestNormalsTracer(t *testing.T) {
	s := newTestScene(t, []*geometry.Shape{unitSphere(material.NewDiffuse(gray(1)), nil)}, nil)
	got := averagePixel(Tracer{Kind: TracerNormals}, s, core.NewVec2(16, 16), 1)
	if math.Abs(got.B-1) > 1e-6 || got.R > 1e-6 || got.G > 1e-6 {
		t.Errorf("Expected normal facing the camera (0,0,1), got %+v", got)
	}
}

func TestAOTracer(t *testing.T) {
	s := newTestScene(t, []*geometry.Shape{unitSphere(material.NewDiffuse(gray(1)), nil)}, nil)
	// A lone convex sphere never occludes itself
	if got := averagePixel(NewAOTracer(0), s, core.NewVec2(16, 16), 64); got != core.White {
		t.Errorf("Expected unoccluded sphere, got %+v", got)
	}
}

func TestPathTracerDiffuseFurnace(t *testing.T) {
	s := newTestScene(t,
		[]*geometry.Shape{unitSphere(material.NewDiffuse(gray(0.5)), nil)},
		[]*lights.Emitter{whiteEnvironment()})

	for _, tr := range []Tracer{NewPathTracer(3, 16, 0.95), {Kind: TracerDirect}} {
		got := averagePixel(tr, s, core.NewVec2(16, 16), 4096)
		if math.Abs(got.R-0.5) > 0.02 || math.Abs(got.G-0.5) > 0.02 || math.Abs(got.B-0.5) > 0.02 {
			t.Errorf("%s furnace: got %+v, expected ~0.5", tr.Kind, got)
		}
	}
}

func TestPathTracerMirrorReflectsEnvironment(t *testing.T) {
	s := newTestScene(t,
		[]*geometry.Shape{unitSphere(material.NewMirror(), nil)},
		[]*lights.Emitter{whiteEnvironment()})

	got := averagePixel(NewPathTracer(3, 16, 0.95), s, core.NewVec2(16, 16), 16)
	if got != core.White {
		t.Errorf("Mirror in white environment: got %+v, expected white", got)
	}
}

func TestPathTracerSeesEmitterDirectly(t *testing.T) {
	s := newTestScene(t, []*geometry.Shape{unitSphere(material.NewDiffuse(gray(0)), gray(4))}, nil)

	got := averagePixel(NewPathTracer(3, 16, 0.95), s, core.NewVec2(16, 16), 8)
	if got != core.Gray(4) {
		t.Errorf("Expected emitted radiance (4,4,4), got %+v", got)
	}
}

func TestPathTracerPointLight(t *testing.T) {
	// A black-backed diffuse floor lit by a point light straight above the hit point
	floor := &geometry.MeshData{Positions: []core.Vec3{
		{X: -10, Y: -1, Z: -10}, {X: 10, Y: -1, Z: -10}, {X: 10, Y: -1, Z: 10}, {X: -10, Y: -1, Z: 10},
	}}
	mesh, err := geometry.NewMesh(floor, [][3]uint32{{0, 3, 2}, {0, 2, 1}})
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	shape := geometry.NewMeshShape(mesh, material.NewDiffuse(gray(0.5)), nil)
	light := lights.NewPointEmitter(core.NewVec3(0, 1, 0), core.Gray(4))

	camera := scene.NewCamera(8, 8, 10, 0, 0,
		core.LookAt(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), core.NewVec3(0, 0, 1)))
	s, err := scene.New(camera, []*geometry.Shape{shape}, []*lights.Emitter{light})
	if err != nil {
		t.Fatalf("scene.New failed: %v", err)
	}

	// E = I/d² = 4/4, L = ρ/π · E
	want := 0.5 / math.Pi
	got := averagePixel(Tracer{Kind: TracerDirect}, s, core.NewVec2(4, 4), 1)
	if math.Abs(got.R-want) > 1e-6 {
		t.Errorf("Direct lighting from point light: got %f, expected %f", got.R, want)
	}
}
