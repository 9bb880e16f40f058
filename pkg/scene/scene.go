package scene

import (
	"errors"
	"fmt"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/lights"
)

var (
	// ErrMultipleEnvironments is returned when a scene declares more than one infinite emitter.
	ErrMultipleEnvironments = errors.New("scene: at most one infinite light is supported")
)

// Scene owns the camera, all shapes and all emitters. Emissive shapes live both in the
// shape BVH and in the emitter list.
type Scene struct {
	Camera   *Camera
	Shapes   []*geometry.Shape
	Emitters []*lights.Emitter

	bvh          *geometry.BVH[*geometry.Shape]
	lightCDF     core.DiscreteCDF
	env          *lights.Emitter
	envIndex     int
	emitterIndex map[*geometry.Shape]int
	bounds       core.BBox
	radius       float64
}

// New assembles a scene. Area emitters are created for every emissive shape and appended
// after the given emitters, which must not be area emitters themselves.
func New(camera *Camera, shapes []*geometry.Shape, emitters []*lights.Emitter) (*Scene, error) {
	s := &Scene{
		Camera:       camera,
		Shapes:       shapes,
		envIndex:     -1,
		emitterIndex: make(map[*geometry.Shape]int),
		bounds:       core.EmptyBBox(),
	}

	for _, e := range emitters {
		if e.Kind == lights.EmitterArea {
			return nil, fmt.Errorf("scene: area emitters are derived from emissive shapes")
		}
		if e.Kind == lights.EmitterInfinite {
			if s.env != nil {
				return nil, ErrMultipleEnvironments
			}
			s.env = e
			s.envIndex = len(s.Emitters)
		}
		s.Emitters = append(s.Emitters, e)
	}

	for _, shape := range shapes {
		if shape.IsEmissive() {
			s.emitterIndex[shape] = len(s.Emitters)
			s.Emitters = append(s.Emitters, lights.NewAreaEmitter(shape))
		}
	}

	if len(shapes) > 0 {
		bvh, err := geometry.NewBVH(shapes)
		if err != nil {
			return nil, err
		}
		s.bvh = bvh
		s.bounds = bvh.BBox()
		s.radius = s.bounds.Extent().Length() / 2
	}

	powers := make([]float64, len(s.Emitters))
	for i, e := range s.Emitters {
		powers[i] = e.Power(s.radius)
	}
	s.lightCDF = core.NewDiscreteCDF(powers)
	return s, nil
}

// Intersect returns the closest fully populated hit along the ray
func (s *Scene) Intersect(ray core.Ray) (geometry.Interaction, bool) {
	if s.bvh == nil {
		return geometry.Interaction{}, false
	}
	it, ok := s.bvh.Intersect(ray)
	if !ok {
		return geometry.Interaction{}, false
	}
	it.Shape.HitInfo(&it)
	return it, true
}

// Intersects reports whether anything blocks the ray
func (s *Scene) Intersects(ray core.Ray) bool {
	if s.bvh == nil {
		return false
	}
	return s.bvh.Intersects(ray)
}

// SampleRandomLight picks an emitter proportionally to its power with s.X, reuses the remapped
// sample to choose a point on it, and folds the selection probability into the returned PDF.
// The second result is false when the scene has no emitters or the sample carries no energy.
func (s *Scene) SampleRandomLight(ref *geometry.Interaction, sample core.Vec2) (lights.LightSample, bool) {
	if len(s.Emitters) == 0 {
		return lights.LightSample{}, false
	}
	idx, remapped := s.lightCDF.Sample(sample.X)
	ls := s.Emitters[idx].Sample(ref, core.NewVec2(remapped, sample.Y))
	if ls.PDF <= 0 || ls.Radiance.IsBlack() {
		return lights.LightSample{}, false
	}
	ls.PDF *= s.lightCDF.PDF(idx)
	return ls, true
}

// EnvRadiance returns the environment radiance seen along an escaping ray
func (s *Scene) EnvRadiance(ray core.Ray) core.Color {
	if s.env == nil {
		return core.Black
	}
	return s.env.Le(ray.Direction)
}

// EnvPDF returns the density with which SampleRandomLight produces an escaping direction
func (s *Scene) EnvPDF() float64 {
	if s.env == nil {
		return 0
	}
	return s.lightCDF.PDF(s.envIndex) * s.env.InfinitePDF()
}

// EmitterPDF returns the density with which SampleRandomLight produces the point hit on an
// emissive shape when looking from ref along wi
func (s *Scene) EmitterPDF(ref, hit *geometry.Interaction, wi core.Vec3) float64 {
	idx, ok := s.emitterIndex[hit.Shape]
	if !ok {
		return 0
	}
	return s.lightCDF.PDF(idx) * s.Emitters[idx].AreaPDF(ref, hit, wi)
}

// HasEnvironment reports whether an infinite emitter is present
func (s *Scene) HasEnvironment() bool {
	return s.env != nil
}

// Bounds returns the bounding box of all shapes
func (s *Scene) Bounds() core.BBox {
	return s.bounds
}

// Radius returns half the diagonal of the scene bounds
func (s *Scene) Radius() float64 {
	return s.radius
}

// LightSelectionPDF returns the probability of picking emitter i
func (s *Scene) LightSelectionPDF(i int) float64 {
	return s.lightCDF.PDF(i)
}
