package renderer

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/integrator"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

// Integrator bundles everything a pass needs: the tracer, the sampler
// template every tile sampler derives from, the scene and the total number
// of passes to render.
type Integrator struct {
	Tracer  integrator.Tracer
	Sampler core.Sampler
	Scene   *scene.Scene
	Passes  int
}

// RenderTile renders one pass over a tile into a fresh block. The result
// depends only on the pass index and the tile coordinates.
func (in *Integrator) RenderTile(tile *Tile, pass int) (*Block, int) {
	camera := in.Scene.Camera
	sampler := in.Sampler.ForTile(pass, tile.X, tile.Y)
	spp := max(in.Sampler.SamplesPerPixel, 1)
	block := NewBlock(tile.Bounds)
	samples := 0

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			sampler.PrepareForPixel(x, y)
			px := block.At(x, y)
			for k := 0; k < spp; k++ {
				offset := sampler.Next2D()
				pos := core.NewVec2(float64(x)+offset.X, float64(y)+offset.Y)
				ray := camera.RayAt(pos, &sampler)
				px.AddSample(sanitize(in.Tracer.Trace(in.Scene, &sampler, ray)), 1)
				samples++
			}
		}
	}

	return block, samples
}

// sanitize replaces non-finite radiance with black so one bad sample
// cannot poison a pixel for the rest of the render.
func sanitize(c core.Color) core.Color {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Black
		}
	}
	return c
}
