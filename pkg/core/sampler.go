package core

// SamplerKind selects the sample generation strategy
type SamplerKind int

const (
	// SamplerIndependent draws uncorrelated uniform samples
	SamplerIndependent SamplerKind = iota
)

// String returns the scene-file name of the kind
func (k SamplerKind) String() string {
	switch k {
	case SamplerIndependent:
		return "independent"
	default:
		return "unknown"
	}
}

// Sampler produces reproducible uniform samples. A template sampler is specialized per
// (pass, tile) with ForTile and reseeded per pixel with PrepareForPixel, so every stream is a
// pure function of those indices.
type Sampler struct {
	Kind            SamplerKind
	SamplesPerPixel int

	seed uint64
	rng  PRNG
}

// NewSampler creates a template sampler
func NewSampler(kind SamplerKind, samplesPerPixel int) Sampler {
	if samplesPerPixel < 1 {
		samplesPerPixel = 1
	}
	return Sampler{Kind: kind, SamplesPerPixel: samplesPerPixel}
}

// TileSeed packs pass and tile coordinates into one word: pass in the high bits, then tile y, then tile x
func TileSeed(pass, tileX, tileY int) uint64 {
	const mask21 = 1<<21 - 1
	return uint64(pass)<<42 | (uint64(tileY)&mask21)<<21 | uint64(tileX)&mask21
}

// ForTile returns a copy of the sampler seeded for one tile of one pass
func (s Sampler) ForTile(pass, tileX, tileY int) Sampler {
	s.seed = TileSeed(pass, tileX, tileY)
	s.rng = NewPRNG(s.seed)
	return s
}

// PrepareForPixel reseeds the stream for the pixel at (x, y)
func (s *Sampler) PrepareForPixel(x, y int) {
	pixel := uint64(uint32(y))<<32 | uint64(uint32(x))
	s.rng = NewPRNG(Hash64(s.seed, pixel))
}

// Next1D returns a uniform sample in [0,1)
func (s *Sampler) Next1D() float64 {
	return s.rng.Float64()
}

// Next2D returns a uniform sample in [0,1)²
func (s *Sampler) Next2D() Vec2 {
	x := s.rng.Float64()
	y := s.rng.Float64()
	return NewVec2(x, y)
}
