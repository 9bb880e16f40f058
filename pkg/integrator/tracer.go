package integrator

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

// TracerKind enumerates the supported light transport estimators
type TracerKind int

const (
	// TracerSilhouette returns black on hits and white on misses
	TracerSilhouette TracerKind = iota
	// TracerNormals returns the absolute shading normal
	TracerNormals
	// TracerAO returns one unoccluded cosine probe
	TracerAO
	// TracerDirect estimates single-bounce lighting with MIS
	TracerDirect
	// TracerPath is a multi-bounce path tracer with MIS and Russian roulette
	TracerPath
)

// String returns the scene-file name of the kind
func (k TracerKind) String() string {
	switch k {
	case TracerSilhouette:
		return "silhouette"
	case TracerNormals:
		return "normals"
	case TracerAO:
		return "ao"
	case TracerDirect:
		return "direct"
	case TracerPath:
		return "path"
	default:
		return "unknown"
	}
}

// Tracer computes the radiance carried back along a camera ray
type Tracer struct {
	Kind TracerKind

	// MinDepth is the bounce after which Russian roulette may terminate a path
	MinDepth int
	// MaxDepth bounds the number of scattering events
	MaxDepth int
	// RRThreshold caps the survival probability
	RRThreshold float64

	// AORange limits the length of occlusion probes
	AORange float64
}

// NewPathTracer creates a path tracer
func NewPathTracer(minDepth, maxDepth int, rrThreshold float64) Tracer {
	return Tracer{Kind: TracerPath, MinDepth: minDepth, MaxDepth: maxDepth, RRThreshold: rrThreshold}
}

// NewAOTracer creates an ambient occlusion tracer. A non-positive range means unbounded.
func NewAOTracer(probeRange float64) Tracer {
	if probeRange <= 0 {
		probeRange = math.Inf(1)
	}
	return Tracer{Kind: TracerAO, AORange: probeRange}
}

// Trace returns the radiance estimate for a camera ray
func (t *Tracer) Trace(s *scene.Scene, sampler *core.Sampler, ray core.Ray) core.Color {
	switch t.Kind {
	case TracerSilhouette:
		return traceSilhouette(s, ray)
	case TracerNormals:
		return traceNormals(s, ray)
	case TracerAO:
		return t.traceAO(s, sampler, ray)
	case TracerDirect:
		return traceDirect(s, sampler, ray)
	case TracerPath:
		return t.tracePath(s, sampler, ray)
	default:
		return core.Black
	}
}
