package renderer

import "time"

// PassStats contains statistics about one completed pass
type PassStats struct {
	Pass     int           // Pass index, starting at 0
	Tiles    int           // Number of tiles rendered
	Samples  int           // Total number of radiance samples taken
	Duration time.Duration // Wall time from submission to last accumulated tile
	TileTime time.Duration // Summed worker time across tiles
}

// SamplesPerSecond returns the pass throughput.
func (ps PassStats) SamplesPerSecond() float64 {
	if ps.Duration <= 0 {
		return 0
	}
	return float64(ps.Samples) / ps.Duration.Seconds()
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height int
	NumWorkers    int
	ResumedAt     int  // Pass count of the state the render started from
	Cancelled     bool // Whether the render stopped before all passes completed
	Passes        []PassStats
	Elapsed       time.Duration
}

// TotalSamples returns the number of samples taken across all passes
func (rs *RenderStats) TotalSamples() int {
	total := 0
	for _, p := range rs.Passes {
		total += p.Samples
	}
	return total
}

// AverageSamples returns the samples per pixel added by this render
func (rs *RenderStats) AverageSamples() float64 {
	pixels := rs.Width * rs.Height
	if pixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples()) / float64(pixels)
}
