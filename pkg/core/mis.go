package core

import "math"

// PowerHeuristic returns the MIS weight a²/(a²+b²) for a sample drawn with density a
// while the competing strategy has density b. An infinite a denotes a delta strategy.
func PowerHeuristic(a, b float64) float64 {
	if math.IsInf(a, 1) {
		return 1
	}
	a2 := a * a
	b2 := b * b
	if a2+b2 == 0 {
		return 0
	}
	return a2 / (a2 + b2)
}
