package core

import "math"

// Epsilon is the smallest ray parameter considered a valid hit
const Epsilon = 1e-4

// Interval is a closed scalar range [Min, Max]. It is empty when Min > Max.
type Interval struct {
	Min, Max float64
}

// EmptyInterval returns the identity element of Union
func EmptyInterval() Interval {
	return Interval{Min: math.Inf(1), Max: math.Inf(-1)}
}

// NewInterval creates an interval spanning a and b in either order
func NewInterval(a, b float64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Min: a, Max: b}
}

// IsEmpty reports whether the interval contains no values
func (i Interval) IsEmpty() bool {
	return i.Min > i.Max
}

// Contains reports whether t lies inside the interval
func (i Interval) Contains(t float64) bool {
	return t >= i.Min && t <= i.Max
}

// Extent returns the length of the interval, or 0 when empty
func (i Interval) Extent() float64 {
	if i.IsEmpty() {
		return 0
	}
	return i.Max - i.Min
}

// Center returns the midpoint of the interval
func (i Interval) Center() float64 {
	return 0.5 * (i.Min + i.Max)
}

// Union returns the smallest interval containing both
func (i Interval) Union(other Interval) Interval {
	return Interval{Min: min(i.Min, other.Min), Max: max(i.Max, other.Max)}
}

// Expand returns the smallest interval containing i and t
func (i Interval) Expand(t float64) Interval {
	return Interval{Min: min(i.Min, t), Max: max(i.Max, t)}
}

// Overlap returns the intersection of two intervals
func (i Interval) Overlap(other Interval) Interval {
	return Interval{Min: max(i.Min, other.Min), Max: min(i.Max, other.Max)}
}

// ContainsInterval reports whether other is a subset of i. The empty interval is a subset of everything.
func (i Interval) ContainsInterval(other Interval) bool {
	return other.IsEmpty() || (other.Min >= i.Min && other.Max <= i.Max)
}
