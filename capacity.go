package hsf

import "math"

const (
	// DefaultBase is the growth base used when fill factor alone is supplied.
	DefaultBase = 1.1
	// DefaultTopSize is the target size of level 0 at fill factor 1.0.
	DefaultTopSize = 256
)

// Capacity is a double-exponential level-size policy:
//
//	cap(level) = pow(base, pow(base, level)) * scale
//	scale      = topSize * fillFactor / base
//
// A forest is built from two Capacity instances, minCapacity and
// maxCapacity, with maxCapacity's FillFactor greater than minCapacity's;
// together they define the [min,max] band a level's size should rest
// within (see the package documentation).
type Capacity struct {
	Base       float64
	FillFactor float64
	TopSize    int
}

// NewCapacity builds a [Capacity] with the package defaults for Base and
// TopSize and the given fill factor.
func NewCapacity(fillFactor float64) Capacity {
	return Capacity{Base: DefaultBase, FillFactor: fillFactor, TopSize: DefaultTopSize}
}

// At returns the level-0-relative capacity of level, truncated to an
// integer and clamped against overflow for very deep levels.
func (c Capacity) At(level int) int {
	scale := float64(c.TopSize) * c.FillFactor / c.Base
	v := math.Pow(c.Base, math.Pow(c.Base, float64(level))) * scale
	if v > float64(math.MaxInt32) || math.IsInf(v, 1) {
		return math.MaxInt32
	}
	return int(v)
}
