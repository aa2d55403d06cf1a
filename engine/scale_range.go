package engine

import (
	"fmt"
	"math"
)

// ScaleRange bounds the ground-truth box scales included in one result
// partition. Bounds are expressed as scales, not areas: a range of
// (32, 64) covers box areas in [32^2, 64^2). The zero value is the
// unrestricted default.
type ScaleRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Unbounded reports whether the range is the unrestricted default.
func (r ScaleRange) Unbounded() bool {
	return r.Min <= 0 && (r.Max <= 0 || math.IsInf(r.Max, 1))
}

// Contains reports whether a box area falls inside the range.
func (r ScaleRange) Contains(area float64) bool {
	if r.Unbounded() {
		return true
	}
	min := r.Min * r.Min
	max := math.Inf(1)
	if r.Max > 0 && !math.IsInf(r.Max, 1) {
		max = r.Max * r.Max
	}
	return area >= min && area < max
}

func (r ScaleRange) String() string {
	return fmt.Sprintf("(%v, %v)", r.Min, r.Max)
}
