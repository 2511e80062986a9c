package spring

import (
	"fmt"
	"math"
)

// rangeTolerance absorbs the last-bit error of x = F/k near the ends of a range.
const rangeTolerance = 1e-9

// Range is a closed interval with a default value.
type Range struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
}

func NewRange(min, max, def float64) Range {
	return Range{Min: min, Max: max, Default: def}
}

// Valid reports whether Min <= Default <= Max and every bound is finite.
func (r Range) Valid() bool {
	for _, v := range []float64{r.Min, r.Max, r.Default} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Min <= r.Max && r.Default >= r.Min && r.Default <= r.Max
}

// Contains reports whether v lies in the range, allowing for rounding error.
func (r Range) Contains(v float64) bool {
	eps := rangeTolerance * math.Max(1, math.Max(math.Abs(r.Min), math.Abs(r.Max)))
	return v >= r.Min-eps && v <= r.Max+eps
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) Length() float64 {
	return r.Max - r.Min
}

// Shift returns the range moved by d.
func (r Range) Shift(d float64) Range {
	return Range{Min: r.Min + d, Max: r.Max + d, Default: r.Default + d}
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g] @%g", r.Min, r.Max, r.Default)
}

// roundToInterval rounds v to the nearest multiple of delta.
func roundToInterval(v, delta float64) float64 {
	return math.Round(v/delta) * delta
}
