package system

import (
	"log/slog"

	"github.com/san-kum/springlab/internal/spring"
)

// ArmClearance is the distance between the farthest reachable spring end and
// the fixed right end of the robotic arm.
const ArmClearance = 1.0

// SingleOptions configures a Single system.
type SingleOptions struct {
	Spring spring.Options
	Logger *slog.Logger
}

// SeriesOptions configures a Series system. SpringConstantRange and
// EquilibriumLength apply to each component; AppliedForceRange applies to the
// equivalent spring and, since series springs carry the same force, to each
// component.
type SeriesOptions struct {
	Left                float64
	EquilibriumLength   float64
	SpringConstantRange spring.Range
	AppliedForceRange   spring.Range
	AppliedForceDelta   float64
	Logger              *slog.Logger
}

// ParallelOptions configures a Parallel system. SpringConstantRange applies to
// each component; AppliedForceRange applies to the equivalent spring.
type ParallelOptions struct {
	Left                float64
	EquilibriumLength   float64
	SpringConstantRange spring.Range
	AppliedForceRange   spring.Range
	AppliedForceDelta   float64
	Logger              *slog.Logger
}

func DefaultSingleOptions() SingleOptions {
	f := spring.NewRange(-100, 100, 0)
	return SingleOptions{
		Spring: spring.Options{
			Name:                "spring",
			EquilibriumLength:   1.5,
			SpringConstantRange: spring.NewRange(100, 1000, 200),
			AppliedForceRange:   &f,
			AppliedForceDelta:   1,
		},
	}
}

func DefaultSeriesOptions() SeriesOptions {
	return SeriesOptions{
		EquilibriumLength:   0.75,
		SpringConstantRange: spring.NewRange(200, 600, 200),
		AppliedForceRange:   spring.NewRange(-100, 100, 0),
		AppliedForceDelta:   1,
	}
}

func DefaultParallelOptions() ParallelOptions {
	return ParallelOptions{
		EquilibriumLength:   1.5,
		SpringConstantRange: spring.NewRange(200, 600, 200),
		AppliedForceRange:   spring.NewRange(-100, 100, 0),
		AppliedForceDelta:   1,
	}
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// seriesConstant is the constant of two springs in series.
func seriesConstant(k1, k2 float64) float64 {
	return 1 / (1/k1 + 1/k2)
}

func parallelConstant(k1, k2 float64) float64 {
	return k1 + k2
}

// combineRange applies fn to the bounds and defaults of a and b.
func combineRange(a, b spring.Range, fn func(float64, float64) float64) spring.Range {
	return spring.Range{Min: fn(a.Min, b.Min), Max: fn(a.Max, b.Max), Default: fn(a.Default, b.Default)}
}
