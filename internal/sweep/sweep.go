package sweep

import (
	"context"
	"fmt"

	"github.com/san-kum/springlab/internal/experiment"
)

// Axis is one swept quantity and the values it takes.
type Axis struct {
	Name   string
	Values []float64
}

// Sample is the scene state after one grid point was written.
type Sample struct {
	Params map[string]float64
	Values map[string]float64
	Err    error
}

// Grid writes every combination of axis values into a scene, outer axis
// first, and records the resulting state.
type Grid struct {
	axes []Axis
}

func NewGrid(axes ...Axis) *Grid {
	return &Grid{axes: axes}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Run resets the scene, walks the grid and resets the scene again when done.
// A write that violates a range is recorded on the sample rather than
// aborting the sweep.
func (g *Grid) Run(ctx context.Context, scene *experiment.Scene) ([]Sample, error) {
	for _, a := range g.axes {
		q, err := scene.Quantity(a.Name)
		if err != nil {
			return nil, err
		}
		if !q.Writable {
			return nil, fmt.Errorf("sweep: %s is not writable", a.Name)
		}
	}

	scene.Reset()
	defer scene.Reset()

	var samples []Sample
	err := g.runRecursive(ctx, 0, make(map[string]float64), scene, &samples)
	return samples, err
}

func (g *Grid) runRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	scene *experiment.Scene,
	samples *[]Sample,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.axes) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*samples = append(*samples, Sample{Params: params, Values: scene.Values()})
		return nil
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		current[axis.Name] = val
		if err := scene.Set(axis.Name, val); err != nil {
			params := make(map[string]float64, len(current))
			for k, v := range current {
				params[k] = v
			}
			*samples = append(*samples, Sample{Params: params, Err: err})
			continue
		}
		if err := g.runRecursive(ctx, depth+1, current, scene, samples); err != nil {
			return err
		}
	}
	delete(current, axis.Name)
	return nil
}

// Series extracts one quantity from successful samples, in sweep order.
func Series(samples []Sample, name string) []float64 {
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.Err != nil {
			continue
		}
		out = append(out, s.Values[name])
	}
	return out
}
