package experiment

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/spring"
	"github.com/san-kum/springlab/internal/system"
)

// Registry builds scenes by name.
type Registry struct {
	scenes map[string]func(*config.Config, *slog.Logger) (*Scene, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes: make(map[string]func(*config.Config, *slog.Logger) (*Scene, error)),
	}

	r.scenes[config.SceneSingle] = func(cfg *config.Config, l *slog.Logger) (*Scene, error) {
		opts := cfg.SingleOptions()
		opts.Logger = l
		sys, err := system.NewSingle(opts)
		if err != nil {
			return nil, err
		}
		return SingleScene(sys), nil
	}
	r.scenes[config.SceneSeries] = func(cfg *config.Config, l *slog.Logger) (*Scene, error) {
		opts := cfg.SeriesOptions()
		opts.Logger = l
		sys, err := system.NewSeries(opts)
		if err != nil {
			return nil, err
		}
		return SeriesScene(sys), nil
	}
	r.scenes[config.SceneParallel] = func(cfg *config.Config, l *slog.Logger) (*Scene, error) {
		opts := cfg.ParallelOptions()
		opts.Logger = l
		sys, err := system.NewParallel(opts)
		if err != nil {
			return nil, err
		}
		return ParallelScene(sys), nil
	}

	return r
}

// Build validates cfg and builds the scene it names.
func (r *Registry) Build(cfg *config.Config, l *slog.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, ok := r.scenes[cfg.Scene]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", cfg.Scene)
	}
	return fn(cfg, l)
}

func (r *Registry) ListScenes() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fixed(r spring.Range) func() spring.Range {
	return func() spring.Range { return r }
}

func span(name string, row int, s *spring.Spring) Span {
	return Span{Name: name, Row: row, Left: s.Left.Get(), Right: s.Right.Get()}
}

func springQuantities(prefix string, s *spring.Spring) []Quantity {
	return []Quantity{
		{Name: "F" + prefix, Label: "applied force " + prefix, Unit: "N", Property: s.AppliedForce, Range: fixed(s.AppliedForceRange())},
		{Name: "x" + prefix, Label: "displacement " + prefix, Unit: "m", Property: s.Displacement, Range: fixed(s.DisplacementRange())},
		{Name: "E" + prefix, Label: "energy " + prefix, Unit: "J", Property: s.Energy},
	}
}

// SingleScene exposes k, F, x and arm as writable quantities.
func SingleScene(sys *system.Single) *Scene {
	s := sys.Spring
	scene := newScene(config.SceneSingle, sys.Reset, sys.Dispose,
		Quantity{Name: "k", Label: "spring constant", Unit: "N/m", Property: s.SpringConstant, Writable: true, Range: fixed(s.SpringConstantRange())},
		Quantity{Name: "F", Label: "applied force", Unit: "N", Property: s.AppliedForce, Writable: true, Range: fixed(s.AppliedForceRange())},
		Quantity{Name: "x", Label: "displacement", Unit: "m", Property: s.Displacement, Writable: true, Range: fixed(s.DisplacementRange())},
		Quantity{Name: "arm", Label: "robotic arm", Unit: "m", Property: sys.RoboticArm.Left, Writable: true, Range: sys.ArmRange},
		Quantity{Name: "Fs", Label: "spring force", Unit: "N", Property: s.SpringForce},
		Quantity{Name: "E", Label: "energy", Unit: "J", Property: s.Energy},
		Quantity{Name: "length", Label: "length", Unit: "m", Property: s.Length},
	)
	scene.spans = func() []Span {
		return []Span{span("spring", 0, s)}
	}
	return scene
}

// SeriesScene exposes the component constants, the equivalent force and
// displacement, and the arm as writable quantities.
func SeriesScene(sys *system.Series) *Scene {
	eq := sys.EquivalentSpring
	qs := []Quantity{
		{Name: "k1", Label: "left spring constant", Unit: "N/m", Property: sys.LeftSpring.SpringConstant, Writable: true, Range: fixed(sys.LeftSpring.SpringConstantRange())},
		{Name: "k2", Label: "right spring constant", Unit: "N/m", Property: sys.RightSpring.SpringConstant, Writable: true, Range: fixed(sys.RightSpring.SpringConstantRange())},
		{Name: "F", Label: "applied force", Unit: "N", Property: eq.AppliedForce, Writable: true, Range: fixed(eq.AppliedForceRange())},
		{Name: "x", Label: "displacement", Unit: "m", Property: eq.Displacement, Writable: true, Range: fixed(eq.DisplacementRange())},
		{Name: "arm", Label: "robotic arm", Unit: "m", Property: sys.RoboticArm.Left, Writable: true, Range: sys.ArmRange},
		{Name: "k", Label: "equivalent spring constant", Unit: "N/m", Property: eq.SpringConstant},
		{Name: "E", Label: "energy", Unit: "J", Property: eq.Energy},
	}
	qs = append(qs, springQuantities("1", sys.LeftSpring)...)
	qs = append(qs, springQuantities("2", sys.RightSpring)...)
	scene := newScene(config.SceneSeries, sys.Reset, sys.Dispose, qs...)
	scene.spans = func() []Span {
		return []Span{
			span("k1", 0, sys.LeftSpring),
			span("k2", 0, sys.RightSpring),
			span("k", 1, eq),
		}
	}
	return scene
}

func ParallelScene(sys *system.Parallel) *Scene {
	eq := sys.EquivalentSpring
	qs := []Quantity{
		{Name: "k1", Label: "top spring constant", Unit: "N/m", Property: sys.TopSpring.SpringConstant, Writable: true, Range: fixed(sys.TopSpring.SpringConstantRange())},
		{Name: "k2", Label: "bottom spring constant", Unit: "N/m", Property: sys.BottomSpring.SpringConstant, Writable: true, Range: fixed(sys.BottomSpring.SpringConstantRange())},
		{Name: "F", Label: "applied force", Unit: "N", Property: eq.AppliedForce, Writable: true, Range: fixed(eq.AppliedForceRange())},
		{Name: "x", Label: "displacement", Unit: "m", Property: eq.Displacement, Writable: true, Range: fixed(eq.DisplacementRange())},
		{Name: "arm", Label: "robotic arm", Unit: "m", Property: sys.RoboticArm.Left, Writable: true, Range: sys.ArmRange},
		{Name: "k", Label: "equivalent spring constant", Unit: "N/m", Property: eq.SpringConstant},
		{Name: "E", Label: "energy", Unit: "J", Property: eq.Energy},
	}
	qs = append(qs, springQuantities("1", sys.TopSpring)...)
	qs = append(qs, springQuantities("2", sys.BottomSpring)...)
	scene := newScene(config.SceneParallel, sys.Reset, sys.Dispose, qs...)
	scene.spans = func() []Span {
		return []Span{
			span("k1", 0, sys.TopSpring),
			span("k2", 1, sys.BottomSpring),
			span("k", 2, eq),
		}
	}
	return scene
}
