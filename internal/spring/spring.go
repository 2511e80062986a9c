package spring

import (
	"fmt"
	"math"

	"github.com/san-kum/springlab/internal/reactive"
)

// Mode selects which quantity a spring holds fixed when its constant changes.
type Mode int

const (
	ForceDriven Mode = iota
	DisplacementDriven
)

func (m Mode) String() string {
	if m == DisplacementDriven {
		return "displacement-driven"
	}
	return "force-driven"
}

// Guard tokens for the writes that start a propagation pass inside a spring.
const (
	tokenAppliedForce   reactive.Token = "appliedForce"
	tokenDisplacement   reactive.Token = "displacement"
	tokenSpringConstant reactive.Token = "springConstant"
)

// Options configures a Spring. Exactly one of AppliedForceRange and
// DisplacementRange must be set.
type Options struct {
	Name                string
	Left                float64
	EquilibriumLength   float64
	SpringConstantRange Range
	AppliedForceRange   *Range
	DisplacementRange   *Range
	AppliedForceDelta   float64

	// Pass is the guard of an enclosing system. Position quantities that
	// depend on several primaries wait for its passes to settle.
	Pass *reactive.Guard
}

// Spring is an ideal spring with its left end at Left and its free end at Right.
type Spring struct {
	name              string
	mode              Mode
	equilibriumLength float64
	appliedForceDelta float64

	springConstantRange Range
	appliedForceRange   Range
	displacementRange   Range

	// Primary quantities.
	AppliedForce   *reactive.Property[float64]
	SpringConstant *reactive.Property[float64]
	Displacement   *reactive.Property[float64]
	Left           *reactive.Property[float64]

	// Derived quantities.
	SpringForce  *reactive.Property[float64]
	EquilibriumX *reactive.Property[float64]
	Right        *reactive.Property[float64]
	RightRange   *reactive.Property[Range]
	Length       *reactive.Property[float64]
	Energy       *reactive.Property[float64]

	guard    *reactive.Guard
	handlers [3]reactive.ListenerID
	disposed bool
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func topologyError(name, format string, args ...any) error {
	return fmt.Errorf("%w: spring %s: %s", reactive.ErrTopology, name, fmt.Sprintf(format, args...))
}

func (o Options) validate() error {
	switch {
	case o.EquilibriumLength <= 0 || !finite(o.EquilibriumLength):
		return topologyError(o.Name, "equilibrium length must be positive, got %g", o.EquilibriumLength)
	case o.AppliedForceDelta <= 0 || !finite(o.AppliedForceDelta):
		return topologyError(o.Name, "applied force delta must be positive, got %g", o.AppliedForceDelta)
	case !finite(o.Left):
		return topologyError(o.Name, "left must be finite, got %g", o.Left)
	case !o.SpringConstantRange.Valid() || o.SpringConstantRange.Min <= 0:
		return topologyError(o.Name, "spring constant range %v must be valid and positive", o.SpringConstantRange)
	case (o.AppliedForceRange == nil) == (o.DisplacementRange == nil):
		return topologyError(o.Name, "exactly one of applied force range and displacement range is required")
	case o.AppliedForceRange != nil && !o.AppliedForceRange.Valid():
		return topologyError(o.Name, "invalid applied force range %v", *o.AppliedForceRange)
	case o.DisplacementRange != nil && !o.DisplacementRange.Valid():
		return topologyError(o.Name, "invalid displacement range %v", *o.DisplacementRange)
	}
	return nil
}

// New creates a spring. It returns an error wrapping reactive.ErrTopology when
// the options are inconsistent.
func New(opts Options) (*Spring, error) {
	if opts.Name == "" {
		opts.Name = "spring"
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	k := opts.SpringConstantRange
	s := &Spring{
		name:                opts.Name,
		equilibriumLength:   opts.EquilibriumLength,
		appliedForceDelta:   opts.AppliedForceDelta,
		springConstantRange: k,
		guard:               reactive.NewGuard(opts.Name),
	}

	// The derived range uses the softest spring for displacement and the
	// stiffest for force, so it covers every reachable state.
	if opts.AppliedForceRange != nil {
		f := *opts.AppliedForceRange
		s.mode = ForceDriven
		s.appliedForceRange = f
		s.displacementRange = Range{Min: f.Min / k.Min, Max: f.Max / k.Min, Default: f.Default / k.Default}
	} else {
		x := *opts.DisplacementRange
		s.mode = DisplacementDriven
		s.displacementRange = x
		s.appliedForceRange = Range{Min: x.Min * k.Max, Max: x.Max * k.Max, Default: k.Default * x.Default}
	}

	if opts.EquilibriumLength+s.displacementRange.Min <= 0 {
		return nil, topologyError(opts.Name, "compressed length %g must stay positive",
			opts.EquilibriumLength+s.displacementRange.Min)
	}

	s.AppliedForce = reactive.NewProperty(opts.Name+".appliedForce", s.appliedForceRange.Default,
		reactive.WithValidator(finite),
		reactive.WithBounds(s.appliedForceRange.Contains))
	s.SpringConstant = reactive.NewProperty(opts.Name+".springConstant", k.Default,
		reactive.WithValidator(func(v float64) bool { return finite(v) && v > 0 }),
		reactive.WithBounds(k.Contains))
	s.Displacement = reactive.NewProperty(opts.Name+".displacement", s.displacementRange.Default,
		reactive.WithValidator(finite),
		reactive.WithBounds(s.displacementRange.Contains))
	s.Left = reactive.NewProperty(opts.Name+".left", opts.Left, reactive.WithValidator(finite))

	// Handlers go first so derived quantities only see settled primaries.
	s.handlers[0] = s.AppliedForce.Subscribe(s.onAppliedForce)
	s.handlers[1] = s.SpringConstant.Subscribe(s.onSpringConstant)
	s.handlers[2] = s.Displacement.Subscribe(s.onDisplacement)

	s.SpringForce = reactive.Derive1(opts.Name+".springForce", s.AppliedForce,
		func(f float64) float64 { return -f })
	s.EquilibriumX = reactive.Derive1(opts.Name+".equilibriumX", s.Left,
		func(left float64) float64 { return left + s.equilibriumLength })
	s.Right = reactive.DeriveAfter(opts.Name+".right", opts.Pass,
		[]reactive.Notifier{s.EquilibriumX, s.Displacement},
		func() float64 { return s.EquilibriumX.Get() + s.Displacement.Get() },
		reactive.WithBounds(func(right float64) bool { return right > s.Left.Get() }))
	s.RightRange = reactive.DeriveAfter(opts.Name+".rightRange", opts.Pass,
		[]reactive.Notifier{s.EquilibriumX},
		func() Range { return s.displacementRange.Shift(s.EquilibriumX.Get()) })
	s.Length = reactive.DeriveAfter(opts.Name+".length", opts.Pass,
		[]reactive.Notifier{s.Left, s.Right},
		func() float64 { return math.Abs(s.Right.Get() - s.Left.Get()) })
	s.Energy = reactive.Derive2(opts.Name+".energy", s.SpringConstant, s.Displacement,
		func(k, x float64) float64 { return k * x * x / 2 })

	return s, nil
}

// onAppliedForce keeps x = F/k for writes made outside a spring pass.
func (s *Spring) onAppliedForce(f, _ float64) {
	if s.guard.Active() {
		return
	}
	s.guard.Run(tokenAppliedForce, func() {
		s.Displacement.Set(f / s.SpringConstant.Get())
	})
}

func (s *Spring) onSpringConstant(k, _ float64) {
	if s.guard.Active() {
		return
	}
	s.guard.Run(tokenSpringConstant, func() {
		if s.mode == ForceDriven {
			s.Displacement.Set(s.AppliedForce.Get() / k)
		} else {
			s.AppliedForce.Set(k * s.Displacement.Get())
		}
	})
}

// onDisplacement derives F from x. A force-driven spring only exposes
// multiples of its applied-force delta, so x is snapped to the quantized F.
func (s *Spring) onDisplacement(x, _ float64) {
	if s.guard.Active() {
		return
	}
	s.guard.Run(tokenDisplacement, func() {
		k := s.SpringConstant.Get()
		if s.mode == DisplacementDriven {
			s.AppliedForce.Set(k * x)
			return
		}
		// Round first, then clamp: the rounded value may overshoot the range.
		f := s.appliedForceRange.Clamp(roundToInterval(k*x, s.appliedForceDelta))
		s.AppliedForce.Set(f)
		s.Displacement.Set(f / k)
	})
}

func (s *Spring) Name() string               { return s.name }
func (s *Spring) Mode() Mode                 { return s.mode }
func (s *Spring) EquilibriumLength() float64 { return s.equilibriumLength }
func (s *Spring) AppliedForceDelta() float64 { return s.appliedForceDelta }
func (s *Spring) SpringConstantRange() Range { return s.springConstantRange }
func (s *Spring) AppliedForceRange() Range   { return s.appliedForceRange }
func (s *Spring) DisplacementRange() Range   { return s.displacementRange }
func (s *Spring) Epoch() uint64              { return s.guard.Epoch() }

// Reset restores the construction-time state. The quantity held fixed by the
// spring's mode is reset last so the other one is recomputed from it.
func (s *Spring) Reset() {
	s.Left.Reset()
	s.SpringConstant.Reset()
	if s.mode == ForceDriven {
		s.AppliedForce.Reset()
	} else {
		s.Displacement.Reset()
	}
}

// Dispose releases every internal subscription. It is safe to call twice.
func (s *Spring) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, p := range []*reactive.Property[float64]{s.SpringForce, s.EquilibriumX, s.Right, s.Length, s.Energy} {
		p.Dispose()
	}
	s.RightRange.Dispose()
	s.AppliedForce.Unsubscribe(s.handlers[0])
	s.SpringConstant.Unsubscribe(s.handlers[1])
	s.Displacement.Unsubscribe(s.handlers[2])
}
