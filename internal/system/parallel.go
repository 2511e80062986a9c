package system

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/springlab/internal/reactive"
	"github.com/san-kum/springlab/internal/spring"
)

// Parallel is two springs side by side pulled by one bar: F = F1 + F2,
// k = k1 + k2 and x = x1 = x2.
type Parallel struct {
	TopSpring        *spring.Spring
	BottomSpring     *spring.Spring
	EquivalentSpring *spring.Spring
	RoboticArm       *spring.RoboticArm

	// ComponentForce is F1 + F2, recomputed once per propagation pass.
	ComponentForce *reactive.Property[float64]

	equivalentConstant *reactive.Multilink
	guard              *reactive.Guard
	links              links
	logger             *slog.Logger
}

func NewParallel(opts ParallelOptions) (*Parallel, error) {
	if opts.EquilibriumLength <= 0 {
		return nil, fmt.Errorf("%w: parallel equilibrium length must be positive, got %g",
			reactive.ErrTopology, opts.EquilibriumLength)
	}
	force := opts.AppliedForceRange
	guard := reactive.NewGuard("parallel")

	eq, err := spring.New(spring.Options{
		Name:                "equivalentSpring",
		Left:                opts.Left,
		EquilibriumLength:   opts.EquilibriumLength,
		SpringConstantRange: combineRange(opts.SpringConstantRange, opts.SpringConstantRange, parallelConstant),
		AppliedForceRange:   &force,
		AppliedForceDelta:   opts.AppliedForceDelta,
		Pass:                guard,
	})
	if err != nil {
		return nil, err
	}
	eq.Left.Lock()

	// Components share the equivalent displacement, so they are driven by it.
	x := eq.DisplacementRange()
	newComponent := func(name string) (*spring.Spring, error) {
		return spring.New(spring.Options{
			Name:                name,
			Left:                opts.Left,
			EquilibriumLength:   opts.EquilibriumLength,
			SpringConstantRange: opts.SpringConstantRange,
			DisplacementRange:   &x,
			AppliedForceDelta:   opts.AppliedForceDelta,
			Pass:                guard,
		})
	}
	top, err := newComponent("topSpring")
	if err != nil {
		return nil, err
	}
	bottom, err := newComponent("bottomSpring")
	if err != nil {
		return nil, err
	}
	top.Left.Lock()
	bottom.Left.Lock()

	arm, err := spring.NewRoboticArm(eq.Right.Get(), eq.RightRange.Get().Max+ArmClearance)
	if err != nil {
		return nil, err
	}

	sys := &Parallel{
		TopSpring:        top,
		BottomSpring:     bottom,
		EquivalentSpring: eq,
		RoboticArm:       arm,
		guard:            guard,
		logger:           logger(opts.Logger),
	}

	// The equivalent constant has a single writer: the component constants.
	setConstant := eq.SpringConstant.Own()
	sys.equivalentConstant = reactive.Multilink2(top.SpringConstant, bottom.SpringConstant,
		func(k1, k2 float64) { setConstant(parallelConstant(k1, k2)) })
	sys.links.add(sys.equivalentConstant.Unlink)

	sys.links.subscribe(eq.Displacement, sys.onEquivalentDisplacement)
	sys.links.subscribe(eq.Right, sys.followSpring)
	sys.links.subscribe(arm.Left, sys.onArm)

	sys.ComponentForce = reactive.DeriveAfter("parallel.componentForce", sys.guard,
		[]reactive.Notifier{top.AppliedForce, bottom.AppliedForce},
		func() float64 { return top.AppliedForce.Get() + bottom.AppliedForce.Get() })
	sys.links.dispose(sys.ComponentForce)

	sys.logger.Debug("parallel system ready",
		"equivalentConstant", eq.SpringConstant.Get(),
		"arm", arm.Left.Get(),
		"armRight", arm.Right())
	return sys, nil
}

// NewParallelDefault builds a parallel system with the default ranges.
func NewParallelDefault() (*Parallel, error) {
	return NewParallel(DefaultParallelOptions())
}

func (sys *Parallel) onEquivalentDisplacement(x, _ float64) {
	sys.guard.Run(tokenDisplacement, func() {
		sys.TopSpring.Displacement.Set(x)
		sys.BottomSpring.Displacement.Set(x)
	})
}

func (sys *Parallel) followSpring(right, _ float64) {
	sys.logger.Debug("arm follows spring", "right", right, "origin", sys.guard.Origin())
	sys.guard.Run(tokenFollowArm, func() { sys.RoboticArm.Left.Set(right) })
}

func (sys *Parallel) onArm(left, _ float64) {
	if sys.guard.Active() {
		return
	}
	eq := sys.EquivalentSpring
	sys.guard.Run(tokenRoboticArm, func() {
		eq.Displacement.Set(left - eq.EquilibriumX.Get())
	})
}

func (sys *Parallel) ArmRange() spring.Range {
	return sys.EquivalentSpring.RightRange.Get()
}

func (sys *Parallel) Epoch() uint64 {
	return sys.guard.Epoch()
}

func (sys *Parallel) Reset() {
	sys.TopSpring.SpringConstant.Reset()
	sys.BottomSpring.SpringConstant.Reset()
	sys.EquivalentSpring.AppliedForce.Reset()
	// The arm may hold a position whose write was rejected downstream.
	sys.followSpring(sys.EquivalentSpring.Right.Get(), 0)
	sys.logger.Debug("parallel system reset")
}

func (sys *Parallel) Dispose() {
	sys.links.release()
	for _, s := range []*spring.Spring{sys.TopSpring, sys.BottomSpring, sys.EquivalentSpring} {
		s.Dispose()
	}
	sys.RoboticArm.Dispose()
	sys.logger.Debug("parallel system disposed")
}
