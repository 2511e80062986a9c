package system

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/springlab/internal/reactive"
	"github.com/san-kum/springlab/internal/spring"
)

// Series is two springs joined end to end: F = F1 = F2, 1/k = 1/k1 + 1/k2 and
// x = x1 + x2.
type Series struct {
	LeftSpring       *spring.Spring
	RightSpring      *spring.Spring
	EquivalentSpring *spring.Spring
	RoboticArm       *spring.RoboticArm

	// ComponentDisplacement is x1 + x2, recomputed once per arm pass.
	ComponentDisplacement *reactive.Property[float64]

	equivalentConstant *reactive.Multilink
	guard              *reactive.Guard
	links              links
	logger             *slog.Logger
}

func NewSeries(opts SeriesOptions) (*Series, error) {
	if opts.EquilibriumLength <= 0 {
		return nil, fmt.Errorf("%w: series equilibrium length must be positive, got %g",
			reactive.ErrTopology, opts.EquilibriumLength)
	}
	force := opts.AppliedForceRange
	guard := reactive.NewGuard("series")

	left, err := spring.New(spring.Options{
		Name:                "leftSpring",
		Left:                opts.Left,
		EquilibriumLength:   opts.EquilibriumLength,
		SpringConstantRange: opts.SpringConstantRange,
		AppliedForceRange:   &force,
		AppliedForceDelta:   opts.AppliedForceDelta,
		Pass:                guard,
	})
	if err != nil {
		return nil, err
	}
	right, err := spring.New(spring.Options{
		Name:                "rightSpring",
		Left:                left.Right.Get(),
		EquilibriumLength:   opts.EquilibriumLength,
		SpringConstantRange: opts.SpringConstantRange,
		AppliedForceRange:   &force,
		AppliedForceDelta:   opts.AppliedForceDelta,
		Pass:                guard,
	})
	if err != nil {
		return nil, err
	}
	eq, err := spring.New(spring.Options{
		Name:                "equivalentSpring",
		Left:                opts.Left,
		EquilibriumLength:   2 * opts.EquilibriumLength,
		SpringConstantRange: combineRange(opts.SpringConstantRange, opts.SpringConstantRange, seriesConstant),
		AppliedForceRange:   &force,
		AppliedForceDelta:   opts.AppliedForceDelta,
		Pass:                guard,
	})
	if err != nil {
		return nil, err
	}
	left.Left.Lock()
	eq.Left.Lock()

	arm, err := spring.NewRoboticArm(right.Right.Get(), eq.RightRange.Get().Max+ArmClearance)
	if err != nil {
		return nil, err
	}

	sys := &Series{
		LeftSpring:       left,
		RightSpring:      right,
		EquivalentSpring: eq,
		RoboticArm:       arm,
		guard:            guard,
		logger:           logger(opts.Logger),
	}

	// The equivalent constant has a single writer: the component constants.
	setConstant := eq.SpringConstant.Own()
	sys.equivalentConstant = reactive.Multilink2(left.SpringConstant, right.SpringConstant,
		func(k1, k2 float64) { setConstant(seriesConstant(k1, k2)) })
	sys.links.add(sys.equivalentConstant.Unlink)

	sys.links.subscribe(eq.AppliedForce, sys.onEquivalentForce)
	sys.links.subscribe(left.Right, func(x, _ float64) {
		right.Left.Set(x)
	})
	sys.links.subscribe(right.Right, sys.followSpring)
	sys.links.subscribe(arm.Left, sys.onArm)

	sys.ComponentDisplacement = reactive.DeriveAfter("series.componentDisplacement", sys.guard,
		[]reactive.Notifier{left.Displacement, right.Displacement},
		func() float64 { return left.Displacement.Get() + right.Displacement.Get() })
	sys.links.dispose(sys.ComponentDisplacement)

	sys.logger.Debug("series system ready",
		"equivalentConstant", eq.SpringConstant.Get(),
		"arm", arm.Left.Get(),
		"armRight", arm.Right())
	return sys, nil
}

// NewSeriesDefault builds a series system with the default ranges.
func NewSeriesDefault() (*Series, error) {
	return NewSeries(DefaultSeriesOptions())
}

func (sys *Series) onEquivalentForce(f, _ float64) {
	sys.guard.Run(tokenAppliedForce, func() {
		sys.LeftSpring.AppliedForce.Set(f)
		sys.RightSpring.AppliedForce.Set(f)
	})
}

func (sys *Series) followSpring(right, _ float64) {
	sys.logger.Debug("arm follows spring", "right", right, "origin", sys.guard.Origin())
	sys.guard.Run(tokenFollowArm, func() { sys.RoboticArm.Left.Set(right) })
}

func (sys *Series) onArm(left, _ float64) {
	if sys.guard.Active() {
		return
	}
	eq := sys.EquivalentSpring
	sys.guard.Run(tokenRoboticArm, func() {
		eq.Displacement.Set(left - eq.EquilibriumX.Get())
	})
}

func (sys *Series) ArmRange() spring.Range {
	return sys.EquivalentSpring.RightRange.Get()
}

func (sys *Series) Epoch() uint64 {
	return sys.guard.Epoch()
}

// Reset restores the component constants before the equivalent force, so the
// equivalent constant is settled when the force propagates.
func (sys *Series) Reset() {
	sys.LeftSpring.SpringConstant.Reset()
	sys.RightSpring.SpringConstant.Reset()
	sys.EquivalentSpring.AppliedForce.Reset()
	// The arm may hold a position whose write was rejected downstream.
	sys.followSpring(sys.RightSpring.Right.Get(), 0)
	sys.logger.Debug("series system reset")
}

func (sys *Series) Dispose() {
	sys.links.release()
	for _, s := range []*spring.Spring{sys.LeftSpring, sys.RightSpring, sys.EquivalentSpring} {
		s.Dispose()
	}
	sys.RoboticArm.Dispose()
	sys.logger.Debug("series system disposed")
}
