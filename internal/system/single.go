package system

import (
	"log/slog"

	"github.com/san-kum/springlab/internal/reactive"
	"github.com/san-kum/springlab/internal/spring"
)

// Guard tokens shared by the systems.
const (
	tokenRoboticArm   reactive.Token = "roboticArm"
	tokenFollowArm    reactive.Token = "followArm"
	tokenAppliedForce reactive.Token = "appliedForce"
	tokenDisplacement reactive.Token = "displacement"
)

// Single is one spring attached to a wall on its left and held by a robotic
// arm on its right.
type Single struct {
	Spring     *spring.Spring
	RoboticArm *spring.RoboticArm

	guard  *reactive.Guard
	links  links
	logger *slog.Logger
}

// NewSingle builds the system. The spring's left end is locked to the wall.
func NewSingle(opts SingleOptions) (*Single, error) {
	guard := reactive.NewGuard("single")
	opts.Spring.Pass = guard
	s, err := spring.New(opts.Spring)
	if err != nil {
		return nil, err
	}
	s.Left.Lock()

	arm, err := spring.NewRoboticArm(s.Right.Get(), s.RightRange.Get().Max+ArmClearance)
	if err != nil {
		return nil, err
	}

	sys := &Single{
		Spring:     s,
		RoboticArm: arm,
		guard:      guard,
		logger:     logger(opts.Logger),
	}
	sys.links.subscribe(s.Right, sys.followSpring)
	sys.links.subscribe(arm.Left, sys.onArm)

	sys.logger.Debug("single system ready",
		"mode", s.Mode(),
		"springConstant", s.SpringConstant.Get(),
		"arm", arm.Left.Get())
	return sys, nil
}

// NewSingleDefault builds a force-driven single spring system.
func NewSingleDefault() (*Single, error) {
	return NewSingle(DefaultSingleOptions())
}

func (sys *Single) followSpring(right, _ float64) {
	sys.logger.Debug("arm follows spring", "right", right, "origin", sys.guard.Origin())
	sys.guard.Run(tokenFollowArm, func() { sys.RoboticArm.Left.Set(right) })
}

func (sys *Single) onArm(left, _ float64) {
	if sys.guard.Active() {
		return
	}
	sys.guard.Run(tokenRoboticArm, func() {
		sys.Spring.Displacement.Set(left - sys.Spring.EquilibriumX.Get())
	})
}

// ArmRange is the span of arm positions reachable by the spring.
func (sys *Single) ArmRange() spring.Range {
	return sys.Spring.RightRange.Get()
}

// Epoch counts the propagation passes started by the arm loop.
func (sys *Single) Epoch() uint64 {
	return sys.guard.Epoch()
}

func (sys *Single) Reset() {
	sys.Spring.Reset()
	// The arm may hold a position whose write was rejected downstream.
	sys.followSpring(sys.Spring.Right.Get(), 0)
	sys.logger.Debug("single system reset")
}

func (sys *Single) Dispose() {
	sys.links.release()
	sys.Spring.Dispose()
	sys.RoboticArm.Dispose()
	sys.logger.Debug("single system disposed")
}
