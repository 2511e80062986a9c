package spring

import (
	"fmt"

	"github.com/san-kum/springlab/internal/reactive"
)

// RoboticArm grabs the free end of a spring system. Its Left end moves and
// must stay left of the fixed Right end.
type RoboticArm struct {
	Left  *reactive.Property[float64]
	right float64
}

func NewRoboticArm(left, right float64) (*RoboticArm, error) {
	if !finite(left) || !finite(right) || left >= right {
		return nil, fmt.Errorf("%w: robotic arm left %g must be less than right %g", reactive.ErrTopology, left, right)
	}
	return &RoboticArm{
		Left: reactive.NewProperty("roboticArm.left", left,
			reactive.WithValidator(finite),
			reactive.WithBounds(func(v float64) bool { return v < right })),
		right: right,
	}, nil
}

func (a *RoboticArm) Right() float64 {
	return a.right
}

func (a *RoboticArm) Reset() {
	a.Left.Reset()
}

func (a *RoboticArm) Dispose() {
	a.Left.Dispose()
}
