package system

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springlab/internal/reactive"
	"github.com/san-kum/springlab/internal/spring"
)

var _ = Describe("Single", func() {
	It("moves the spring with the arm", func() {
		sys, err := NewSingleDefault()
		Expect(err).NotTo(HaveOccurred())
		defer sys.Dispose()

		write(func() { sys.RoboticArm.Left.Set(1.6) })

		Expect(sys.Spring.AppliedForce.Get()).To(Equal(20.0))
		Expect(sys.Spring.Displacement.Get()).To(BeNumerically("~", 0.1, tol))
		Expect(sys.RoboticArm.Left.Get()).To(BeNumerically("~", 1.6, tol))
		expectHooke(sys.Spring)
	})

	It("moves the arm with the spring", func() {
		sys, err := NewSingleDefault()
		Expect(err).NotTo(HaveOccurred())
		defer sys.Dispose()

		write(func() { sys.Spring.AppliedForce.Set(-50) })

		Expect(sys.RoboticArm.Left.Get()).To(BeNumerically("~", 1.25, tol))
		Expect(sys.ArmRange().Max).To(BeNumerically("<", sys.RoboticArm.Right()))
	})

	It("does not quantize a displacement-driven spring", func() {
		opts := DefaultSingleOptions()
		x := spring.NewRange(-1, 1, 0)
		opts.Spring.AppliedForceRange = nil
		opts.Spring.DisplacementRange = &x
		sys, err := NewSingle(opts)
		Expect(err).NotTo(HaveOccurred())
		defer sys.Dispose()

		write(func() { sys.RoboticArm.Left.Set(1.75) })

		Expect(sys.Spring.Displacement.Get()).To(Equal(0.25))
		Expect(sys.Spring.AppliedForce.Get()).To(Equal(50.0))
	})

	It("locks the wall end", func() {
		sys, err := NewSingleDefault()
		Expect(err).NotTo(HaveOccurred())
		defer sys.Dispose()

		Expect(reactive.Catch(func() { sys.Spring.Left.Set(1) })).To(MatchError(reactive.ErrReadOnly))
	})

	It("resets", func() {
		sys, err := NewSingleDefault()
		Expect(err).NotTo(HaveOccurred())
		defer sys.Dispose()

		write(func() { sys.Spring.SpringConstant.Set(500) })
		write(func() { sys.RoboticArm.Left.Set(1.7) })
		sys.Reset()

		Expect(sys.Spring.SpringConstant.Get()).To(Equal(200.0))
		Expect(sys.Spring.AppliedForce.Get()).To(Equal(0.0))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(1.5))
	})

	It("returns a rejected arm to the spring on reset", func() {
		sys, err := NewSingleDefault()
		Expect(err).NotTo(HaveOccurred())
		defer sys.Dispose()

		err = reactive.Catch(func() { sys.RoboticArm.Left.Set(2.6) })
		Expect(err).To(MatchError(reactive.ErrRangeViolation))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(2.6))
		Expect(sys.Spring.Displacement.Get()).To(Equal(0.0))

		sys.Reset()

		Expect(sys.RoboticArm.Left.Get()).To(Equal(1.5))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(sys.Spring.Right.Get()))
	})
})
