package system

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springlab/internal/reactive"
)

var _ = Describe("Series", func() {
	var sys *Series

	BeforeEach(func() {
		var err error
		sys, err = NewSeriesDefault()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		sys.Dispose()
	})

	expectInvariants := func() {
		GinkgoHelper()
		l, r, eq := sys.LeftSpring, sys.RightSpring, sys.EquivalentSpring
		Expect(l.AppliedForce.Get()).To(Equal(eq.AppliedForce.Get()))
		Expect(r.AppliedForce.Get()).To(Equal(eq.AppliedForce.Get()))
		Expect(eq.SpringConstant.Get()).To(BeNumerically("~",
			1/(1/l.SpringConstant.Get()+1/r.SpringConstant.Get()), tol))
		Expect(eq.Displacement.Get()).To(BeNumerically("~", l.Displacement.Get()+r.Displacement.Get(), tol))
		Expect(sys.ComponentDisplacement.Get()).To(BeNumerically("~", eq.Displacement.Get(), tol))
		Expect(r.Left.Get()).To(Equal(l.Right.Get()))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(r.Right.Get()))
		Expect(eq.Right.Get()).To(BeNumerically("~", r.Right.Get(), tol))
		expectHooke(l, r, eq)
	}

	It("starts consistent", func() {
		Expect(sys.EquivalentSpring.SpringConstant.Get()).To(Equal(100.0))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(1.5))
		Expect(sys.RoboticArm.Right()).To(Equal(3.5))
		expectInvariants()
	})

	DescribeTable("keeps series invariants",
		func(writes ...func(*Series)) {
			for _, w := range writes {
				write(func() { w(sys) })
				expectInvariants()
			}
		},
		Entry("equivalent force", func(s *Series) { s.EquivalentSpring.AppliedForce.Set(40) }),
		Entry("left constant", func(s *Series) { s.EquivalentSpring.AppliedForce.Set(-60) },
			func(s *Series) { s.LeftSpring.SpringConstant.Set(300) }),
		Entry("right constant", func(s *Series) { s.RightSpring.SpringConstant.Set(600) },
			func(s *Series) { s.EquivalentSpring.AppliedForce.Set(100) }),
		Entry("equivalent displacement", func(s *Series) { s.EquivalentSpring.Displacement.Set(0.4137) }),
		Entry("robotic arm", func(s *Series) { s.RoboticArm.Left.Set(1.2) },
			func(s *Series) { s.LeftSpring.SpringConstant.Set(450) },
			func(s *Series) { s.RoboticArm.Left.Set(2.1) }),
	)

	It("holds the force when a component constant changes", func() {
		write(func() { sys.EquivalentSpring.AppliedForce.Set(60) })
		write(func() { sys.LeftSpring.SpringConstant.Set(300) })

		Expect(sys.EquivalentSpring.AppliedForce.Get()).To(Equal(60.0))
		Expect(sys.EquivalentSpring.SpringConstant.Get()).To(BeNumerically("~", 120, tol))
		Expect(sys.EquivalentSpring.Displacement.Get()).To(BeNumerically("~", 0.5, tol))
		Expect(sys.LeftSpring.Displacement.Get()).To(BeNumerically("~", 0.2, tol))
		Expect(sys.RightSpring.Displacement.Get()).To(BeNumerically("~", 0.3, tol))
	})

	It("snaps the arm to the quantized force", func() {
		write(func() { sys.RoboticArm.Left.Set(1.7523) })

		Expect(sys.EquivalentSpring.AppliedForce.Get()).To(Equal(25.0))
		Expect(sys.RoboticArm.Left.Get()).To(BeNumerically("~", 1.75, tol))
		expectInvariants()
	})

	It("notifies every dependent quantity once per arm move", func() {
		c := counter{}
		l, r, eq := sys.LeftSpring, sys.RightSpring, sys.EquivalentSpring
		c.watch("arm", sys.RoboticArm.Left)
		c.watch("eq.F", eq.AppliedForce)
		c.watch("eq.x", eq.Displacement)
		c.watch("eq.right", eq.Right)
		c.watch("eq.energy", eq.Energy)
		c.watch("left.x", l.Displacement)
		c.watch("left.right", l.Right)
		c.watch("left.length", l.Length)
		c.watch("right.left", r.Left)
		c.watch("right.x", r.Displacement)
		c.watch("right.right", r.Right)
		c.watch("right.length", r.Length)
		c.watch("components.x", sys.ComponentDisplacement)
		epoch := sys.Epoch()

		write(func() { sys.RoboticArm.Left.Set(1.75) })

		for name, n := range c {
			Expect(n).To(Equal(1), name)
		}
		Expect(c).To(HaveLen(13))
		Expect(sys.Epoch()).To(Equal(epoch + 1))
		expectInvariants()
	})

	It("rejects writes to the equivalent anchor", func() {
		write(func() { sys.EquivalentSpring.AppliedForce.Set(30) })
		before := primaries(sys.LeftSpring, sys.RightSpring, sys.EquivalentSpring)
		arm := sys.RoboticArm.Left.Get()

		err := reactive.Catch(func() { sys.EquivalentSpring.Left.Set(0.5) })
		Expect(err).To(MatchError(reactive.ErrReadOnly))
		err = reactive.Catch(func() { sys.EquivalentSpring.EquilibriumX.Set(2) })
		Expect(err).To(MatchError(reactive.ErrReadOnly))

		Expect(primaries(sys.LeftSpring, sys.RightSpring, sys.EquivalentSpring)).To(Equal(before))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(arm))
	})

	It("fails fast on out of range force", func() {
		err := reactive.Catch(func() { sys.EquivalentSpring.AppliedForce.Set(150) })
		Expect(err).To(MatchError(reactive.ErrRangeViolation))
	})

	It("restores the construction state on reset", func() {
		initial := primaries(sys.LeftSpring, sys.RightSpring, sys.EquivalentSpring)
		arm := sys.RoboticArm.Left.Get()

		write(func() { sys.EquivalentSpring.AppliedForce.Set(40) })
		write(func() { sys.LeftSpring.SpringConstant.Set(300) })
		write(func() { sys.RightSpring.SpringConstant.Set(500) })
		write(func() { sys.RoboticArm.Left.Set(1.9) })

		sys.Reset()

		Expect(primaries(sys.LeftSpring, sys.RightSpring, sys.EquivalentSpring)).To(Equal(initial))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(arm))
		expectInvariants()
	})

	It("returns a rejected arm to the spring on reset", func() {
		err := reactive.Catch(func() { sys.RoboticArm.Left.Set(3.0) })
		Expect(err).To(MatchError(reactive.ErrRangeViolation))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(3.0))

		sys.Reset()

		Expect(sys.RoboticArm.Left.Get()).To(Equal(1.5))
		expectInvariants()
	})

	It("keeps the equivalent constant internal", func() {
		err := reactive.Catch(func() { sys.EquivalentSpring.SpringConstant.Set(150) })
		Expect(err).To(MatchError(reactive.ErrReadOnly))
		Expect(sys.EquivalentSpring.SpringConstant.Get()).To(Equal(100.0))

		write(func() { sys.LeftSpring.SpringConstant.Set(300) })
		Expect(sys.EquivalentSpring.SpringConstant.Get()).To(BeNumerically("~", 120, tol))
		expectInvariants()
	})

	It("releases its listeners on dispose", func() {
		sys.Dispose()

		Expect(sys.RoboticArm.Left.Listeners()).To(BeZero())
		Expect(sys.EquivalentSpring.AppliedForce.Listeners()).To(BeZero())
		Expect(sys.LeftSpring.SpringConstant.Listeners()).To(BeZero())
		Expect(sys.LeftSpring.Right.Listeners()).To(BeZero())
	})
})

var _ = Describe("NewSeries", func() {
	It("rejects a non-positive equilibrium length", func() {
		opts := DefaultSeriesOptions()
		opts.EquilibriumLength = 0
		_, err := NewSeries(opts)
		Expect(err).To(MatchError(reactive.ErrTopology))
	})
})
