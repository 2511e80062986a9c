package system

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springlab/internal/reactive"
	"github.com/san-kum/springlab/internal/spring"
)

var _ = Describe("Parallel", func() {
	var sys *Parallel

	BeforeEach(func() {
		var err error
		sys, err = NewParallelDefault()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		sys.Dispose()
	})

	expectInvariants := func() {
		GinkgoHelper()
		t, b, eq := sys.TopSpring, sys.BottomSpring, sys.EquivalentSpring
		Expect(eq.AppliedForce.Get()).To(BeNumerically("~", t.AppliedForce.Get()+b.AppliedForce.Get(), tol))
		Expect(sys.ComponentForce.Get()).To(BeNumerically("~", eq.AppliedForce.Get(), tol))
		Expect(eq.SpringConstant.Get()).To(Equal(t.SpringConstant.Get() + b.SpringConstant.Get()))
		Expect(t.Displacement.Get()).To(Equal(eq.Displacement.Get()))
		Expect(b.Displacement.Get()).To(Equal(eq.Displacement.Get()))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(eq.Right.Get()))
		expectHooke(t, b, eq)
	}

	It("builds displacement-driven components", func() {
		Expect(sys.TopSpring.Mode()).To(Equal(spring.DisplacementDriven))
		Expect(sys.EquivalentSpring.Mode()).To(Equal(spring.ForceDriven))
		Expect(sys.EquivalentSpring.SpringConstant.Get()).To(Equal(400.0))
		Expect(sys.TopSpring.DisplacementRange()).To(Equal(sys.EquivalentSpring.DisplacementRange()))
		expectInvariants()
	})

	DescribeTable("keeps parallel invariants",
		func(writes ...func(*Parallel)) {
			for _, w := range writes {
				write(func() { w(sys) })
				expectInvariants()
			}
		},
		Entry("equivalent force", func(p *Parallel) { p.EquivalentSpring.AppliedForce.Set(40) }),
		Entry("top constant", func(p *Parallel) { p.EquivalentSpring.AppliedForce.Set(-80) },
			func(p *Parallel) { p.TopSpring.SpringConstant.Set(550) }),
		Entry("bottom constant", func(p *Parallel) { p.BottomSpring.SpringConstant.Set(330) },
			func(p *Parallel) { p.EquivalentSpring.AppliedForce.Set(100) }),
		Entry("robotic arm", func(p *Parallel) { p.RoboticArm.Left.Set(1.37) },
			func(p *Parallel) { p.TopSpring.SpringConstant.Set(600) },
			func(p *Parallel) { p.RoboticArm.Left.Set(1.7) }),
	)

	It("holds the force when a component constant changes", func() {
		write(func() { sys.EquivalentSpring.AppliedForce.Set(50) })
		write(func() { sys.TopSpring.SpringConstant.Set(300) })

		Expect(sys.EquivalentSpring.AppliedForce.Get()).To(Equal(50.0))
		Expect(sys.EquivalentSpring.Displacement.Get()).To(BeNumerically("~", 0.1, tol))
		Expect(sys.TopSpring.AppliedForce.Get()).To(BeNumerically("~", 30, tol))
		Expect(sys.BottomSpring.AppliedForce.Get()).To(BeNumerically("~", 20, tol))
	})

	It("notifies every dependent quantity once per arm move", func() {
		c := counter{}
		t, b, eq := sys.TopSpring, sys.BottomSpring, sys.EquivalentSpring
		c.watch("arm", sys.RoboticArm.Left)
		c.watch("eq.F", eq.AppliedForce)
		c.watch("eq.x", eq.Displacement)
		c.watch("eq.right", eq.Right)
		c.watch("top.x", t.Displacement)
		c.watch("top.F", t.AppliedForce)
		c.watch("top.right", t.Right)
		c.watch("bottom.x", b.Displacement)
		c.watch("bottom.F", b.AppliedForce)
		c.watch("bottom.energy", b.Energy)
		c.watch("components.F", sys.ComponentForce)

		write(func() { sys.RoboticArm.Left.Set(1.625) })

		for name, n := range c {
			Expect(n).To(Equal(1), name)
		}
		Expect(eq.AppliedForce.Get()).To(Equal(50.0))
		Expect(t.AppliedForce.Get()).To(Equal(25.0))
		expectInvariants()
	})

	It("rejects writes to the equivalent anchor", func() {
		before := primaries(sys.TopSpring, sys.BottomSpring, sys.EquivalentSpring)

		Expect(reactive.Catch(func() { sys.EquivalentSpring.Left.Set(1) })).To(MatchError(reactive.ErrReadOnly))
		Expect(reactive.Catch(func() { sys.EquivalentSpring.EquilibriumX.Set(1) })).To(MatchError(reactive.ErrReadOnly))

		Expect(primaries(sys.TopSpring, sys.BottomSpring, sys.EquivalentSpring)).To(Equal(before))
	})

	It("restores the construction state on reset", func() {
		initial := primaries(sys.TopSpring, sys.BottomSpring, sys.EquivalentSpring)
		arm := sys.RoboticArm.Left.Get()

		write(func() { sys.EquivalentSpring.AppliedForce.Set(40) })
		write(func() { sys.TopSpring.SpringConstant.Set(300) })
		write(func() { sys.RoboticArm.Left.Set(1.6) })

		sys.Reset()

		Expect(primaries(sys.TopSpring, sys.BottomSpring, sys.EquivalentSpring)).To(Equal(initial))
		Expect(sys.RoboticArm.Left.Get()).To(Equal(arm))
	})

	It("returns a rejected arm to the spring on reset", func() {
		err := reactive.Catch(func() { sys.RoboticArm.Left.Set(2.0) })
		Expect(err).To(MatchError(reactive.ErrRangeViolation))

		sys.Reset()

		Expect(sys.RoboticArm.Left.Get()).To(Equal(1.5))
		expectInvariants()
	})

	It("keeps the equivalent constant internal", func() {
		err := reactive.Catch(func() { sys.EquivalentSpring.SpringConstant.Set(500) })
		Expect(err).To(MatchError(reactive.ErrReadOnly))
		Expect(sys.EquivalentSpring.SpringConstant.Get()).To(Equal(400.0))
	})
})
