package integrator_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gni/integrator"
)

func oscillatorError(m integrator.FlowMap[*phase], h float64) float64 {
	traj, err := integrator.Run(m, 1.0, h, &phase{q: 1})
	Expect(err).NotTo(HaveOccurred())
	y := traj.Last()
	return math.Hypot(y.q-math.Cos(1), y.p+math.Sin(1))
}

var _ = Describe("Splitting", func() {
	const h = 1e-3

	var verlet *integrator.Composite[*phase]

	BeforeEach(func() {
		var err error
		verlet, err = integrator.Strang[*phase](drift{}, kick{})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Strang", func() {
		It("reproduces hand-written Störmer–Verlet exactly", func() {
			composed := &phase{q: 1}
			direct := &phase{q: 1}
			for range 1000 {
				composed = verlet.Step(h, composed)
				direct = leapfrog{}.Step(h, direct)
			}
			Expect(*composed).To(Equal(*direct))
		})

		It("conserves the modified energy of the oscillator", func() {
			traj, err := integrator.Run[*phase](verlet, 1.0, h, &phase{q: 1})
			Expect(err).NotTo(HaveOccurred())

			modified := func(y *phase) float64 {
				return y.q*y.q + (1-h*h/4)*y.p*y.p
			}
			for _, y := range traj.All() {
				Expect(modified(y)).To(BeNumerically("~", 1.0, 1e-12))
			}
			y := traj.State()
			Expect(math.Hypot(y.q, y.p)).To(BeNumerically("~", 1.0, h*h/4))
		})

		It("is time-reversible", func() {
			y := &phase{q: 1}
			traj, err := integrator.Run[*phase](verlet, 1.0, h, y)
			Expect(err).NotTo(HaveOccurred())
			y = traj.Last()
			y.p = -y.p

			traj, err = integrator.Run[*phase](verlet, 1.0, h, y)
			Expect(err).NotTo(HaveOccurred())
			y = traj.Last()
			Expect(y.q).To(BeNumerically("~", 1.0, 1e-12))
			Expect(y.p).To(BeNumerically("~", 0.0, 1e-12))
		})

		It("is second order", func() {
			ratio := oscillatorError(verlet, 0.1) / oscillatorError(verlet, 0.05)
			Expect(ratio).To(BeNumerically(">", 3.5))
			Expect(ratio).To(BeNumerically("<", 4.5))
		})
	})

	Describe("TripleJump", func() {
		It("builds a flat consistent composition", func() {
			m, err := integrator.TripleJump[*phase](verlet)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Len()).To(Equal(9))
			Expect(m.Sum()).To(BeNumerically("~", 2.0, 1e-14))

			var kicks, cubes float64
			for _, t := range m.Terms() {
				Expect(t.Map).NotTo(BeAssignableToTypeOf(verlet))
				if _, ok := t.Map.(kick); ok {
					kicks += t.Coeff
					cubes += t.Coeff * t.Coeff * t.Coeff
				}
			}
			Expect(kicks).To(BeNumerically("~", 1.0, 1e-14))
			Expect(cubes).To(BeNumerically("~", 0.0, 1e-12))
		})

		It("raises the order to four", func() {
			m, err := integrator.TripleJump[*phase](verlet)
			Expect(err).NotTo(HaveOccurred())

			ratio := oscillatorError(m, 0.1) / oscillatorError(m, 0.05)
			Expect(ratio).To(BeNumerically(">", 13))
			Expect(ratio).To(BeNumerically("<", 19))
		})
	})

	Describe("TripleJumpOrder", func() {
		var fourth *integrator.Composite[*phase]

		BeforeEach(func() {
			var err error
			fourth, err = integrator.TripleJump[*phase](verlet)
			Expect(err).NotTo(HaveOccurred())
		})

		It("matches TripleJump for a second order base", func() {
			m, err := integrator.TripleJumpOrder[*phase](verlet, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Terms()).To(Equal(fourth.Terms()))
		})

		It("keeps the composition consistent", func() {
			m, err := integrator.TripleJumpOrder[*phase](fourth, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Len()).To(Equal(27))
			Expect(m.Sum()).To(BeNumerically("~", 2.0, 1e-13))

			var kicks float64
			for _, t := range m.Terms() {
				if _, ok := t.Map.(kick); ok {
					kicks += t.Coeff
				}
			}
			Expect(kicks).To(BeNumerically("~", 1.0, 1e-13))
		})

		It("raises a fourth order method to order six", func() {
			m, err := integrator.TripleJumpOrder[*phase](fourth, 4)
			Expect(err).NotTo(HaveOccurred())

			coarse := oscillatorError(m, 0.1)
			Expect(coarse).To(BeNumerically(">", 1e-12))
			ratio := coarse / oscillatorError(m, 0.05)
			Expect(ratio).To(BeNumerically(">", 45))
			Expect(ratio).To(BeNumerically("<", 90))
		})

		It("is no better than order four with the second order coefficients", func() {
			m, err := integrator.TripleJump[*phase](fourth)
			Expect(err).NotTo(HaveOccurred())

			ratio := oscillatorError(m, 0.1) / oscillatorError(m, 0.05)
			Expect(ratio).To(BeNumerically("<", 20))
		})

		It("rejects an odd or non-positive order", func() {
			for _, order := range []int{0, 1, 3, -2} {
				_, err := integrator.TripleJumpOrder[*phase](verlet, order)
				Expect(err).To(MatchError(integrator.ErrInvalidOperand))
			}
		})
	})

	Describe("Repeat", func() {
		It("takes n substeps of size h/n", func() {
			a := &counting{name: "A"}
			m, err := integrator.Repeat[[]string](a, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Step(2.0, nil)).To(HaveLen(4))
			Expect(a.steps).To(Equal([]float64{0.5, 0.5, 0.5, 0.5}))
		})

		It("rejects a non-positive count", func() {
			_, err := integrator.Repeat[[]string](&counting{}, 0)
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))
		})
	})
})
