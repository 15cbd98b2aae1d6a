package integrator_test

import (
	"math"
	"math/cmplx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gni/integrator"
)

var _ = Describe("Run", func() {
	It("returns the same state object at every step of the identity", func() {
		y := make([]float64, 1000)
		traj, err := integrator.Run[[]float64](identity[[]float64](), 1.0, 1e-3, y)
		Expect(err).NotTo(HaveOccurred())

		steps := 0
		for _, s := range traj.All() {
			Expect(&s[0]).To(BeIdenticalTo(&y[0]))
			steps++
		}
		Expect(steps).To(Equal(1000))
	})

	It("rounds the step count to the nearest integer", func() {
		traj, err := integrator.Run[float64](identity[float64](), 1.0, 0.3, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(3))

		n := 0
		for traj.Next() {
			n++
		}
		Expect(n).To(Equal(3))
		Expect(traj.Time()).To(BeNumerically("~", 0.9, 1e-15))
	})

	DescribeTable("step counts",
		func(total, h float64, want int) {
			n, err := integrator.StepCount(total, h)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(want))
		},
		Entry("exact", 1.0, 0.25, 4),
		Entry("rounded down", 1.0, 0.3, 3),
		Entry("rounded up", 1.0, 0.15, 7),
		Entry("zero time", 0.0, 1e-3, 0),
		Entry("backward in time", -1.0, -0.1, 10),
	)

	DescribeTable("invalid parameters",
		func(total, h float64) {
			_, err := integrator.StepCount(total, h)
			Expect(err).To(MatchError(integrator.ErrInvalidParameters))

			calls := 0
			f := integrator.Func[float64](func(h float64, y float64, _ ...any) float64 {
				calls++
				return y
			})
			_, err = integrator.Run[float64](f, total, h, 1)
			Expect(err).To(MatchError(integrator.ErrInvalidParameters))
			Expect(calls).To(BeZero())
		},
		Entry("zero step", 1.0, 0.0),
		Entry("NaN step", 1.0, math.NaN()),
		Entry("infinite step", 1.0, math.Inf(1)),
		Entry("infinite time", math.Inf(1), 0.1),
		Entry("NaN time", math.NaN(), 0.1),
		Entry("opposite signs", 1.0, -0.1),
		Entry("overflowing ratio", 1e300, 1e-300),
		Entry("too many steps", 1e30, 1.0),
	)

	It("rejects a nil flow map", func() {
		_, err := integrator.Run[float64](nil, 1, 0.1, 0)
		Expect(err).To(MatchError(integrator.ErrInvalidOperand))
	})

	It("yields nothing and leaves the state alone for an empty run", func() {
		y := &phase{q: 1, p: 2}
		calls := 0
		f := integrator.Func[*phase](func(h float64, y *phase, _ ...any) *phase {
			calls++
			y.q = 0
			return y
		})

		traj, err := integrator.Run[*phase](f, 0.0, 1e-3, y)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Next()).To(BeFalse())
		Expect(traj.Done()).To(BeTrue())
		Expect(traj.Last()).To(BeIdenticalTo(y))
		Expect(calls).To(BeZero())
		Expect(*y).To(Equal(phase{q: 1, p: 2}))
	})

	It("steps only on demand", func() {
		calls := 0
		f := integrator.Func[float64](func(h float64, y float64, _ ...any) float64 {
			calls++
			return y + h
		})
		traj, err := integrator.Run[float64](f, 10, 1, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(BeZero())

		for k, y := range traj.All() {
			Expect(y).To(Equal(float64(k)))
			if k == 3 {
				break
			}
		}
		Expect(calls).To(Equal(3))
		Expect(traj.Index()).To(Equal(3))
		Expect(traj.State()).To(Equal(3.0))
	})

	It("cannot be restarted", func() {
		traj, err := integrator.Run[float64](decay(-1), 1, 0.1, 1)
		Expect(err).NotTo(HaveOccurred())

		first := 0
		for range traj.All() {
			first++
			if first == 4 {
				break
			}
		}
		rest := 0
		for range traj.All() {
			rest++
		}
		again := 0
		for range traj.All() {
			again++
		}
		Expect(first + rest).To(Equal(10))
		Expect(again).To(BeZero())
		Expect(traj.Next()).To(BeFalse())
	})

	It("forwards extra arguments to every step", func() {
		var seen [][]any
		f := integrator.Func[float64](func(h float64, y float64, args ...any) float64 {
			seen = append(seen, args)
			return y
		})
		m, err := integrator.Strang[float64](f, f)
		Expect(err).NotTo(HaveOccurred())

		traj, err := integrator.Run[float64](m, 1, 0.5, 0, "rate", 2)
		Expect(err).NotTo(HaveOccurred())
		traj.Last()

		Expect(seen).To(HaveLen(6))
		for _, args := range seen {
			Expect(args).To(Equal([]any{"rate", 2}))
		}
	})

	It("uses the returned value rather than the argument", func() {
		f := integrator.Func[*phase](func(h float64, y *phase, _ ...any) *phase {
			return &phase{q: y.q + h, p: y.p}
		})
		y := &phase{}
		final, err := integrator.Run[*phase](f, 1, 0.25, y)
		Expect(err).NotTo(HaveOccurred())
		Expect(final.Last().q).To(Equal(1.0))
		Expect(y.q).To(BeZero())
	})

	Context("explicit decay", func() {
		It("matches (1+hλ)^n for a scalar state", func() {
			traj, err := integrator.Run[float64](decay(-1), 1.0, 1e-3, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Last()).To(BeNumerically("~", 0.36769542, 1e-8))
		})

		It("stays near the unit circle for an imaginary rate", func() {
			traj, err := integrator.Run[complex128](dahlquist(1i), 1.0, 1e-3, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(cmplx.Abs(traj.Last())).To(BeNumerically("~", 1.0, 1e-3))
		})

		It("composes real and imaginary rates", func() {
			m, err := integrator.Strang[complex128](dahlquist(1i), dahlquist(-1))
			Expect(err).NotTo(HaveOccurred())
			traj, err := integrator.Run[complex128](m, 1.0, 1e-3, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(cmplx.Abs(traj.Last())).To(BeNumerically("~", 0.36778736, 1e-6))
		})
	})
})
