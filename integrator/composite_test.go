package integrator_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gni/integrator"
)

var _ = Describe("Composite", func() {
	var a, b, c *counting

	BeforeEach(func() {
		a = &counting{name: "A"}
		b = &counting{name: "B"}
		c = &counting{name: "C"}
	})

	Describe("Compose", func() {
		It("applies operands in argument order with the outer step size", func() {
			ab, err := integrator.Compose[[]string](a, b)
			Expect(err).NotTo(HaveOccurred())

			Expect(ab.Step(0.1, nil)).To(Equal([]string{"A", "B"}))
			Expect(a.steps).To(Equal([]float64{0.1}))
			Expect(b.steps).To(Equal([]float64{0.1}))
		})

		It("is associative and never nests", func() {
			ab, err := integrator.Compose[[]string](a, b)
			Expect(err).NotTo(HaveOccurred())
			left, err := integrator.Compose[[]string](ab, c)
			Expect(err).NotTo(HaveOccurred())

			bc, err := integrator.Compose[[]string](b, c)
			Expect(err).NotTo(HaveOccurred())
			right, err := integrator.Compose[[]string](a, bc)
			Expect(err).NotTo(HaveOccurred())

			Expect(left.Terms()).To(Equal(right.Terms()))
			Expect(left.Len()).To(Equal(3))
			for _, t := range left.Terms() {
				Expect(t.Map).NotTo(BeAssignableToTypeOf(&integrator.Composite[[]string]{}))
				Expect(t.Coeff).To(Equal(1.0))
			}
		})

		It("keeps the coefficients of composite operands", func() {
			half, err := integrator.Scale[[]string](a, 0.5)
			Expect(err).NotTo(HaveOccurred())
			m, err := integrator.Compose[[]string](half, b, half)
			Expect(err).NotTo(HaveOccurred())

			coeffs := []float64{}
			for _, t := range m.Terms() {
				coeffs = append(coeffs, t.Coeff)
			}
			Expect(coeffs).To(Equal([]float64{0.5, 1.0, 0.5}))
			Expect(m.Step(2.0, nil)).To(Equal([]string{"A", "B", "A"}))
			Expect(a.steps).To(Equal([]float64{1.0, 1.0}))
			Expect(b.steps).To(Equal([]float64{2.0}))
		})

		It("rejects a nil operand before stepping", func() {
			var nilComposite *integrator.Composite[[]string]
			var nilFunc integrator.Func[[]string]

			_, err := integrator.Compose[[]string](a, nil)
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))
			_, err = integrator.Compose[[]string](nil, a)
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))
			_, err = integrator.Compose[[]string](a, nilComposite)
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))
			_, err = integrator.Compose[[]string](a, nilFunc)
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))

			Expect(a.steps).To(BeEmpty())
		})

		It("does not modify its operands", func() {
			ab, err := integrator.Compose[[]string](a, b)
			Expect(err).NotTo(HaveOccurred())
			_, err = ab.Then(c)
			Expect(err).NotTo(HaveOccurred())
			_, err = ab.Scale(3)
			Expect(err).NotTo(HaveOccurred())

			Expect(ab.String()).To(Equal("A * B"))
		})
	})

	Describe("Scale", func() {
		It("wraps a primitive in a single term", func() {
			m, err := integrator.Scale[[]string](a, 0.25)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Terms()).To(Equal([]integrator.Term[[]string]{{Map: a, Coeff: 0.25}}))

			m.Step(4.0, nil)
			Expect(a.steps).To(Equal([]float64{1.0}))
		})

		It("multiplies every coefficient of a composite", func() {
			half, err := integrator.Scale[[]string](a, 0.5)
			Expect(err).NotTo(HaveOccurred())
			m, err := integrator.Compose[[]string](half, b)
			Expect(err).NotTo(HaveOccurred())

			scaled, err := m.Scale(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(scaled.Terms()).To(Equal([]integrator.Term[[]string]{
				{Map: a, Coeff: 1.5},
				{Map: b, Coeff: 3},
			}))
			Expect(m.Terms()[0].Coeff).To(Equal(0.5))
		})

		It("distributes over composition", func() {
			ab, err := integrator.Compose[*phase](drift{}, kick{})
			Expect(err).NotTo(HaveOccurred())
			lhs, err := ab.Scale(0.7)
			Expect(err).NotTo(HaveOccurred())

			ak, err := integrator.Scale[*phase](drift{}, 0.7)
			Expect(err).NotTo(HaveOccurred())
			bk, err := integrator.Scale[*phase](kick{}, 0.7)
			Expect(err).NotTo(HaveOccurred())
			rhs, err := integrator.Compose[*phase](ak, bk)
			Expect(err).NotTo(HaveOccurred())

			Expect(lhs.Terms()).To(Equal(rhs.Terms()))

			y1 := &phase{q: 1, p: 0.3}
			y2 := &phase{q: 1, p: 0.3}
			for range 100 {
				y1 = lhs.Step(0.01, y1)
				y2 = rhs.Step(0.01, y2)
			}
			Expect(*y1).To(Equal(*y2))
		})

		It("rejects coefficients that are not finite reals", func() {
			for _, coeff := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				_, err := integrator.Scale[[]string](a, coeff)
				Expect(err).To(MatchError(integrator.ErrInvalidOperand))
			}
			_, err := integrator.Scale[[]string](nil, 2)
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))
		})
	})

	Describe("New", func() {
		It("flattens composite terms", func() {
			ab, err := integrator.Compose[[]string](a, b)
			Expect(err).NotTo(HaveOccurred())

			m, err := integrator.New(
				integrator.Term[[]string]{Map: ab, Coeff: 2},
				integrator.Term[[]string]{Map: c, Coeff: -1},
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Terms()).To(Equal([]integrator.Term[[]string]{
				{Map: a, Coeff: 2},
				{Map: b, Coeff: 2},
				{Map: c, Coeff: -1},
			}))
			Expect(m.Sum()).To(Equal(3.0))
		})

		It("validates every term", func() {
			_, err := integrator.New(integrator.Term[[]string]{Map: a, Coeff: math.NaN()})
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))
			_, err = integrator.New(integrator.Term[[]string]{Coeff: 1})
			Expect(err).To(MatchError(integrator.ErrInvalidOperand))
		})
	})

	Describe("String", func() {
		It("omits unit coefficients", func() {
			m, err := integrator.Strang[*phase](drift{}, kick{})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.String()).To(Equal("A**0.5 * B * A**0.5"))
		})

		It("uses names and type names as labels", func() {
			named := integrator.Named[float64]("decay", decay(-1))
			m, err := integrator.Compose[float64](named, decay(-2))
			Expect(err).NotTo(HaveOccurred())
			scaled, err := m.Scale(-2)
			Expect(err).NotTo(HaveOccurred())
			Expect(scaled.String()).To(Equal("decay**-2 * Func**-2"))
		})

		It("splices named composites", func() {
			ab, err := integrator.Compose[[]string](a, b)
			Expect(err).NotTo(HaveOccurred())
			m, err := integrator.Compose[[]string](integrator.Named[[]string]("AB", ab), c)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.String()).To(Equal("A * B * C"))
		})
	})

	Describe("Func", func() {
		It("panics when nil", func() {
			var f integrator.Func[float64]
			Expect(func() { f.Step(1, 1) }).To(PanicWith(MatchError(integrator.ErrNotImplemented)))
		})
	})
})
