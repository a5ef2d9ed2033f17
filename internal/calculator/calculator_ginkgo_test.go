package calculator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"calculator-bdd/internal/calculator"
)

var _ = Describe("Calculator", func() {
	var calc *calculator.Calculator

	BeforeEach(func() {
		calc = calculator.New()
	})

	DescribeTable("adding two numbers",
		func(a, b int64, expected string) {
			result := calc.Add(a, b)
			Expect(result.IsInt()).To(BeTrue())
			Expect(result.String()).To(Equal(expected))
		},
		Entry("1 + 1 = 2", int64(1), int64(1), "2"),
		Entry("5 + 5 = 10", int64(5), int64(5), "10"),
		Entry("100 + 200 = 300", int64(100), int64(200), "300"),
		Entry("0 + 0 = 0", int64(0), int64(0), "0"),
		Entry("past float precision", int64(9007199254740993), int64(1), "9007199254740994"),
	)

	It("subtracts the second operand from the first", func() {
		Expect(calc.Subtract(10, 3).Equal(calculator.Int(7))).To(BeTrue())
	})

	It("multiplies", func() {
		Expect(calc.Multiply(4, 6).Equal(calculator.Int(24))).To(BeTrue())
	})

	When("dividing", func() {
		It("returns the real quotient", func() {
			result, err := calc.Divide(20, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsInt()).To(BeFalse())
			Expect(result.Float64()).To(Equal(4.0))
		})

		It("rejects a zero divisor and keeps the last result", func() {
			calc.Add(2, 2)

			_, err := calc.Divide(5, 0)
			Expect(err).To(MatchError(calculator.ErrDivisionByZero))
			Expect(err.Error()).To(ContainSubstring("5 / 0"))
			Expect(calc.Result().Equal(calculator.Int(4))).To(BeTrue())
		})
	})
})
