package payroll

import "github.com/shopspring/decimal"

// Gross is the monthly rate card total: basic plus VDA plus every
// allowance line.
func Gross(basic, vda decimal.Decimal, allowances ...decimal.Decimal) decimal.Decimal {
	gross := basic.Add(vda)
	for _, amount := range allowances {
		gross = gross.Add(amount)
	}
	return gross
}

// DeductionLine is one deduction head as entered: a flat amount, a share of
// gross, or both.
type DeductionLine struct {
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Deductions totals the lines against gross. Percentages apply to gross.
func Deductions(gross decimal.Decimal, lines []DeductionLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
		if !line.Percentage.IsZero() {
			total = total.Add(gross.Mul(line.Percentage).Div(hundred))
		}
	}
	return total.Round(2)
}
