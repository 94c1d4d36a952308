package form

import "github.com/shopspring/decimal"

// Sum adds the numeric value of every named field.
func Sum(s State, fields ...string) decimal.Decimal {
	total := decimal.Zero
	for _, field := range fields {
		total = total.Add(s.Decimal(field))
	}
	return total
}

// SumRows adds one field across all rows of a section.
func SumRows(s State, section, field string) decimal.Decimal {
	total := decimal.Zero
	for _, row := range s.Rows(section) {
		total = total.Add(row.Decimal(field))
	}
	return total
}
