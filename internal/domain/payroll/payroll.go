// Package payroll declares the payroll screens: allowance and deduction
// heads, per-employee rate cards, WEF date changes and payroll runs.
package payroll

import (
	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
)

func Definitions() []*screen.Definition {
	return []*screen.Definition{
		AllowanceHead(),
		DeductionHead(),
		Allowance(),
		Deduction(),
		WEFDate(),
		Preparation(),
	}
}

// PayTypes is the fixed pay type list shared by allowance and deduction heads.
var PayTypes = []form.Option{
	{Value: "1", Label: "Fixed"},
	{Value: "2", Label: "As Per Day"},
	{Value: "3", Label: "Variable Pay"},
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
