package payroll

import (
	"strings"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

const (
	deductionHeadsPath = "/api/Payroll/GetDeductionHead"
	saveDeductionPath  = "/api/Payroll/SaveDeduction"
)

type deductionDetail struct {
	HeadID     int64    `json:"HeadID"`
	Amount     *float64 `json:"Amount"`
	Percentage *float64 `json:"Percentage"`
}

type deductionRequest struct {
	EmpCode         string            `json:"EmpCode"`
	WEFDate         string            `json:"WEFDate"`
	DeductionDetail []deductionDetail `json:"deductionDetail"`
}

func optionalNumber(s form.State, field string) *float64 {
	if strings.TrimSpace(s.Text(field)) == "" {
		return nil
	}
	f, _ := s.Decimal(field).Float64()
	return &f
}

// buildDeduction leaves out rows where neither amount nor percentage was
// entered.
func buildDeduction(s form.State) (any, error) {
	req := deductionRequest{
		EmpCode:         strings.TrimSpace(s.Text("empCode")),
		WEFDate:         form.NormalizeDate(s.Text("wefDate")),
		DeductionDetail: []deductionDetail{},
	}
	for _, row := range s.Rows("deductions") {
		amount := optionalNumber(row, "amount")
		pct := optionalNumber(row, "percentage")
		if amount == nil && pct == nil {
			continue
		}
		req.DeductionDetail = append(req.DeductionDetail, deductionDetail{
			HeadID:     form.ParseDecimal(row.Option("head").Value).IntPart(),
			Amount:     amount,
			Percentage: pct,
		})
	}
	return req, nil
}

func deductionTotal(s form.State) string {
	var lines []DeductionLine
	for _, row := range s.Rows("deductions") {
		lines = append(lines, DeductionLine{Amount: row.Decimal("amount"), Percentage: row.Decimal("percentage")})
	}
	return Deductions(s.Decimal("gross"), lines).String()
}

func Deduction() *screen.Definition {
	rules := append(employeeRules(),
		validate.Numeric("gross", "Gross"),
		validate.EachRow("deductions",
			validate.Numeric("amount", "Amount"),
			validate.Range("percentage", "Percentage", 0, 100),
		),
	)
	return &screen.Definition{
		Name:   "deduction",
		Title:  "Employee Deduction",
		Entity: "deductions",
		References: []screen.Reference{
			{Key: "heads", Path: deductionHeadsPath, Value: "HeadID", Label: "HeadName"},
		},
		Defaults: func(refs screen.Refs) form.State {
			values := employeeFields()
			values["gross"] = form.Text("")
			values["deductions"] = headRows(refs["heads"], "amount", "percentage")
			return form.New(values)
		},
		Derived:        []screen.Derived{{Name: "totalDeduction", Compute: deductionTotal}},
		ReadOnly:       []string{"empName", "doj"},
		Gates:          []screen.Gate{employeeGate()},
		Rules:          rules,
		Submit:         []screen.Step{{Path: saveDeductionPath, Build: buildDeduction}},
		SuccessMessage: "Deduction saved successfully",
		List: &screen.ListSpec{
			Path: "/api/Payroll/GetDeductionList",
			Key:  "DeductionID",
			Row: func(rec backend.Record, _ screen.Refs) map[string]string {
				return map[string]string{
					"EmpCode":  rec.String("EmpCode"),
					"EmpName":  rec.String("EmpName"),
					"WEFDate":  form.NormalizeDate(rec.String("WEFDate")),
					"HeadName": rec.String("HeadName"),
					"Amount":   rec.String("Amount"),
				}
			},
			Search: []string{"EmpCode", "EmpName", "HeadName"},
		},
		Columns: []screen.Column{
			{Key: "EmpCode", Label: "Emp Code"},
			{Key: "EmpName", Label: "Employee"},
			{Key: "WEFDate", Label: "WEF Date"},
			{Key: "HeadName", Label: "Deduction"},
			{Key: "Amount", Label: "Amount"},
		},
	}
}
