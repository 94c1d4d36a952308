package payroll

import (
	"github.com/shopspring/decimal"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

const (
	allowanceHeadsPath = "/api/Payroll/GetAllowanceHead"
	saveAllowancePath  = "/api/Payroll/SaveAllowance"
	saveBasicDataPath  = "/api/Payroll/SaveBasicData"
)

// headRows gives one row per head so every head can be priced.
func headRows(heads []form.Option, amountFields ...string) form.Value {
	rows := make([]form.State, 0, len(heads))
	for _, head := range heads {
		values := map[string]form.Value{"head": form.Choice(head)}
		for _, f := range amountFields {
			values[f] = form.Text("")
		}
		rows = append(rows, form.New(values))
	}
	return form.Rows(rows...)
}

func allowanceTotal(s form.State) string {
	var lines []decimal.Decimal
	for _, row := range s.Rows("allowances") {
		lines = append(lines, row.Decimal("rate"))
	}
	return Gross(s.Decimal("basic"), s.Decimal("vda"), lines...).String()
}

func Allowance() *screen.Definition {
	rules := append(employeeRules(),
		validate.Required("basic", "Basic"),
		validate.Numeric("basic", "Basic"),
		validate.Numeric("vda", "VDA"),
		validate.EachRow("allowances", validate.Numeric("rate", "Allowance amount")),
	)
	return &screen.Definition{
		Name:   "allowance",
		Title:  "Employee Allowance",
		Entity: "allowances",
		References: []screen.Reference{
			{Key: "heads", Path: allowanceHeadsPath, Value: "HeadID", Label: "HeadName"},
		},
		Defaults: func(refs screen.Refs) form.State {
			values := employeeFields()
			values["basic"] = form.Text("")
			values["vda"] = form.Text("")
			values["allowances"] = headRows(refs["heads"], "rate")
			return form.New(values)
		},
		Derived:  []screen.Derived{{Name: "total", Compute: allowanceTotal}},
		ReadOnly: []string{"empName", "doj"},
		Gates:    []screen.Gate{employeeGate()},
		Rules:    rules,
		Submit: []screen.Step{
			{
				Path: saveAllowancePath,
				Mapping: screen.Mapping{
					{Form: "empCode", API: "EmpCode"},
					{Form: "wefDate", API: "WEFDate", As: screen.AsDate},
					{Form: "allowances", API: "allowanceDetail", As: screen.AsRows, Skip: "rate", Rows: screen.Mapping{
						{Form: "head", API: "HeadID", As: screen.AsOptionInt},
						{Form: "rate", API: "Rates", As: screen.AsNumber},
					}},
				},
			},
			{
				Path: saveBasicDataPath,
				Mapping: screen.Mapping{
					{Form: "empCode", API: "EmpCode"},
					{Form: "wefDate", API: "WEFDate", As: screen.AsDate},
					{Form: "basic", API: "rateBasic", As: screen.AsNumber},
					{Form: "vda", API: "rateVDA", As: screen.AsNumber},
				},
			},
		},
		SuccessMessage: "Allowance saved successfully",
		List: &screen.ListSpec{
			Path: "/api/Payroll/GetAllowanceList",
			Key:  "AllowanceID",
			Row: func(rec backend.Record, _ screen.Refs) map[string]string {
				return map[string]string{
					"EmpCode": rec.String("EmpCode"),
					"EmpName": rec.String("EmpName"),
					"WEFDate": form.NormalizeDate(rec.String("WEFDate")),
					"Basic":   rec.String("RateBasic"),
					"VDA":     rec.String("RateVDA"),
					"Total":   rec.String("Total"),
				}
			},
			Search: []string{"EmpCode", "EmpName"},
		},
		Columns: []screen.Column{
			{Key: "EmpCode", Label: "Emp Code"},
			{Key: "EmpName", Label: "Employee"},
			{Key: "WEFDate", Label: "WEF Date"},
			{Key: "Basic", Label: "Basic"},
			{Key: "VDA", Label: "VDA"},
			{Key: "Total", Label: "Total"},
		},
		Template: &screen.TemplateSpec{
			Sheet:   "Allowance",
			Headers: []string{"EmpCode", "WEFDate", "Basic", "VDA", "HeadID", "Rate"},
			Sample:  []string{"E100", "2024-04-01", "5000", "200", "1", "300"},
		},
	}
}
