package payroll

import (
	"net/http"
	"strconv"
	"time"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

func months() []form.Option {
	out := make([]form.Option, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, form.Option{Value: strconv.Itoa(int(m)), Label: m.String()})
	}
	return out
}

// Preparation triggers a payroll run for one month and branch. The run is a
// GET with query parameters, as the backend exposes it.
func Preparation() *screen.Definition {
	return &screen.Definition{
		Name:   "preparation",
		Title:  "Payroll Preparation",
		Entity: "payroll-runs",
		References: []screen.Reference{
			{Key: "month", Static: months()},
			{Key: "branch", Path: "/api/Master/GetBranch", Value: "BranchID", Label: "BranchName"},
		},
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"month":       form.Choice(form.Option{}),
				"year":        form.Text(""),
				"branch":      form.Choice(form.Option{}),
				"paymentDate": form.Text(""),
			})
		},
		Rules: []validate.Rule{
			validate.Selected("month", "Month"),
			validate.Required("year", "Year"),
			validate.Digits("year", "Year", 4),
			validate.Range("year", "Year", 2000, 2100),
			validate.Selected("branch", "Branch"),
			validate.Required("paymentDate", "Payment Date"),
			validate.Date("paymentDate", "Payment Date"),
		},
		Fields: screen.Mapping{
			{Form: "month", API: "Month", As: screen.AsOptionInt, Ref: "month", Noun: "Month"},
			{Form: "year", API: "Year", As: screen.AsInt},
			{Form: "branch", API: "BranchID", As: screen.AsOptionInt, Ref: "branch", Noun: "Branch"},
			{Form: "paymentDate", API: "PaymentDate", As: screen.AsDate},
		},
		Submit: []screen.Step{{Method: http.MethodGet, Path: "/api/Payroll/PreparePayroll"}},
		List: &screen.ListSpec{
			Path: "/api/Payroll/GetPayrollStatus",
			Key:  "PayrollID",
			Row: func(rec backend.Record, refs screen.Refs) map[string]string {
				return map[string]string{
					"month":       refs.Label("month", rec.String("Month"), "Month"),
					"Year":        rec.String("Year"),
					"branch":      refs.Label("branch", rec.String("BranchID"), "Branch"),
					"PaymentDate": form.NormalizeDate(rec.String("PaymentDate")),
					"Status":      rec.String("Status"),
				}
			},
			Search: []string{"month", "Year", "branch", "Status"},
		},
		Columns: []screen.Column{
			{Key: "month", Label: "Month"},
			{Key: "Year", Label: "Year"},
			{Key: "branch", Label: "Branch"},
			{Key: "PaymentDate", Label: "Payment Date"},
			{Key: "Status", Label: "Status"},
		},
		Delete: &screen.DeleteSpec{Path: "/api/Payroll/RollbackPayroll", Param: "PayrollID"},
	}
}
