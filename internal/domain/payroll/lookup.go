package payroll

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
)

const employeeByCodePath = "/api/Employee/GetEmployeeByCode"

// employeeGate enables wefDate once the employee code resolves. The
// earliest selectable WEF date is the day after joining.
func employeeGate() screen.Gate {
	return screen.Gate{
		Trigger: "empCode",
		Field:   "wefDate",
		Fills:   []string{"empName", "doj"},
		Lookup:  lookupEmployee,
	}
}

func lookupEmployee(ctx context.Context, b screen.Backend, s form.State) (screen.Resolution, error) {
	code := strings.TrimSpace(s.Text("empCode"))
	if code == "" {
		return screen.Resolution{}, nil
	}
	env, err := b.Do(ctx, http.MethodGet, employeeByCodePath, url.Values{"EmpCode": {code}}, nil)
	if err != nil {
		return screen.Resolution{}, err
	}
	recs, err := env.Table("table")
	if err != nil || len(recs) == 0 {
		return screen.Resolution{}, err
	}
	doj, ok := form.ParseDate(recs[0].String("DOJ"))
	if !ok {
		return screen.Resolution{}, nil
	}
	return screen.Resolution{
		Found: true,
		Min:   doj.AddDate(0, 0, 1).Format(form.DateLayout),
		Fill: form.New(map[string]form.Value{
			"empName": form.Text(recs[0].String("EmpName")),
			"doj":     form.Text(doj.Format(form.DateLayout)),
		}),
	}, nil
}

func employeeFields() map[string]form.Value {
	return map[string]form.Value{
		"empCode": form.Text(""),
		"empName": form.Text(""),
		"doj":     form.Text(""),
		"wefDate": form.Text(""),
	}
}

// employeeRules are the checks every WEF-dated payroll form starts with.
func employeeRules() []validate.Rule {
	return []validate.Rule{
		validate.Required("empCode", "Employee Code"),
		func(s form.State) *validate.Issue {
			if s.Get("doj").IsBlank() {
				return &validate.Issue{Field: "empCode", Row: -1, Message: "Please enter a valid Employee Code"}
			}
			return nil
		},
		validate.Required("wefDate", "WEF Date"),
		validate.Date("wefDate", "WEF Date"),
		validate.After("doj", "wefDate", "WEF Date must be after Date of Joining"),
	}
}
