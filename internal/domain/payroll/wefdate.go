package payroll

import (
	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
)

// WEFDate changes the effective date of an employee's rate card. Submitting
// only confirms locally; nothing is sent to the backend.
func WEFDate() *screen.Definition {
	return &screen.Definition{
		Name:  "wefdate",
		Title: "WEF Date",
		Defaults: func(screen.Refs) form.State {
			return form.New(employeeFields())
		},
		ReadOnly:    []string{"empName", "doj"},
		Gates:       []screen.Gate{employeeGate()},
		Rules:       employeeRules(),
		LocalSubmit: "WEF Date updated successfully",
	}
}
