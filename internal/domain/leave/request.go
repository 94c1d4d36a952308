// Package leave declares the leave request screen and the day counting it
// shows while the request is filled in.
package leave

import (
	"strconv"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

const leaveTypesPath = "/api/Leave/GetLeaveType"

func Definitions() []*screen.Definition {
	return []*screen.Definition{Request()}
}

// days renders the derived day count; it is blank until both dates parse.
func days(s form.State) string {
	from, ok := s.Date("fromDate")
	if !ok {
		return ""
	}
	to, ok := s.Date("toDate")
	if !ok {
		return ""
	}
	n, err := DayCount(from, to, s.Flag("halfDay"))
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Request is the leave application form. Submitting confirms locally
// without a backend call; requests reach the list through the backend's
// own workflow.
func Request() *screen.Definition {
	return &screen.Definition{
		Name:   "leaverequest",
		Title:  "Leave Request",
		Entity: "leave-requests",
		References: []screen.Reference{
			{Key: "leaveType", Path: leaveTypesPath, Value: "LeaveTypeID", Label: "LeaveTypeName"},
		},
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"empCode":   form.Text(""),
				"leaveType": form.Choice(form.Option{}),
				"fromDate":  form.Text(""),
				"toDate":    form.Text(""),
				"halfDay":   form.Flag(false),
				"reason":    form.Text(""),
			})
		},
		Derived: []screen.Derived{{Name: "days", Compute: days}},
		Rules: []validate.Rule{
			validate.Required("empCode", "Employee Code"),
			validate.Selected("leaveType", "Leave Type"),
			validate.Required("fromDate", "From Date"),
			validate.Date("fromDate", "From Date"),
			validate.Required("toDate", "To Date"),
			validate.Date("toDate", "To Date"),
			validate.NotBefore("fromDate", "toDate", "To Date cannot be before From Date"),
			validate.Required("reason", "Reason"),
			validate.MaxLen("reason", "Reason", 250),
		},
		LocalSubmit: "Leave request submitted successfully",
		List: &screen.ListSpec{
			Path: "/api/Leave/GetLeaveRequests",
			Key:  "LeaveID",
			Row: func(rec backend.Record, refs screen.Refs) map[string]string {
				return map[string]string{
					"EmpCode":   rec.String("EmpCode"),
					"EmpName":   rec.String("EmpName"),
					"leaveType": refs.Label("leaveType", rec.String("LeaveTypeID"), "Leave Type"),
					"FromDate":  form.NormalizeDate(rec.String("FromDate")),
					"ToDate":    form.NormalizeDate(rec.String("ToDate")),
					"Days":      rec.String("Days"),
					"Status":    rec.String("Status"),
				}
			},
			Search: []string{"EmpCode", "EmpName", "leaveType", "Status"},
		},
		Columns: []screen.Column{
			{Key: "EmpCode", Label: "Emp Code"},
			{Key: "EmpName", Label: "Employee"},
			{Key: "leaveType", Label: "Leave Type"},
			{Key: "FromDate", Label: "From"},
			{Key: "ToDate", Label: "To"},
			{Key: "Days", Label: "Days"},
			{Key: "Status", Label: "Status"},
		},
		Delete: &screen.DeleteSpec{Path: "/api/Leave/CancelLeave", Param: "LeaveID"},
	}
}
