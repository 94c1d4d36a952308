package masters

import (
	"regexp"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func Shift() *screen.Definition {
	def := &screen.Definition{
		Name:   "shift",
		Title:  "Shift Master",
		Entity: "shifts",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"shiftID":      text,
				"shiftName":    text,
				"startTime":    text,
				"endTime":      text,
				"graceMinutes": text,
				"nightShift":   unset,
			})
		},
		ReadOnly: []string{"shiftID"},
		Rules: []validate.Rule{
			validate.Required("shiftName", "Shift Name"),
			validate.Required("startTime", "Start Time"),
			validate.Pattern("startTime", clockPattern, "Start Time must be HH:MM"),
			validate.Required("endTime", "End Time"),
			validate.Pattern("endTime", clockPattern, "End Time must be HH:MM"),
			validate.Range("graceMinutes", "Grace Minutes", 0, 120),
		},
		Fields: screen.Mapping{
			{Form: "shiftID", API: "ShiftID", As: screen.AsInt},
			{Form: "shiftName", API: "ShiftName"},
			{Form: "startTime", API: "StartTime"},
			{Form: "endTime", API: "EndTime"},
			{Form: "graceMinutes", API: "GraceMinutes", As: screen.AsInt},
			{Form: "nightShift", API: "IsNightShift", As: screen.AsFlag},
		},
		List: &screen.ListSpec{
			Row: func(rec backend.Record, _ screen.Refs) map[string]string {
				return map[string]string{
					"ShiftName":    rec.String("ShiftName"),
					"StartTime":    rec.String("StartTime"),
					"EndTime":      rec.String("EndTime"),
					"GraceMinutes": rec.String("GraceMinutes"),
					"night":        yesNo(rec.Bool("IsNightShift")),
				}
			},
			Search: []string{"ShiftName"},
		},
		Columns: []screen.Column{
			{Key: "ShiftName", Label: "Shift"},
			{Key: "StartTime", Label: "Start"},
			{Key: "EndTime", Label: "End"},
			{Key: "GraceMinutes", Label: "Grace (min)"},
			{Key: "night", Label: "Night Shift"},
		},
	}
	return crud(def, "Shift", "ShiftID")
}

func Holiday() *screen.Definition {
	def := &screen.Definition{
		Name:       "holiday",
		Title:      "Holiday Master",
		Entity:     "holidays",
		References: []screen.Reference{reference("branch", "Branch", "BranchID", "BranchName")},
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"holidayID":   text,
				"holidayName": text,
				"fromDate":    text,
				"toDate":      text,
				"branch":      none,
			})
		},
		ReadOnly: []string{"holidayID"},
		Rules: []validate.Rule{
			validate.Required("holidayName", "Holiday Name"),
			validate.Letters("holidayName", "Holiday Name"),
			validate.Required("fromDate", "From Date"),
			validate.Date("fromDate", "From Date"),
			validate.Required("toDate", "To Date"),
			validate.Date("toDate", "To Date"),
			validate.After("fromDate", "toDate", "To Date must be after From Date"),
		},
		Fields: screen.Mapping{
			{Form: "holidayID", API: "HolidayID", As: screen.AsInt},
			{Form: "holidayName", API: "HolidayName"},
			{Form: "fromDate", API: "FromDate", As: screen.AsDate},
			{Form: "toDate", API: "ToDate", As: screen.AsDate},
			{Form: "branch", API: "BranchID", As: screen.AsOptionInt, Ref: "branch", Noun: "Branch"},
		},
		List: &screen.ListSpec{
			Row: func(rec backend.Record, refs screen.Refs) map[string]string {
				branch := "All Branches"
				if id := rec.String("BranchID"); id != "" && id != "0" {
					branch = refs.Label("branch", id, "Branch")
				}
				return map[string]string{
					"HolidayName": rec.String("HolidayName"),
					"FromDate":    form.NormalizeDate(rec.String("FromDate")),
					"ToDate":      form.NormalizeDate(rec.String("ToDate")),
					"branch":      branch,
				}
			},
			Search: []string{"HolidayName", "branch"},
		},
		Columns: []screen.Column{
			{Key: "HolidayName", Label: "Holiday"},
			{Key: "FromDate", Label: "From"},
			{Key: "ToDate", Label: "To"},
			{Key: "branch", Label: "Branch"},
		},
	}
	return crud(def, "Holiday", "HolidayID")
}

func LeaveType() *screen.Definition {
	def := &screen.Definition{
		Name:   "leavetype",
		Title:  "Leave Type Master",
		Entity: "leave-types",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"leaveTypeID":   text,
				"leaveTypeName": text,
				"shortName":     text,
				"maxDays":       text,
				"carryForward":  unset,
				"paid":          unset,
			})
		},
		ReadOnly: []string{"leaveTypeID"},
		Rules: []validate.Rule{
			validate.Required("leaveTypeName", "Leave Type"),
			validate.Letters("leaveTypeName", "Leave Type"),
			validate.Required("shortName", "Short Name"),
			validate.MaxLen("shortName", "Short Name", 5),
			validate.Range("maxDays", "Max Days", 0, 365),
		},
		Fields: screen.Mapping{
			{Form: "leaveTypeID", API: "LeaveTypeID", As: screen.AsInt},
			{Form: "leaveTypeName", API: "LeaveTypeName"},
			{Form: "shortName", API: "ShortName"},
			{Form: "maxDays", API: "MaxDays", As: screen.AsInt},
			{Form: "carryForward", API: "CarryForward", As: screen.AsFlag},
			{Form: "paid", API: "IsPaid", As: screen.AsFlag},
		},
		List: &screen.ListSpec{
			Row: func(rec backend.Record, _ screen.Refs) map[string]string {
				return map[string]string{
					"LeaveTypeName": rec.String("LeaveTypeName"),
					"ShortName":     rec.String("ShortName"),
					"MaxDays":       rec.String("MaxDays"),
					"carry":         yesNo(rec.Bool("CarryForward")),
					"paid":          yesNo(rec.Bool("IsPaid")),
				}
			},
			Search: []string{"LeaveTypeName", "ShortName"},
		},
		Columns: []screen.Column{
			{Key: "LeaveTypeName", Label: "Leave Type"},
			{Key: "ShortName", Label: "Short"},
			{Key: "MaxDays", Label: "Max Days"},
			{Key: "carry", Label: "Carry Forward"},
			{Key: "paid", Label: "Paid"},
		},
	}
	return crud(def, "LeaveType", "LeaveTypeID")
}
