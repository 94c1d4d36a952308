package payroll

import (
	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

// headScreen builds the allowance and deduction head masters, which differ
// only in naming and the deduction percentage.
func headScreen(kind, title string, percentage bool) *screen.Definition {
	fields := map[string]form.Value{
		"headID":    form.Text(""),
		"headName":  form.Text(""),
		"payType":   form.Choice(form.Option{}),
		"taxable":   form.Flag(false),
		"statutory": form.Flag(false),
	}
	rules := []validate.Rule{
		validate.Required("headName", "Head Name"),
		validate.Selected("payType", "Pay Type"),
	}
	mapping := screen.Mapping{
		{Form: "headID", API: "HeadID", As: screen.AsInt},
		{Form: "headName", API: "HeadName"},
		{Form: "payType", API: "PayType", As: screen.AsOptionInt, Ref: "payType", Noun: "Pay Type"},
		{Form: "taxable", API: "IsTaxable", As: screen.AsFlag},
		{Form: "statutory", API: "IsStatutory", As: screen.AsFlag},
	}
	columns := []screen.Column{
		{Key: "HeadName", Label: "Head"},
		{Key: "payType", Label: "Pay Type"},
		{Key: "taxable", Label: "Taxable"},
		{Key: "statutory", Label: "Statutory"},
	}
	if percentage {
		fields["percentage"] = form.Text("")
		rules = append(rules, validate.Range("percentage", "Percentage", 0, 100))
		mapping = append(mapping, screen.FieldMap{Form: "percentage", API: "Percentage", As: screen.AsNumber})
		columns = append(columns, screen.Column{Key: "Percentage", Label: "Percentage"})
	}

	return &screen.Definition{
		Name:       kind + "head",
		Title:      title,
		Entity:     kind + "-heads",
		References: []screen.Reference{{Key: "payType", Static: PayTypes}},
		Defaults: func(screen.Refs) form.State {
			return form.New(fields)
		},
		ReadOnly: []string{"headID"},
		Rules:    rules,
		Fields:   mapping,
		Submit:   []screen.Step{{Path: "/api/Payroll/Save" + headEntity(kind)}},
		List: &screen.ListSpec{
			Path: "/api/Payroll/Get" + headEntity(kind),
			Key:  "HeadID",
			Row: func(rec backend.Record, refs screen.Refs) map[string]string {
				return map[string]string{
					"HeadName":   rec.String("HeadName"),
					"payType":    refs.Label("payType", rec.String("PayType"), "Pay Type"),
					"taxable":    yesNo(rec.Bool("IsTaxable")),
					"statutory":  yesNo(rec.Bool("IsStatutory")),
					"Percentage": rec.String("Percentage"),
				}
			},
			Search: []string{"HeadName", "payType"},
		},
		Columns: columns,
		Edit:    &screen.EditSpec{},
		Delete:  &screen.DeleteSpec{Path: "/api/Payroll/Delete" + headEntity(kind), Param: "HeadID"},
	}
}

func headEntity(kind string) string {
	if kind == "deduction" {
		return "DeductionHead"
	}
	return "AllowanceHead"
}

func AllowanceHead() *screen.Definition {
	return headScreen("allowance", "Allowance Head", false)
}

func DeductionHead() *screen.Definition {
	return headScreen("deduction", "Deduction Head", true)
}
