// Package employee declares the tabbed employee master: personal details,
// a photo and four repeatable sections.
package employee

import (
	"strings"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

const (
	savePath   = "/api/Employee/SaveEmployee"
	listPath   = "/api/Employee/GetEmployeeList"
	detailPath = "/api/Employee/GetEmployeeByID"
	deletePath = "/api/Employee/DeleteEmployee"
)

func Definitions() []*screen.Definition {
	return []*screen.Definition{Master()}
}

var genders = []form.Option{
	{Value: "M", Label: "Male"},
	{Value: "F", Label: "Female"},
	{Value: "O", Label: "Other"},
}

var relations = []form.Option{
	{Value: "Father", Label: "Father"},
	{Value: "Mother", Label: "Mother"},
	{Value: "Spouse", Label: "Spouse"},
	{Value: "Son", Label: "Son"},
	{Value: "Daughter", Label: "Daughter"},
	{Value: "Sibling", Label: "Sibling"},
}

func master(key, name, id, label string) screen.Reference {
	return screen.Reference{Key: key, Path: "/api/Master/Get" + name, Value: id, Label: label}
}

var personal = screen.Mapping{
	{Form: "empID", API: "EmpID", As: screen.AsInt},
	{Form: "empCode", API: "EmpCode"},
	{Form: "firstName", API: "FirstName"},
	{Form: "lastName", API: "LastName"},
	{Form: "gender", API: "Gender", As: screen.AsOption, Ref: "gender", Noun: "Gender"},
	{Form: "dob", API: "DOB", As: screen.AsDate},
	{Form: "doj", API: "DOJ", As: screen.AsDate},
	{Form: "email", API: "Email"},
	{Form: "mobile", API: "Mobile"},
	{Form: "branch", API: "BranchID", As: screen.AsOptionInt, Ref: "branch", Noun: "Branch"},
	{Form: "department", API: "DeptID", As: screen.AsOptionInt, Ref: "department", Noun: "Department"},
	{Form: "designation", API: "DesignationID", As: screen.AsOptionInt, Ref: "designation", Noun: "Designation"},
	{Form: "category", API: "CategoryID", As: screen.AsOptionInt, Ref: "category", Noun: "Category"},
	{Form: "shift", API: "ShiftID", As: screen.AsOptionInt, Ref: "shift", Noun: "Shift"},
	{Form: "photo", API: "Photo", As: screen.AsBase64},
}

// Section mappings restore rows from the detail tables and resolve row
// option fields.
var sections = []struct {
	name    string
	table   string
	mapping screen.Mapping
}{
	{"family", "table1", screen.Mapping{
		{Form: "name", API: "Name"},
		{Form: "relation", API: "Relation", As: screen.AsOption, Ref: "relation", Noun: "Relation"},
		{Form: "dob", API: "DOB", As: screen.AsDate},
	}},
	{"education", "table2", screen.Mapping{
		{Form: "college", API: "CollegeID", As: screen.AsOptionInt, Ref: "college", Noun: "College"},
		{Form: "qualification", API: "Qualification"},
		{Form: "passingYear", API: "PassingYear"},
		{Form: "percentage", API: "Percentage"},
	}},
	{"experience", "table3", screen.Mapping{
		{Form: "company", API: "Company"},
		{Form: "fromDate", API: "FromDate", As: screen.AsDate},
		{Form: "toDate", API: "ToDate", As: screen.AsDate},
		{Form: "lastSalary", API: "LastSalary"},
	}},
	{"insurance", "table4", screen.Mapping{
		{Form: "policyNo", API: "PolicyNo"},
		{Form: "insurer", API: "Insurer"},
		{Form: "sumAssured", API: "SumAssured"},
		{Form: "expiryDate", API: "ExpiryDate", As: screen.AsDate},
	}},
}

func blankRows() map[string]form.State {
	return map[string]form.State{
		"family": form.New(map[string]form.Value{
			"name": form.Text(""), "relation": form.Choice(form.Option{}), "dob": form.Text(""),
		}),
		"education": form.New(map[string]form.Value{
			"college": form.Choice(form.Option{}), "qualification": form.Text(""),
			"passingYear": form.Text(""), "percentage": form.Text(""),
		}),
		"experience": form.New(map[string]form.Value{
			"company": form.Text(""), "fromDate": form.Text(""), "toDate": form.Text(""), "lastSalary": form.Text(""),
		}),
		"insurance": form.New(map[string]form.Value{
			"policyNo": form.Text(""), "insurer": form.Text(""), "sumAssured": form.Text(""), "expiryDate": form.Text(""),
		}),
	}
}

func defaults(screen.Refs) form.State {
	values := map[string]form.Value{
		"photo": {},
	}
	for _, fm := range personal {
		switch fm.As {
		case screen.AsOption, screen.AsOptionInt:
			values[fm.Form] = form.Choice(form.Option{})
		case screen.AsBase64:
		default:
			values[fm.Form] = form.Text("")
		}
	}
	for name, blank := range blankRows() {
		values[name] = form.Rows(blank)
	}
	return form.New(values)
}

// restore rebuilds the form from GetEmployeeByID: personal details in
// "table" and the sections in table1 to table4. A section with no rows gets
// one blank row.
func restore(tables map[string][]backend.Record, refs screen.Refs) (form.State, error) {
	main := tables["table"]
	if len(main) == 0 {
		return form.State{}, &backend.Error{Kind: backend.ErrApplication, Message: "Employee not found"}
	}
	st := personal.Restore(main[0], refs)
	blanks := blankRows()
	for _, sec := range sections {
		restored := sec.mapping.RestoreRows(tables[sec.table], refs)
		if len(restored) == 0 {
			restored = []form.State{blanks[sec.name]}
		}
		st = st.Set(sec.name, form.Rows(restored...))
	}
	return st, nil
}

func fullName(rec backend.Record) string {
	return strings.TrimSpace(rec.String("FirstName") + " " + rec.String("LastName"))
}

func rules() []validate.Rule {
	return []validate.Rule{
		validate.Required("empCode", "Employee Code"),
		validate.Required("firstName", "First Name"),
		validate.Letters("firstName", "First Name"),
		validate.Letters("lastName", "Last Name"),
		validate.Selected("gender", "Gender"),
		validate.Required("dob", "Date of Birth"),
		validate.Date("dob", "Date of Birth"),
		validate.Required("doj", "Date of Joining"),
		validate.Date("doj", "Date of Joining"),
		validate.After("dob", "doj", "Date of Joining must be after Date of Birth"),
		validate.Email("email", "Email"),
		validate.Required("mobile", "Mobile"),
		validate.Digits("mobile", "Mobile", 10),
		validate.Selected("branch", "Branch"),
		validate.Selected("department", "Department"),
		validate.Selected("designation", "Designation"),
		validate.EachRow("family",
			validate.Letters("name", "Name"),
			validate.Date("dob", "Date of Birth"),
		),
		validate.EachRow("education",
			validate.Digits("passingYear", "Passing Year", 4),
			validate.Range("percentage", "Percentage", 0, 100),
		),
		validate.EachRow("experience",
			validate.Date("fromDate", "From Date"),
			validate.Date("toDate", "To Date"),
			validate.After("fromDate", "toDate", "To Date must be after From Date"),
			validate.Numeric("lastSalary", "Last Salary"),
		),
		validate.EachRow("insurance",
			validate.Numeric("sumAssured", "Sum Assured"),
			validate.Date("expiryDate", "Expiry Date"),
		),
	}
}

func Master() *screen.Definition {
	return &screen.Definition{
		Name:   "employee",
		Title:  "Employee Master",
		Entity: "employees",
		References: []screen.Reference{
			{Key: "gender", Static: genders},
			{Key: "relation", Static: relations},
			master("branch", "Branch", "BranchID", "BranchName"),
			master("department", "Department", "DeptID", "DeptName"),
			master("designation", "Designation", "DesignationID", "DesignationName"),
			master("category", "Category", "CategoryID", "CategoryName"),
			master("shift", "Shift", "ShiftID", "ShiftName"),
			master("college", "College", "CollegeID", "CollegeName"),
		},
		Defaults: defaults,
		Sections: blankRows(),
		ReadOnly: []string{"empID"},
		Rules:    rules(),
		Fields:   personal,
		Submit:   []screen.Step{{Path: savePath, Build: build}},
		List: &screen.ListSpec{
			Path: listPath,
			Key:  "EmpID",
			Row: func(rec backend.Record, refs screen.Refs) map[string]string {
				return map[string]string{
					"EmpCode":     rec.String("EmpCode"),
					"name":        fullName(rec),
					"department":  refs.Label("department", rec.String("DeptID"), "Department"),
					"designation": refs.Label("designation", rec.String("DesignationID"), "Designation"),
					"DOJ":         form.NormalizeDate(rec.String("DOJ")),
					"Mobile":      rec.String("Mobile"),
				}
			},
			Search: []string{"EmpCode", "name", "department", "designation", "Mobile"},
		},
		Columns: []screen.Column{
			{Key: "EmpCode", Label: "Emp Code"},
			{Key: "name", Label: "Name"},
			{Key: "department", Label: "Department"},
			{Key: "designation", Label: "Designation"},
			{Key: "DOJ", Label: "Date of Joining"},
			{Key: "Mobile", Label: "Mobile"},
		},
		Edit:   &screen.EditSpec{Path: detailPath, Param: "EmpID", Restore: restore},
		Delete: &screen.DeleteSpec{Path: deletePath, Param: "EmpID"},
		Template: &screen.TemplateSpec{
			Sheet: "Employees",
			Headers: []string{
				"EmpCode", "FirstName", "LastName", "Gender", "DOB", "DOJ", "Email", "Mobile",
				"BranchID", "DeptID", "DesignationID", "CategoryID", "ShiftID",
			},
			Sample: []string{
				"E100", "Asha", "Rao", "F", "1990-04-12", "2020-01-01", "asha@example.com", "9876543210",
				"1", "2", "3", "1", "1",
			},
		},
	}
}
