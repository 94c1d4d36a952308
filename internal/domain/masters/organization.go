package masters

import (
	"net/http"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

func Location() *screen.Definition {
	def := &screen.Definition{
		Name:   "location",
		Title:  "Location Master",
		Entity: "locations",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"locationID":   text,
				"locationName": text,
				"state":        text,
				"pinCode":      text,
			})
		},
		ReadOnly: []string{"locationID"},
		Rules: []validate.Rule{
			validate.Required("locationName", "Location Name"),
			validate.Letters("locationName", "Location Name"),
			validate.Required("state", "State"),
			validate.Digits("pinCode", "Pin Code", 6),
		},
		Fields: screen.Mapping{
			{Form: "locationID", API: "LocationID", As: screen.AsInt},
			{Form: "locationName", API: "LocationName"},
			{Form: "state", API: "StateName"},
			{Form: "pinCode", API: "PinCode"},
		},
		List: &screen.ListSpec{Search: []string{"LocationName", "StateName", "PinCode"}},
		Columns: []screen.Column{
			{Key: "LocationName", Label: "Location"},
			{Key: "StateName", Label: "State"},
			{Key: "PinCode", Label: "Pin Code"},
		},
	}
	crud(def, "Location", "LocationID")
	def.Delete.LocalOnly = true
	return def
}

func Branch() *screen.Definition {
	def := &screen.Definition{
		Name:       "branch",
		Title:      "Branch Master",
		Entity:     "branches",
		References: []screen.Reference{reference("location", "Location", "LocationID", "LocationName")},
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"branchID":   text,
				"branchCode": text,
				"branchName": text,
				"location":   none,
				"address":    text,
			})
		},
		ReadOnly: []string{"branchID"},
		Rules: []validate.Rule{
			validate.Required("branchCode", "Branch Code"),
			validate.Required("branchName", "Branch Name"),
			validate.Selected("location", "Location"),
		},
		Fields: screen.Mapping{
			{Form: "branchID", API: "BranchID", As: screen.AsInt},
			{Form: "branchCode", API: "BranchCode"},
			{Form: "branchName", API: "BranchName"},
			{Form: "location", API: "LocationID", As: screen.AsOptionInt, Ref: "location", Noun: "Location"},
			{Form: "address", API: "Address"},
		},
		List: &screen.ListSpec{
			Row: func(rec backend.Record, refs screen.Refs) map[string]string {
				return map[string]string{
					"BranchCode": rec.String("BranchCode"),
					"BranchName": rec.String("BranchName"),
					"location":   refs.Label("location", rec.String("LocationID"), "Location"),
					"Address":    rec.String("Address"),
				}
			},
			Search: []string{"BranchCode", "BranchName", "location"},
		},
		Columns: []screen.Column{
			{Key: "BranchCode", Label: "Code"},
			{Key: "BranchName", Label: "Branch"},
			{Key: "location", Label: "Location"},
			{Key: "Address", Label: "Address"},
		},
	}
	return crud(def, "Branch", "BranchID")
}

func Department() *screen.Definition {
	def := &screen.Definition{
		Name:   "department",
		Title:  "Department Master",
		Entity: "departments",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"deptID":   text,
				"deptCode": text,
				"deptName": text,
			})
		},
		ReadOnly: []string{"deptID"},
		Rules: []validate.Rule{
			validate.Required("deptCode", "Department Code"),
			validate.Required("deptName", "Department Name"),
			validate.Letters("deptName", "Department Name"),
		},
		Fields: screen.Mapping{
			{Form: "deptID", API: "DeptID", As: screen.AsInt},
			{Form: "deptCode", API: "DeptCode"},
			{Form: "deptName", API: "DeptName"},
		},
		List: &screen.ListSpec{Search: []string{"DeptCode", "DeptName"}},
		Columns: []screen.Column{
			{Key: "DeptCode", Label: "Code"},
			{Key: "DeptName", Label: "Department"},
		},
	}
	crud(def, "Department", "DeptID")
	def.Delete.Method = http.MethodPost
	return def
}

func Designation() *screen.Definition {
	def := &screen.Definition{
		Name:       "designation",
		Title:      "Designation Master",
		Entity:     "designations",
		References: []screen.Reference{reference("department", "Department", "DeptID", "DeptName")},
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"designationID":   text,
				"designationName": text,
				"department":      none,
			})
		},
		ReadOnly: []string{"designationID"},
		Rules: []validate.Rule{
			validate.Required("designationName", "Designation Name"),
			validate.Letters("designationName", "Designation Name"),
			validate.Selected("department", "Department"),
		},
		Fields: screen.Mapping{
			{Form: "designationID", API: "DesignationID", As: screen.AsInt},
			{Form: "designationName", API: "DesignationName"},
			{Form: "department", API: "DeptID", As: screen.AsOptionInt, Ref: "department", Noun: "Department"},
		},
		List: &screen.ListSpec{
			Row: func(rec backend.Record, refs screen.Refs) map[string]string {
				return map[string]string{
					"DesignationName": rec.String("DesignationName"),
					"department":      refs.Label("department", rec.String("DeptID"), "Department"),
				}
			},
			Search: []string{"DesignationName", "department"},
		},
		Columns: []screen.Column{
			{Key: "DesignationName", Label: "Designation"},
			{Key: "department", Label: "Department"},
		},
	}
	return crud(def, "Designation", "DesignationID")
}

func Category() *screen.Definition {
	def := &screen.Definition{
		Name:   "category",
		Title:  "Category Master",
		Entity: "categories",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"categoryID":   text,
				"categoryName": text,
				"description":  text,
			})
		},
		ReadOnly: []string{"categoryID"},
		Rules: []validate.Rule{
			validate.Required("categoryName", "Category Name"),
			validate.MaxLen("description", "Description", 200),
		},
		Fields: screen.Mapping{
			{Form: "categoryID", API: "CategoryID", As: screen.AsInt},
			{Form: "categoryName", API: "CategoryName"},
			{Form: "description", API: "Description"},
		},
		List: &screen.ListSpec{Search: []string{"CategoryName", "Description"}},
		Columns: []screen.Column{
			{Key: "CategoryName", Label: "Category"},
			{Key: "Description", Label: "Description"},
		},
	}
	return crud(def, "Category", "CategoryID")
}

func Grade() *screen.Definition {
	def := &screen.Definition{
		Name:   "grade",
		Title:  "Grade Master",
		Entity: "grades",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"gradeID":   text,
				"gradeName": text,
				"minSalary": text,
				"maxSalary": text,
			})
		},
		ReadOnly: []string{"gradeID"},
		Rules: []validate.Rule{
			validate.Required("gradeName", "Grade Name"),
			validate.Numeric("minSalary", "Minimum Salary"),
			validate.Numeric("maxSalary", "Maximum Salary"),
			validate.NotLess("minSalary", "maxSalary", "Maximum Salary cannot be less than Minimum Salary"),
		},
		Fields: screen.Mapping{
			{Form: "gradeID", API: "GradeID", As: screen.AsInt},
			{Form: "gradeName", API: "GradeName"},
			{Form: "minSalary", API: "MinSalary", As: screen.AsNumber},
			{Form: "maxSalary", API: "MaxSalary", As: screen.AsNumber},
		},
		List: &screen.ListSpec{Search: []string{"GradeName"}},
		Columns: []screen.Column{
			{Key: "GradeName", Label: "Grade"},
			{Key: "MinSalary", Label: "Min Salary"},
			{Key: "MaxSalary", Label: "Max Salary"},
		},
	}
	return crud(def, "Grade", "GradeID")
}
