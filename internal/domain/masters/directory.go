package masters

import (
	"regexp"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/domain/validate"
)

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

func Bank() *screen.Definition {
	def := &screen.Definition{
		Name:   "bank",
		Title:  "Bank Master",
		Entity: "banks",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"bankID":     text,
				"bankName":   text,
				"ifsc":       text,
				"branchName": text,
			})
		},
		ReadOnly: []string{"bankID"},
		Rules: []validate.Rule{
			validate.Required("bankName", "Bank Name"),
			validate.Letters("bankName", "Bank Name"),
			validate.Required("ifsc", "IFSC Code"),
			validate.Pattern("ifsc", ifscPattern, "IFSC Code must look like ABCD0123456"),
			validate.Required("branchName", "Branch Name"),
		},
		Fields: screen.Mapping{
			{Form: "bankID", API: "BankID", As: screen.AsInt},
			{Form: "bankName", API: "BankName"},
			{Form: "ifsc", API: "IFSCCode"},
			{Form: "branchName", API: "BranchName"},
		},
		List: &screen.ListSpec{Search: []string{"BankName", "IFSCCode", "BranchName"}},
		Columns: []screen.Column{
			{Key: "BankName", Label: "Bank"},
			{Key: "IFSCCode", Label: "IFSC"},
			{Key: "BranchName", Label: "Branch"},
		},
	}
	return crud(def, "Bank", "BankID")
}

func College() *screen.Definition {
	def := &screen.Definition{
		Name:   "college",
		Title:  "College Master",
		Entity: "colleges",
		Defaults: func(screen.Refs) form.State {
			return form.New(map[string]form.Value{
				"collegeID":   text,
				"collegeName": text,
				"university":  text,
				"city":        text,
			})
		},
		ReadOnly: []string{"collegeID"},
		Rules: []validate.Rule{
			validate.Required("collegeName", "College Name"),
			validate.Required("university", "University"),
			validate.Letters("city", "City"),
		},
		Fields: screen.Mapping{
			{Form: "collegeID", API: "CollegeID", As: screen.AsInt},
			{Form: "collegeName", API: "CollegeName"},
			{Form: "university", API: "University"},
			{Form: "city", API: "City"},
		},
		List: &screen.ListSpec{Search: []string{"CollegeName", "University", "City"}},
		Columns: []screen.Column{
			{Key: "CollegeName", Label: "College"},
			{Key: "University", Label: "University"},
			{Key: "City", Label: "City"},
		},
	}
	return crud(def, "College", "CollegeID")
}
