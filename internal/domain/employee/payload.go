package employee

import (
	"strings"

	"hrmconsole/internal/domain/form"
)

// Row payloads. Blank inputs are sent as null.

type FamilyDetail struct {
	Name     *string `json:"Name"`
	Relation *string `json:"Relation"`
	DOB      *string `json:"DOB"`
}

type EducationDetail struct {
	CollegeID     *int64   `json:"CollegeID"`
	Qualification *string  `json:"Qualification"`
	PassingYear   *int64   `json:"PassingYear"`
	Percentage    *float64 `json:"Percentage"`
}

type ExperienceDetail struct {
	Company    *string  `json:"Company"`
	FromDate   *string  `json:"FromDate"`
	ToDate     *string  `json:"ToDate"`
	LastSalary *float64 `json:"LastSalary"`
}

type InsuranceDetail struct {
	PolicyNo   *string  `json:"PolicyNo"`
	Insurer    *string  `json:"Insurer"`
	SumAssured *float64 `json:"SumAssured"`
	ExpiryDate *string  `json:"ExpiryDate"`
}

func str(s form.State, field string) *string {
	v := strings.TrimSpace(s.Text(field))
	if v == "" {
		return nil
	}
	return &v
}

func date(s form.State, field string) *string {
	v := form.NormalizeDate(s.Text(field))
	if v == "" {
		return nil
	}
	return &v
}

func integer(s form.State, field string) *int64 {
	if strings.TrimSpace(s.Text(field)) == "" {
		return nil
	}
	n := s.Decimal(field).IntPart()
	return &n
}

func number(s form.State, field string) *float64 {
	if strings.TrimSpace(s.Text(field)) == "" {
		return nil
	}
	f, _ := s.Decimal(field).Float64()
	return &f
}

// rows maps each non-blank row of a section; a row counts as blank when its
// key field is empty.
func rows[T any](s form.State, section, key string, build func(form.State) T) []T {
	out := []T{}
	for _, row := range s.Rows(section) {
		if row.Get(key).IsBlank() {
			continue
		}
		out = append(out, build(row))
	}
	return out
}

func familyDetails(s form.State) []FamilyDetail {
	return rows(s, "family", "name", func(r form.State) FamilyDetail {
		return FamilyDetail{Name: str(r, "name"), Relation: str(r, "relation"), DOB: date(r, "dob")}
	})
}

func educationDetails(s form.State) []EducationDetail {
	return rows(s, "education", "qualification", func(r form.State) EducationDetail {
		return EducationDetail{
			CollegeID:     integer(r, "college"),
			Qualification: str(r, "qualification"),
			PassingYear:   integer(r, "passingYear"),
			Percentage:    number(r, "percentage"),
		}
	})
}

func experienceDetails(s form.State) []ExperienceDetail {
	return rows(s, "experience", "company", func(r form.State) ExperienceDetail {
		return ExperienceDetail{
			Company:    str(r, "company"),
			FromDate:   date(r, "fromDate"),
			ToDate:     date(r, "toDate"),
			LastSalary: number(r, "lastSalary"),
		}
	})
}

func insuranceDetails(s form.State) []InsuranceDetail {
	return rows(s, "insurance", "policyNo", func(r form.State) InsuranceDetail {
		return InsuranceDetail{
			PolicyNo:   str(r, "policyNo"),
			Insurer:    str(r, "insurer"),
			SumAssured: number(r, "sumAssured"),
			ExpiryDate: date(r, "expiryDate"),
		}
	})
}

// build assembles the SaveEmployee body: the personal tab through the field
// mapping plus one typed array per repeatable section.
func build(s form.State) (any, error) {
	payload := personal.Apply(s)
	payload["FamilyDetails"] = familyDetails(s)
	payload["EducationDetails"] = educationDetails(s)
	payload["ExperienceDetails"] = experienceDetails(s)
	payload["InsuranceDetails"] = insuranceDetails(s)
	return payload, nil
}
