package employee

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/platform/backend/backendtest"
)

type toasts struct{ got []screen.Toast }

func (t *toasts) Notify(toast screen.Toast) { t.got = append(t.got, toast) }

func (t *toasts) last() string {
	if len(t.got) == 0 {
		return ""
	}
	return t.got[len(t.got)-1].Message
}

func table(rows ...map[string]any) map[string]any {
	return map[string]any{"table": rows}
}

func mount(t *testing.T) (*screen.Screen, *backendtest.Server, *toasts) {
	t.Helper()
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetBranch", table(map[string]any{"BranchID": 1, "BranchName": "Pune"}))
	fake.OK("/api/Master/GetDepartment", table(map[string]any{"DeptID": 2, "DeptName": "Accounts"}))
	fake.OK("/api/Master/GetDesignation", table(map[string]any{"DesignationID": 3, "DesignationName": "Clerk"}))
	fake.OK("/api/Master/GetCategory", table(map[string]any{"CategoryID": 4, "CategoryName": "Staff"}))
	fake.OK("/api/Master/GetShift", table(map[string]any{"ShiftID": 5, "ShiftName": "General"}))
	fake.OK("/api/Master/GetCollege", table(map[string]any{"CollegeID": 6, "CollegeName": "COEP"}))
	fake.OK(listPath, table(
		map[string]any{"EmpID": 100, "EmpCode": "E100", "FirstName": "Asha", "LastName": "Rao", "DeptID": 2, "DesignationID": 3},
	))
	n := &toasts{}
	s := screen.New(Master(), fake.Client, n, screen.WithDebounce(0))
	s.Mount(context.Background())
	return s, fake, n
}

func fill(t *testing.T, s *screen.Screen, values map[string]string) {
	t.Helper()
	for raw, value := range values {
		p, err := form.ParsePath(raw)
		require.NoError(t, err)
		require.NoError(t, s.Update(context.Background(), p, form.Text(value)), raw)
	}
}

func validEmployee() map[string]string {
	return map[string]string{
		"empCode":     "E200",
		"firstName":   "Ravi",
		"lastName":    "Kumar",
		"gender":      "M",
		"dob":         "1992-02-10",
		"doj":         "2021-06-01",
		"email":       "ravi@example.com",
		"mobile":      "9876543210",
		"branch":      "1",
		"department":  "2",
		"designation": "3",
	}
}

func TestListResolvesLabels(t *testing.T) {
	s, _, _ := mount(t)
	rows := s.State().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Asha Rao", rows[0].Cells["name"])
	assert.Equal(t, "Accounts", rows[0].Cells["department"])
}

func TestSaveSendsTypedSections(t *testing.T) {
	s, fake, n := mount(t)
	fake.Handle(savePath, backendtest.Envelope(1, "Employee saved", nil))

	fill(t, s, validEmployee())
	require.NoError(t, s.AddRow("experience"))
	fill(t, s, map[string]string{
		"family[0].name":             "Meena",
		"family[0].relation":         "Mother",
		"education[0].college":       "6",
		"education[0].qualification": "BCom",
		"education[0].passingYear":   "2013",
		"experience[1].company":      "Acme",
		"experience[1].fromDate":     "2015-01-01",
		"experience[1].toDate":       "2018-12-31",
	})
	photo := []byte("\x89PNG\r\n\x1a\nfake")
	require.NoError(t, s.Update(context.Background(), form.Field("photo"),
		form.Attachment(form.NewFile("me.png", "image/png", photo))))

	s.Submit(context.Background())
	require.Equal(t, "Employee saved", n.last())

	calls := fake.CallsTo(savePath)
	require.Len(t, calls, 1)
	body := calls[0].Body
	assert.Equal(t, "E200", body["EmpCode"])
	assert.Equal(t, float64(1), body["BranchID"])
	assert.Equal(t, "M", body["Gender"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(photo), body["Photo"])
	assert.Equal(t, []any{
		map[string]any{"Name": "Meena", "Relation": "Mother", "DOB": nil},
	}, body["FamilyDetails"])
	assert.Equal(t, []any{
		map[string]any{"CollegeID": float64(6), "Qualification": "BCom", "PassingYear": float64(2013), "Percentage": nil},
	}, body["EducationDetails"])
	assert.Len(t, body["ExperienceDetails"], 1)
	assert.Equal(t, []any{}, body["InsuranceDetails"])
}

func TestRowValidationNamesTheRow(t *testing.T) {
	s, fake, n := mount(t)
	fill(t, s, validEmployee())
	require.NoError(t, s.AddRow("experience"))
	fill(t, s, map[string]string{
		"experience[1].company":  "Acme",
		"experience[1].fromDate": "2018-01-01",
		"experience[1].toDate":   "2017-01-01",
	})

	s.Submit(context.Background())

	assert.Equal(t, "Row 2: To Date must be after From Date", n.last())
	assert.Empty(t, fake.CallsTo(savePath))
}

func TestFirstRowCannotBeRemoved(t *testing.T) {
	s, _, _ := mount(t)
	assert.ErrorIs(t, s.RemoveRow("family", 0), form.ErrProtectedRow)
	require.NoError(t, s.AddRow("family"))
	require.NoError(t, s.RemoveRow("family", 1))
	assert.Len(t, s.State().Form.Rows("family"), 1)
}

func TestEditRestoresAllTables(t *testing.T) {
	s, fake, _ := mount(t)
	photo := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))
	fake.OK(detailPath, map[string]any{
		"table": []map[string]any{{
			"EmpID": 100, "EmpCode": "E100", "FirstName": "Asha", "Gender": "F",
			"DOB": "1990-04-12T00:00:00", "BranchID": 1, "DeptID": 2, "ShiftID": 77, "Photo": photo,
		}},
		"table1": []map[string]any{{"Name": "Kiran", "Relation": "Spouse"}},
		"table2": []map[string]any{
			{"CollegeID": 6, "Qualification": "BSc"},
			{"CollegeID": 9, "Qualification": "MSc"},
		},
	})

	require.NoError(t, s.Edit(context.Background(), "100"))

	calls := fake.CallsTo(detailPath)
	require.Len(t, calls, 1)
	assert.Equal(t, "100", calls[0].Query.Get("EmpID"))

	st := s.State()
	assert.Equal(t, "100", st.Editing)
	assert.Equal(t, "Asha", st.Form.Text("firstName"))
	assert.Equal(t, "1990-04-12", st.Form.Text("dob"))
	assert.Equal(t, "Female", st.Form.Option("gender").Label)
	assert.Equal(t, "Unknown Shift (77)", st.Form.Option("shift").Label)
	require.NotNil(t, st.Form.File("photo"))
	assert.Equal(t, "image/png", st.Form.File("photo").ContentType)

	family := st.Form.Rows("family")
	require.Len(t, family, 1)
	assert.Equal(t, "Spouse", family[0].Option("relation").Value)
	education := st.Form.Rows("education")
	require.Len(t, education, 2)
	assert.Equal(t, "COEP", education[0].Option("college").Label)
	assert.Equal(t, "Unknown College (9)", education[1].Option("college").Label)
	assert.Len(t, st.Form.Rows("experience"), 1)
	assert.Len(t, st.Form.Rows("insurance"), 1)
}

func TestTemplateWorkbook(t *testing.T) {
	s, _, _ := mount(t)
	dl, err := s.Template()
	require.NoError(t, err)
	assert.Equal(t, "employees-template.xlsx", dl.Name)
	assert.Equal(t, "PK", string(dl.Data[:2]))
}
