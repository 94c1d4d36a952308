package masters

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/platform/backend/backendtest"
)

type toasts struct{ got []screen.Toast }

func (t *toasts) Notify(toast screen.Toast) { t.got = append(t.got, toast) }

func (t *toasts) last() screen.Toast {
	if len(t.got) == 0 {
		return screen.Toast{}
	}
	return t.got[len(t.got)-1]
}

func open(t *testing.T, def *screen.Definition, fake *backendtest.Server) (*screen.Screen, *toasts) {
	t.Helper()
	n := &toasts{}
	s := screen.New(def, fake.Client, n, screen.WithDebounce(0))
	s.Mount(context.Background())
	return s, n
}

func set(t *testing.T, s *screen.Screen, field, value string) {
	t.Helper()
	require.NoError(t, s.Update(context.Background(), form.Field(field), form.Text(value)))
}

func TestDefinitionsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Definitions() {
		assert.False(t, seen[def.Name], def.Name)
		seen[def.Name] = true
		assert.NotEmpty(t, def.Columns, def.Name)
		assert.NotNil(t, def.Delete, def.Name)
	}
	assert.Len(t, seen, 11)
}

func TestHolidayToDateMustFollowFromDate(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetBranch", nil)
	fake.OK("/api/Master/GetHoliday", nil)
	s, n := open(t, Holiday(), fake)

	set(t, s, "holidayName", "Diwali")
	set(t, s, "fromDate", "2024-11-01")
	set(t, s, "toDate", "2024-11-01")
	s.Submit(context.Background())

	assert.Equal(t, "To Date must be after From Date", n.last().Message)
	assert.Empty(t, fake.CallsTo("/api/Master/SaveHoliday"))
}

func TestHolidaySavesDatesAndOptionalBranch(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetBranch", map[string]any{"table": []map[string]any{{"BranchID": 3, "BranchName": "Pune"}}})
	fake.OK("/api/Master/GetHoliday", map[string]any{"table": []map[string]any{
		{"HolidayID": 1, "HolidayName": "Holi", "FromDate": "2024-03-25T00:00:00", "ToDate": "2024-03-26T00:00:00", "BranchID": 0},
	}})
	fake.Handle("/api/Master/SaveHoliday", backendtest.Envelope(1, "Holiday saved", nil))
	s, n := open(t, Holiday(), fake)

	assert.Equal(t, "All Branches", s.State().Rows[0].Cells["branch"])
	assert.Equal(t, "2024-03-25", s.State().Rows[0].Cells["FromDate"])

	set(t, s, "holidayName", "Diwali")
	set(t, s, "fromDate", "2024-11-01")
	set(t, s, "toDate", "2024-11-02")
	s.Submit(context.Background())

	require.Len(t, fake.CallsTo("/api/Master/SaveHoliday"), 1)
	body := fake.CallsTo("/api/Master/SaveHoliday")[0].Body
	assert.Equal(t, "2024-11-01", body["FromDate"])
	assert.Equal(t, float64(0), body["BranchID"])
	assert.Equal(t, "Holiday saved", n.last().Message)
}

func TestShiftDeleteRejectedKeepsRow(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetShift", map[string]any{"table": []map[string]any{
		{"ShiftID": 7, "ShiftName": "General"},
		{"ShiftID": 8, "ShiftName": "Night", "IsNightShift": true},
	}})
	fake.Handle("/api/Master/DeleteShift", backendtest.Envelope(0, "Shift is assigned to employees", nil))
	s, n := open(t, Shift(), fake)

	require.NoError(t, s.RequestDelete("7"))
	require.NoError(t, s.ConfirmDelete(context.Background()))

	st := s.State()
	require.Len(t, st.Rows, 2)
	assert.Equal(t, "7", st.Rows[0].Key)
	assert.Equal(t, screen.PhaseIdle, st.Delete.Phase)
	assert.Equal(t, screen.LevelError, n.last().Level)
	assert.Equal(t, "Shift is assigned to employees", n.last().Message)
	assert.Equal(t, "Yes", st.Rows[1].Cells["night"])

	calls := fake.CallsTo("/api/Master/DeleteShift")
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "7", calls[0].Query.Get("ShiftID"))
}

func TestShiftRejectsBadClock(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetShift", nil)
	s, n := open(t, Shift(), fake)

	set(t, s, "shiftName", "General")
	set(t, s, "startTime", "9:00")
	s.Submit(context.Background())

	assert.Equal(t, "Start Time must be HH:MM", n.last().Message)
}

func TestDepartmentDeletePostsBody(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetDepartment", map[string]any{"table": []map[string]any{{"DeptID": 4, "DeptCode": "HR", "DeptName": "Human Resources"}}})
	fake.Handle("/api/Master/DeleteDepartment", backendtest.Envelope(1, "Deleted", nil))
	s, _ := open(t, Department(), fake)

	require.NoError(t, s.RequestDelete("4"))
	require.NoError(t, s.ConfirmDelete(context.Background()))

	calls := fake.CallsTo("/api/Master/DeleteDepartment")
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, map[string]any{"DeptID": float64(4)}, calls[0].Body)
	assert.Len(t, fake.CallsTo("/api/Master/GetDepartment"), 2)
}

func TestLocationDeleteIsLocalOnly(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetLocation", map[string]any{"table": []map[string]any{
		{"LocationID": 1, "LocationName": "Pune", "StateName": "MH", "PinCode": "411001"},
		{"LocationID": 2, "LocationName": "Nagpur", "StateName": "MH", "PinCode": "440001"},
	}})
	fake.Handle("/api/Master/DeleteLocation", backendtest.Envelope(1, "Deleted", nil))
	s, _ := open(t, Location(), fake)

	require.NoError(t, s.RequestDelete("1"))
	require.NoError(t, s.ConfirmDelete(context.Background()))

	require.Len(t, s.State().Rows, 1)
	assert.Equal(t, "2", s.State().Rows[0].Key)
	assert.Len(t, fake.CallsTo("/api/Master/GetLocation"), 1)
}

func TestLocationPinCodeDigits(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetLocation", nil)
	s, n := open(t, Location(), fake)

	set(t, s, "locationName", "Pune")
	set(t, s, "state", "Maharashtra")
	set(t, s, "pinCode", "4110")
	s.Submit(context.Background())

	assert.Equal(t, "Pin Code must be 6 digits", n.last().Message)
}

func TestBranchListUsesLocationLabels(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetLocation", map[string]any{"table": []map[string]any{{"LocationID": 1, "LocationName": "Pune"}}})
	fake.OK("/api/Master/GetBranch", map[string]any{"table": []map[string]any{
		{"BranchID": 10, "BranchCode": "PN", "BranchName": "Pune HQ", "LocationID": 1},
		{"BranchID": 11, "BranchCode": "XX", "BranchName": "Orphan", "LocationID": 5},
	}})
	s, _ := open(t, Branch(), fake)

	rows := s.State().Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Pune", rows[0].Cells["location"])
	assert.Equal(t, "Unknown Location (5)", rows[1].Cells["location"])

	s.Search("pune")
	assert.Len(t, s.State().Filtered, 1)

	require.NoError(t, s.Edit(context.Background(), "10"))
	st := s.State()
	assert.Equal(t, "10", st.Form.Text("branchID"))
	assert.Equal(t, "Pune", st.Form.Option("location").Label)
}

func TestGradeMaxNotBelowMin(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetGrade", nil)
	s, n := open(t, Grade(), fake)

	set(t, s, "gradeName", "G1")
	set(t, s, "minSalary", "20000")
	set(t, s, "maxSalary", "10000")
	s.Submit(context.Background())

	assert.Equal(t, "Maximum Salary cannot be less than Minimum Salary", n.last().Message)
}

func TestBankIFSC(t *testing.T) {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetBank", nil)
	fake.Handle("/api/Master/SaveBank", backendtest.Envelope(1, "", nil))
	s, n := open(t, Bank(), fake)

	set(t, s, "bankName", "State Bank")
	set(t, s, "ifsc", "SBIN123")
	set(t, s, "branchName", "Camp")
	s.Submit(context.Background())
	assert.Equal(t, "IFSC Code must look like ABCD0123456", n.last().Message)

	set(t, s, "ifsc", "SBIN0001234")
	s.Submit(context.Background())
	assert.Equal(t, "Saved successfully", n.last().Message)
}
