package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/platform/backend/backendtest"
)

type toasts struct{ got []screen.Toast }

func (t *toasts) Notify(toast screen.Toast) { t.got = append(t.got, toast) }

func mount(t *testing.T) (*screen.Screen, *backendtest.Server, *toasts) {
	t.Helper()
	fake := backendtest.New(t)
	fake.OK(leaveTypesPath, map[string]any{"table": []map[string]any{{"LeaveTypeID": 1, "LeaveTypeName": "Casual"}}})
	fake.OK("/api/Leave/GetLeaveRequests", map[string]any{"table": []map[string]any{
		{"LeaveID": 31, "EmpCode": "E100", "EmpName": "Asha Rao", "LeaveTypeID": 1, "Status": "Pending"},
		{"LeaveID": 32, "EmpCode": "E200", "EmpName": "Ravi", "LeaveTypeID": 4, "Status": "Approved"},
	}})
	n := &toasts{}
	s := screen.New(Request(), fake.Client, n, screen.WithDebounce(0))
	s.Mount(context.Background())
	return s, fake, n
}

func fill(t *testing.T, s *screen.Screen, values map[string]string) {
	t.Helper()
	for field, value := range values {
		require.NoError(t, s.Update(context.Background(), form.Field(field), form.Text(value)))
	}
}

func TestDerivedDaysFollowHalfDay(t *testing.T) {
	s, _, _ := mount(t)
	fill(t, s, map[string]string{"fromDate": "2024-07-01", "toDate": "2024-07-03"})
	assert.Equal(t, "3", s.View().Derived["days"])

	fill(t, s, map[string]string{"halfDay": "true"})
	assert.Equal(t, "0.5", s.View().Derived["days"])

	fill(t, s, map[string]string{"toDate": "2024-06-30"})
	assert.Equal(t, "", s.View().Derived["days"])
}

func TestSubmitIsLocal(t *testing.T) {
	s, fake, n := mount(t)
	before := len(fake.Calls())
	fill(t, s, map[string]string{
		"empCode":   "E100",
		"leaveType": "1",
		"fromDate":  "2024-07-01",
		"toDate":    "2024-07-01",
		"reason":    "Family function",
	})

	s.Submit(context.Background())

	require.NotEmpty(t, n.got)
	assert.Equal(t, "Leave request submitted successfully", n.got[len(n.got)-1].Message)
	assert.Len(t, fake.Calls(), before)
	assert.Equal(t, "", s.State().Form.Text("empCode"))
}

func TestToDateNotBeforeFromDate(t *testing.T) {
	s, _, n := mount(t)
	fill(t, s, map[string]string{
		"empCode":   "E100",
		"leaveType": "1",
		"fromDate":  "2024-07-02",
		"toDate":    "2024-07-01",
		"reason":    "x",
	})
	s.Submit(context.Background())

	assert.Equal(t, "To Date cannot be before From Date", n.got[len(n.got)-1].Message)
}

func TestCancelLeaveUsesQuery(t *testing.T) {
	s, fake, _ := mount(t)
	fake.Handle("/api/Leave/CancelLeave", backendtest.Envelope(1, "Leave cancelled", nil))

	assert.Equal(t, "Unknown Leave Type (4)", s.State().Rows[1].Cells["leaveType"])
	require.NoError(t, s.RequestDelete("31"))
	require.NoError(t, s.ConfirmDelete(context.Background()))

	calls := fake.CallsTo("/api/Leave/CancelLeave")
	require.Len(t, calls, 1)
	assert.Equal(t, "31", calls[0].Query.Get("LeaveID"))
}
