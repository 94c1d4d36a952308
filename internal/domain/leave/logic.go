package leave

import (
	"time"

	"github.com/go-faster/errors"
)

var ErrRange = errors.New("end date before start date")

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	start, end = day(start), day(end)
	if end.Before(start) {
		return 0, ErrRange
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// DayCount is the leave length shown on the request form. A half-day
// request always counts 0.5 whatever the span.
func DayCount(start, end time.Time, halfDay bool) (float64, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return 0, err
	}
	if halfDay {
		return 0.5, nil
	}
	return days, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
