package attendance

import (
	"time"

	attendanceerrors "spincraft-tracker/internal/attendance/errors"
)

const monthLayout = "2006-01"

// ParseMonth returns the first day of a YYYY-MM month in UTC.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidMonth
	}
	return t, nil
}

// MonthBounds returns the first and last ISO date of the month starting at first.
func MonthBounds(first time.Time) (string, string) {
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}

// BuildCalendar lays out a Sunday-first month grid. The cells before day one belong to
// the previous month and carry no logs.
func BuildCalendar(first time.Time, today string, logsByDate map[string][]CalendarLog) []CalendarDay {
	lead := int(first.Weekday())
	_, lastDate := MonthBounds(first)
	last, _ := time.Parse(dateLayout, lastDate)

	days := make([]CalendarDay, 0, lead+last.Day())
	for i := lead; i > 0; i-- {
		d := first.AddDate(0, 0, -i).Format(dateLayout)
		days = append(days, CalendarDay{
			Date:           d,
			IsToday:        d == today,
			IsCurrentMonth: false,
			Logs:           []CalendarLog{},
		})
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		logs := logsByDate[date]
		if logs == nil {
			logs = []CalendarLog{}
		}
		days = append(days, CalendarDay{
			Date:           date,
			IsToday:        date == today,
			IsCurrentMonth: true,
			Logs:           logs,
		})
	}
	return days
}
