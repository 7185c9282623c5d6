package report

import (
	"sort"
	"strings"

	"spincraft-tracker/internal/worklog"
)

// StandardDayHours is the length of a regular shift. Overtime logs only count the hours
// past it.
const StandardDayHours = 8.0

// Stats are the dashboard rollups. They are recomputed from the log set on every request.
type Stats struct {
	PresentToday        int
	TotalHoursThisMonth float64
	OvertimeHours       float64
}

// Dashboard scopes logs to today and to today's calendar month by prefix match on the ISO
// date. today must be YYYY-MM-DD.
func Dashboard(logs []worklog.WorkLog, today string) Stats {
	month := today
	if len(today) >= 7 {
		month = today[:7]
	}

	var st Stats
	for _, l := range logs {
		if l.Date == today && l.Status == worklog.StatusPresent {
			st.PresentToday++
		}
		if !strings.HasPrefix(l.Date, month) {
			continue
		}
		st.TotalHoursThisMonth += l.TotalHours
		if l.Status == worklog.StatusOvertime {
			st.OvertimeHours += overtimeBeyondDay(l.TotalHours)
		}
	}
	return st
}

func overtimeBeyondDay(hours float64) float64 {
	if hours <= StandardDayHours {
		return 0
	}
	return hours - StandardDayHours
}

type EmployeeStats struct {
	EmployeeID    string
	Name          string
	TotalHours    float64
	PresentDays   int
	AbsentDays    int
	HolidayDays   int
	OvertimeHours float64
}

type Summary struct {
	TotalHours    float64
	PresentDays   int
	AbsentDays    int
	HolidayDays   int
	OvertimeHours float64
	Employees     []EmployeeStats
}

// Summarize rolls up an already filtered result set. Overtime days count as present days.
// Employees are ordered by name, then id.
func Summarize(logs []worklog.WorkLogResponse) Summary {
	var sum Summary
	byEmployee := make(map[string]*EmployeeStats)

	for _, l := range logs {
		es, ok := byEmployee[l.EmployeeID]
		if !ok {
			es = &EmployeeStats{EmployeeID: l.EmployeeID, Name: l.EmployeeName}
			byEmployee[l.EmployeeID] = es
		}

		sum.TotalHours += l.TotalHours
		es.TotalHours += l.TotalHours

		switch l.Status {
		case worklog.StatusPresent:
			sum.PresentDays++
			es.PresentDays++
		case worklog.StatusOvertime:
			sum.PresentDays++
			es.PresentDays++
			extra := overtimeBeyondDay(l.TotalHours)
			sum.OvertimeHours += extra
			es.OvertimeHours += extra
		case worklog.StatusAbsent:
			sum.AbsentDays++
			es.AbsentDays++
		case worklog.StatusHoliday:
			sum.HolidayDays++
			es.HolidayDays++
		}
	}

	sum.Employees = make([]EmployeeStats, 0, len(byEmployee))
	for _, es := range byEmployee {
		sum.Employees = append(sum.Employees, *es)
	}
	sort.Slice(sum.Employees, func(i, j int) bool {
		a, b := sum.Employees[i], sum.Employees[j]
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.EmployeeID < b.EmployeeID
	})
	return sum
}
