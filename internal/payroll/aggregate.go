package payroll

import (
	"sort"
	"strings"

	"spincraft-tracker/internal/employee"
	"spincraft-tracker/internal/worklog"
)

type Row struct {
	EmployeeID string
	Name       string
	TotalHours float64
	HourlyRate float64
	TotalPay   float64
}

type Summary struct {
	Rows       []Row
	GrandTotal float64
	TotalHours float64
}

// Aggregate groups payable logs by employee and prices them at each employee's current
// rate. Employees with no payable log are omitted, as are logs of employees missing from
// the roster. Rows are ordered by name, then id, so the result does not depend on log
// order.
func Aggregate(logs []worklog.WorkLog, employees []employee.Employee, policy Policy) Summary {
	roster := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		roster[e.ID.String()] = e
	}

	hours := make(map[string]float64)
	for _, l := range logs {
		if !policy.Pays(l.Status) {
			continue
		}
		id := l.EmployeeID.String()
		if _, ok := roster[id]; !ok {
			continue
		}
		hours[id] += policy.PayableHours(l)
	}

	summary := Summary{Rows: make([]Row, 0, len(hours))}
	for id, h := range hours {
		e := roster[id]
		summary.Rows = append(summary.Rows, Row{
			EmployeeID: id,
			Name:       e.Name,
			TotalHours: h,
			HourlyRate: e.SalaryPerHour,
			TotalPay:   h * e.SalaryPerHour,
		})
	}

	sort.Slice(summary.Rows, func(i, j int) bool {
		a, b := strings.ToLower(summary.Rows[i].Name), strings.ToLower(summary.Rows[j].Name)
		if a != b {
			return a < b
		}
		return summary.Rows[i].EmployeeID < summary.Rows[j].EmployeeID
	})

	for _, r := range summary.Rows {
		summary.GrandTotal += r.TotalPay
		summary.TotalHours += r.TotalHours
	}
	return summary
}
