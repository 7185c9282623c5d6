package employee

import (
	"sort"
	"strings"
)

// Apply filters rows by a case-insensitive match on name or id and sorts them in place.
// Ties keep their store order.
func (q ListQuery) Apply(rows []EmployeeResponse) []EmployeeResponse {
	if needle := strings.ToLower(strings.TrimSpace(q.Q)); needle != "" {
		kept := rows[:0:0]
		for _, e := range rows {
			if strings.Contains(strings.ToLower(e.Name), needle) || strings.Contains(strings.ToLower(e.ID), needle) {
				kept = append(kept, e)
			}
		}
		rows = kept
	}

	less := byName
	switch q.SortBy {
	case "joining_date":
		less = func(a, b EmployeeResponse) bool { return a.JoiningDate < b.JoiningDate }
	case "salary_per_hour":
		less = func(a, b EmployeeResponse) bool { return a.SalaryPerHour < b.SalaryPerHour }
	}
	desc := q.SortDir == "desc"

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return rows
}

func byName(a, b EmployeeResponse) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}
