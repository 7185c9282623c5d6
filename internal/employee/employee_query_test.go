package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(rows []EmployeeResponse) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestListQuery_Apply(t *testing.T) {
	roster := func() []EmployeeResponse {
		return []EmployeeResponse{
			{ID: "e-3", Name: "Citra", JoiningDate: "2023-01-10", SalaryPerHour: 30},
			{ID: "e-1", Name: "andi", JoiningDate: "2024-05-01", SalaryPerHour: 60},
			{ID: "e-2", Name: "Budi", JoiningDate: "2022-07-15", SalaryPerHour: 45},
		}
	}

	cases := []struct {
		name  string
		query ListQuery
		want  []string
	}{
		{name: "defaults to name ascending ignoring case", query: ListQuery{}, want: []string{"andi", "Budi", "Citra"}},
		{name: "joining date descending", query: ListQuery{SortBy: "joining_date", SortDir: "desc"}, want: []string{"andi", "Citra", "Budi"}},
		{name: "salary ascending", query: ListQuery{SortBy: "salary_per_hour"}, want: []string{"Citra", "Budi", "andi"}},
		{name: "search by name", query: ListQuery{Q: " BUD "}, want: []string{"Budi"}},
		{name: "search by id", query: ListQuery{Q: "e-3"}, want: []string{"Citra"}},
		{name: "no match", query: ListQuery{Q: "zed"}, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(tc.query.Apply(roster())))
		})
	}
}
