package payroll

import (
	"fmt"
	"math/rand"
	"testing"

	"spincraft-tracker/internal/employee"
	"spincraft-tracker/internal/worklog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wl(emp uuid.UUID, date string, hours float64, status worklog.Status) worklog.WorkLog {
	return worklog.WorkLog{ID: uuid.New(), EmployeeID: emp, Date: date, TotalHours: hours, Status: status}
}

func TestAggregate_SingleEmployeeSingleDay(t *testing.T) {
	e1 := employee.Employee{ID: uuid.New(), Name: "e1", SalaryPerHour: 50, IsActive: true}

	summary := Aggregate(
		[]worklog.WorkLog{wl(e1.ID, "2024-03-01", 8, worklog.StatusPresent)},
		[]employee.Employee{e1},
		DefaultPolicy(),
	)

	require.Len(t, summary.Rows, 1)
	assert.Equal(t, e1.ID.String(), summary.Rows[0].EmployeeID)
	assert.Equal(t, 8.0, summary.Rows[0].TotalHours)
	assert.Equal(t, 400.0, summary.Rows[0].TotalPay)
	assert.Equal(t, 400.0, summary.GrandTotal)
	assert.Equal(t, 8.0, summary.TotalHours)
}

func TestAggregate_EmptySet(t *testing.T) {
	summary := Aggregate(nil, nil, DefaultPolicy())
	assert.NotNil(t, summary.Rows)
	assert.Empty(t, summary.Rows)
	assert.Zero(t, summary.GrandTotal)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	roster := []employee.Employee{
		{ID: uuid.New(), Name: "Citra", SalaryPerHour: 42.5},
		{ID: uuid.New(), Name: "Andi", SalaryPerHour: 30},
		{ID: uuid.New(), Name: "Budi", SalaryPerHour: 55.25},
	}
	var logs []worklog.WorkLog
	for i, e := range roster {
		for d := 1; d <= 10; d++ {
			logs = append(logs, wl(e.ID, fmt.Sprintf("2024-03-%02d", d), float64(4+i+d%3), worklog.StatusPresent))
		}
	}

	want := Aggregate(logs, roster, DefaultPolicy())
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffledLogs := append([]worklog.WorkLog(nil), logs...)
		rng.Shuffle(len(shuffledLogs), func(a, b int) { shuffledLogs[a], shuffledLogs[b] = shuffledLogs[b], shuffledLogs[a] })
		shuffledRoster := append([]employee.Employee(nil), roster...)
		rng.Shuffle(len(shuffledRoster), func(a, b int) { shuffledRoster[a], shuffledRoster[b] = shuffledRoster[b], shuffledRoster[a] })

		got := Aggregate(shuffledLogs, shuffledRoster, DefaultPolicy())
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "Andi", want.Rows[0].Name)
}

func TestAggregate_OmitsEmployeesWithoutPayableLogs(t *testing.T) {
	worker := employee.Employee{ID: uuid.New(), Name: "Worker", SalaryPerHour: 10}
	absentee := employee.Employee{ID: uuid.New(), Name: "Absentee", SalaryPerHour: 10}

	summary := Aggregate([]worklog.WorkLog{
		wl(worker.ID, "2024-03-01", 8, worklog.StatusPresent),
		wl(absentee.ID, "2024-03-01", 0, worklog.StatusAbsent),
		wl(absentee.ID, "2024-03-02", 8, worklog.StatusHoliday),
	}, []employee.Employee{worker, absentee}, DefaultPolicy())

	require.Len(t, summary.Rows, 1)
	assert.Equal(t, "Worker", summary.Rows[0].Name)
}

func TestAggregate_OvertimeCap(t *testing.T) {
	e := employee.Employee{ID: uuid.New(), Name: "Lembur", SalaryPerHour: 10}
	logs := []worklog.WorkLog{
		wl(e.ID, "2024-03-01", 14, worklog.StatusOvertime),
		wl(e.ID, "2024-03-02", 10, worklog.StatusOvertime),
		wl(e.ID, "2024-03-03", 14, worklog.StatusPresent),
	}

	capped := Aggregate(logs, []employee.Employee{e}, DefaultPolicy())
	assert.Equal(t, 12.0+10+14, capped.TotalHours)

	uncapped, err := NewPolicy(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 38.0, Aggregate(logs, []employee.Employee{e}, uncapped).TotalHours)

	presentOnly := DefaultPolicy().WithStatuses([]worklog.Status{worklog.StatusPresent})
	assert.Equal(t, 14.0, Aggregate(logs, []employee.Employee{e}, presentOnly).TotalHours)
}

func TestAggregate_KeepsFullPrecision(t *testing.T) {
	e := employee.Employee{ID: uuid.New(), Name: "Presisi", SalaryPerHour: 33.333}
	summary := Aggregate([]worklog.WorkLog{
		wl(e.ID, "2024-03-01", 1, worklog.StatusPresent),
		wl(e.ID, "2024-03-02", 1, worklog.StatusPresent),
		wl(e.ID, "2024-03-03", 1, worklog.StatusPresent),
	}, []employee.Employee{e}, DefaultPolicy())

	assert.InDelta(t, 99.999, summary.GrandTotal, 1e-9)
	assert.Equal(t, 100.0, round2(summary.GrandTotal))
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy([]string{"present"}, 10)
	require.NoError(t, err)
	assert.True(t, p.Pays(worklog.StatusPresent))
	assert.False(t, p.Pays(worklog.StatusOvertime))
	assert.Equal(t, "present", p.statusKey())

	_, err = NewPolicy([]string{"sick"}, 10)
	assert.Error(t, err)

	_, err = NewPolicy(nil, 25)
	assert.Error(t, err)
}
