package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"spincraft-tracker/internal/worklog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleLogs() []worklog.WorkLogResponse {
	start, end := "09:00", "17:30"
	notes := `site visit, "north" wing`
	return []worklog.WorkLogResponse{
		{
			EmployeeID:   "e1",
			EmployeeName: "Rina",
			Date:         "2024-03-01",
			StartTime:    &start,
			EndTime:      &end,
			TotalHours:   8.5,
			Status:       worklog.StatusPresent,
			Notes:        &notes,
		},
		{EmployeeID: "e2", EmployeeName: "Dimas", Date: "2024-03-01", Status: worklog.StatusAbsent},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := renderCSV(sampleLogs())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{"Rina", "e1", "2024-03-01", "09:00", "17:30", "8.5", "present", `site visit, "north" wing`}, records[1])
	assert.Equal(t, []string{"Dimas", "e2", "2024-03-01", "", "", "0", "absent", ""}, records[2])
}

func TestRenderXLSX(t *testing.T) {
	logs := sampleLogs()
	out, err := renderXLSX(logs, Summarize(logs))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{logsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(logsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "Rina", rows[1][0])
	assert.Equal(t, "8.5", rows[1][5])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "Total", summary[3][0])
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "time-tracking-report-2024-03-01-to-2024-03-31.csv", exportFileName("2024-03-01", "2024-03-31", FormatCSV))
}
