package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"spincraft-tracker/internal/worklog"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	logsSheet    = "Work Logs"
	summarySheet = "Summary"
)

var exportHeader = []string{
	"Employee", "Employee ID", "Date", "Start Time", "End Time", "Total Hours", "Status", "Notes",
}

func exportRecord(l worklog.WorkLogResponse) []string {
	return []string{
		l.EmployeeName,
		l.EmployeeID,
		l.Date,
		deref(l.StartTime),
		deref(l.EndTime),
		strconv.FormatFloat(l.TotalHours, 'f', -1, 64),
		string(l.Status),
		deref(l.Notes),
	}
}

// renderCSV writes a UTF-8 BOM first so spreadsheet apps pick the right encoding.
func renderCSV(logs []worklog.WorkLogResponse) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, l := range logs {
		if err := w.Write(exportRecord(l)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(logs []worklog.WorkLogResponse, summary Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", logsSheet); err != nil {
		return nil, err
	}
	if err := setRow(f, logsSheet, 1, toCells(exportHeader)); err != nil {
		return nil, err
	}
	for i, l := range logs {
		cells := toCells(exportRecord(l))
		cells[5] = l.TotalHours
		if err := setRow(f, logsSheet, i+2, cells); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	rows := [][]any{
		{"Employee", "Employee ID", "Total Hours", "Present Days", "Absent Days", "Holiday Days", "Overtime Hours"},
	}
	for _, es := range summary.Employees {
		rows = append(rows, []any{
			es.Name, es.EmployeeID, es.TotalHours, es.PresentDays, es.AbsentDays, es.HolidayDays, es.OvertimeHours,
		})
	}
	rows = append(rows, []any{
		"Total", "", summary.TotalHours, summary.PresentDays, summary.AbsentDays, summary.HolidayDays, summary.OvertimeHours,
	})
	for i, r := range rows {
		if err := setRow(f, summarySheet, i+1, r); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func exportFileName(start, end, format string) string {
	return fmt.Sprintf("time-tracking-report-%s-to-%s.%s", start, end, format)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
