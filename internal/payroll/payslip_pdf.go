package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

func slipLines(calc SalaryCalculation, employeeName string) []string {
	lines := []string{
		"Salary Slip",
		"",
		fmt.Sprintf("Employee: %s", employeeName),
		fmt.Sprintf("Employee ID: %s", calc.EmployeeID),
		fmt.Sprintf("Period: %s to %s", calc.StartDate, calc.EndDate),
		fmt.Sprintf("Calculated on: %s", calc.CalculationDate),
		"",
		fmt.Sprintf("Payable hours: %.2f", calc.TotalHours),
		fmt.Sprintf("Hourly rate: %.2f", calc.HourlyRate),
		fmt.Sprintf("Total salary: %.2f", calc.TotalSalary),
		"",
		fmt.Sprintf("Status: %s", strings.ToUpper(calc.Status)),
	}
	if calc.PaidAt != nil {
		lines = append(lines, fmt.Sprintf("Paid at: %s", calc.PaidAt.UTC().Format("2006-01-02 15:04 MST")))
	}
	return lines
}

// renderSalarySlip writes a one page PDF 1.4 document with one Helvetica text line per entry.
func renderSalarySlip(lines []string) []byte {
	var text strings.Builder
	text.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		if i > 0 {
			text.WriteString("T* ")
		}
		fmt.Fprintf(&text, "(%s) Tj\n", pdfEscape(line))
	}
	text.WriteString("ET")
	stream := text.String()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xref)
	return out.Bytes()
}

// pdfEscape escapes string delimiters and drops characters outside printable ASCII, which
// the built-in Helvetica encoding cannot show.
func pdfEscape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r >= 32 && r < 127:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func slugify(v string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(v) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
