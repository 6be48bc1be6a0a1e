package timetracking

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"crewsite/internal/domain/payperiod"
)

// WriteRegisterPDF renders the payroll register for a period.
func WriteRegisterPDF(w io.Writer, companyName string, period payperiod.Period, rows []RegisterRow) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payroll Register")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	if companyName != "" {
		pdf.Cell(0, 8, companyName)
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Label()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 8, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Regular", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Overtime", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Pay", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(70, 8, fmt.Sprintf("%s, %s", row.LastName, row.FirstName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", row.RegularHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", row.OvertimeHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", row.TotalHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", row.HourlyRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", row.Pay), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	summary := Summarize(rows)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 8, fmt.Sprintf("Totals (%d employees)", summary.EmployeeCount), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", summary.RegularHours), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", summary.OvertimeHours), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", summary.RegularHours+summary.OvertimeHours), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", summary.TotalPay), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	return pdf.Output(w)
}
