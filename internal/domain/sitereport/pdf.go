package sitereport

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WriteReportPDF renders a daily site report.
func WriteReportPDF(w io.Writer, projectName string, report SiteReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Daily Site Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Project: %s", projectName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", report.Date.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Weather: %s", report.Weather))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Crew on site: %d", report.CrewCount))
	pdf.Ln(10)

	writeSection(pdf, "Work Completed", report.WorkCompleted)
	writeSection(pdf, "Delays", report.Delays)
	writeSection(pdf, "Visitors", report.Visitors)

	if report.SubmittedBy != "" {
		pdf.Ln(5)
		pdf.Cell(0, 8, fmt.Sprintf("Submitted by: %s", report.SubmittedBy))
	}

	return pdf.Output(w)
}

// WriteFLHAPDF renders a field-level hazard assessment form.
func WriteFLHAPDF(w io.Writer, projectName, employeeName string, form FLHA) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Field Level Hazard Assessment")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Project: %s", projectName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Worker: %s", employeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", form.Date.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Task: %s", form.Task))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 8, "Hazard", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Severity", "1", 0, "L", false, 0, "")
	pdf.CellFormat(90, 8, "Control", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range form.Hazards {
		pdf.CellFormat(70, 8, item.Hazard, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, item.Severity, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 8, item.Control, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(5)
	status := "Pending review"
	if form.Reviewed {
		status = "Reviewed"
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", status))

	return pdf.Output(w)
}

func writeSection(pdf *gofpdf.Fpdf, title, body string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	if body == "" {
		body = "-"
	}
	pdf.MultiCell(0, 6, body, "", "L", false)
	pdf.Ln(3)
}
