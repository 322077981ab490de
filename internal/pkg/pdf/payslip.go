package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PayslipLine is one labeled amount on a payslip.
type PayslipLine struct {
	Label  string
	Amount string
}

type Payslip struct {
	CompanyName  string
	PeriodLabel  string
	EmployeeName string
	EmployeeCode string
	Role         string
	Lines        []PayslipLine
	TotalLabel   string
	TotalAmount  string
	Note         string
}

// RenderPayslip renders a single-page A4 payslip.
func RenderPayslip(p Payslip) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, p.CompanyName)
	doc.Ln(10)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 7, fmt.Sprintf("Payslip - %s", p.PeriodLabel))
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(40, 7, "Employee")
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 7, fmt.Sprintf("%s (%s)", p.EmployeeName, p.EmployeeCode))
	doc.Ln(7)

	if p.Role != "" {
		doc.SetFont("Helvetica", "B", 11)
		doc.Cell(40, 7, "Role")
		doc.SetFont("Helvetica", "", 11)
		doc.Cell(0, 7, p.Role)
		doc.Ln(7)
	}
	doc.Ln(5)

	doc.SetFillColor(240, 240, 240)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(120, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, line := range p.Lines {
		doc.CellFormat(120, 8, line.Label, "1", 0, "L", false, 0, "")
		doc.CellFormat(50, 8, line.Amount, "1", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(120, 8, p.TotalLabel, "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 8, p.TotalAmount, "1", 1, "R", true, 0, "")

	if p.Note != "" {
		doc.Ln(8)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, "Note: "+p.Note, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
