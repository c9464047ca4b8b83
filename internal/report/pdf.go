package report

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
)

// PDF renders records as a paginated landscape table. The header row repeats
// on every page.
func PDF(title string, columns []Column, records interface{}) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(columns))

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 250)
		for _, col := range columns {
			pdf.CellFormat(colW, 8, col.Label, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetHeaderFuncMode(func() {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		writeHeader()
	}, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "", 8)
	rows := rowsOf(records, columns)
	for _, cells := range rows {
		for _, value := range cells {
			pdf.CellFormat(colW, 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.Ln(3)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d records", len(rows)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing PDF to buffer: %v", err)
	}
	return &buf, nil
}

// SendPDF renders records to a PDF document and writes it as a download.
func SendPDF(c *fiber.Ctx, filename, title string, columns []Column, records interface{}) error {
	buf, err := PDF(title, columns, records)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not generate PDF")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, filename))
	return c.Send(buf.Bytes())
}
