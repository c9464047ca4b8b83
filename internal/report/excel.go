package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// Excel builds a workbook with a merged title row, a styled header row, one
// row per record and a footer carrying the generation timestamp and record
// count.
func Excel(title string, columns []Column, records interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Report"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, err
	}

	// Title row, merged across all columns
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	f.SetCellValue(sheetName, "A1", title)
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)
	}

	// Header row
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, col.Label)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 2, 2, headerStyle)
	}

	rows := rowsOf(records, columns)
	for rowIndex, cells := range rows {
		for colIndex, value := range cells {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+3)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Footer: generated timestamp + record count
	footerRow := len(rows) + 4
	if err := f.MergeCell(sheetName, fmt.Sprintf("A%d", footerRow), fmt.Sprintf("%s%d", lastCol, footerRow)); err != nil {
		return nil, err
	}
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", footerRow),
		fmt.Sprintf("Generated %s, %d records", time.Now().Format("2006-01-02 15:04:05"), len(rows)))

	for i := 1; i <= len(columns); i++ {
		name, err := excelize.ColumnNumberToName(i)
		if err != nil {
			return nil, err
		}
		f.SetColWidth(sheetName, name, name, 18)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}
	return &buf, nil
}

// SendExcel renders records to a workbook and writes it as a download.
func SendExcel(c *fiber.Ctx, filename, title string, columns []Column, records interface{}) error {
	buf, err := Excel(title, columns, records)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not generate spreadsheet")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, filename))
	return c.Send(buf.Bytes())
}
