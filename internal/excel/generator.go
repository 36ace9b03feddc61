package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aldanbek/gigworks-billing/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the best-clients earnings report as a workbook with a
// summary block followed by the ranked client table.
func (g *Generator) Generate(report model.EarningsReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Best clients"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "Best paying clients")
	set("A2", "Period start")
	set("B2", report.PeriodStart.Format("2006-01-02"))
	set("A3", "Period end")
	set("B3", report.PeriodEnd.Format("2006-01-02"))
	set("A4", "Total paid")
	set("B4", report.TotalPaid().StringFixed(2))

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "#")
	set(fmt.Sprintf("B%d", tableRow), "Client")
	set(fmt.Sprintf("C%d", tableRow), "Paid")

	for i, client := range report.Clients {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), i+1)
		set(fmt.Sprintf("B%d", row), client.FullName)
		set(fmt.Sprintf("C%d", row), client.TotalPaid.StringFixed(2))
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "C", 16)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
