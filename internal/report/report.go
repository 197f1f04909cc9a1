// Package report renders the order list into an xlsx workbook for the
// export endpoint.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrNoRows = errors.New("no orders matched the export filter")

const sheetName = "Заказы"

// Row is one exported order, already formatted for display: dates as
// dd.mm.yyyy, money with a comma decimal separator, statuses as their
// labels.
type Row struct {
	ID             uint
	Number         string
	CreateDate     string
	CompletionDate string
	TotalValue     string
	Type           string
	Description    string
	PaymentStatus  string
	Status         string
	Manager        string
	Executors      []string
}

var headers = []string{
	"№", "Номер заказа", "Дата заключения", "Дата завершения",
	"Сумма", "Тип мебели", "Описание", "Статус оплаты",
	"Статус заказа", "Менеджер", "Исполнители",
}

// Generate builds the workbook and returns it as a buffer ready to be
// streamed as an attachment.
func Generate(rows []Row) (*bytes.Buffer, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	if err := setupSheet(f, len(rows)); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		data := []interface{}{
			row.ID,
			row.Number,
			row.CreateDate,
			row.CompletionDate,
			row.TotalValue,
			row.Type,
			row.Description,
			row.PaymentStatus,
			row.Status,
			row.Manager,
			strings.Join(row.Executors, ", "),
		}
		if err := f.SetSheetRow(sheetName, cell, &data); err != nil {
			return nil, fmt.Errorf("set row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func setupSheet(f *excelize.File, rowCount int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("new style: %w", err)
	}

	if err := f.SetRowHeight(sheetName, 1, 20); err != nil {
		return fmt.Errorf("set header height: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("set headers: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "K1", headerStyle); err != nil {
		return fmt.Errorf("style headers: %w", err)
	}

	widths := map[string]float64{
		"A": 8, "B": 16, "C": 16, "D": 16, "E": 14, "F": 18,
		"G": 40, "H": 22, "I": 26, "J": 24, "K": 36,
	}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.AddTable(sheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:K%d", rowCount+1),
		Name:      "orders_table",
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("add table: %w", err)
	}
	return nil
}
