package timeline

import (
	"bytes"
	"fmt"

	"kennel-scheduler/internal/domain/rooms"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Occupancy"

// fixedColumns precede a las columnas de días.
var fixedColumns = []string{"Room", "Type", "Status"}

var statusFill = map[rooms.Status]string{
	rooms.StatusOccupied:    "#F4B183",
	rooms.StatusReserved:    "#9DC3E6",
	rooms.StatusMaintenance: "#BFBFBF",
}

// ExportXLSX genera la grilla como planilla: una fila por habitación y una columna por día.
func ExportXLSX(g Grid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	fills := map[rooms.Status]int{}
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create fill style: %w", err)
		}
		fills[status] = id
	}

	header := make([]any, 0, len(fixedColumns)+len(g.Columns))
	for _, h := range fixedColumns {
		header = append(header, h)
	}
	for _, day := range g.Columns {
		header = append(header, day.Time().Format("Mon 01-02"))
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range g.Rows {
		rowNum := i + 2
		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		values := []any{row.RoomName, string(row.RoomType), string(row.Status)}
		if err := f.SetSheetRow(exportSheet, first, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}

		if row.Placement == nil {
			continue
		}
		for c := row.Placement.StartCol; c < row.Placement.StartCol+row.Placement.Span; c++ {
			cell, err := excelize.CoordinatesToCellName(len(fixedColumns)+c+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, row.PetID); err != nil {
				return nil, err
			}
			if style, ok := fills[row.Status]; ok {
				if err := f.SetCellStyle(exportSheet, cell, cell, style); err != nil {
					return nil, err
				}
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 18)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
