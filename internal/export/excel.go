package export

import (
	"context"
	"fmt"
	"log/slog"

	"ohnitiel/sodapop/internal/config"
	"ohnitiel/sodapop/internal/soda"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Dados"

// Excel writes the result set as a single-sheet xlsx workbook with a
// bold frozen header, auto-sized columns and a styled table.
func Excel(
	ctx context.Context, data *soda.ResultSet,
	output string, columns []config.Column,
) error {
	columns, err := resolveColumns(data, columns)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.ErrorContext(ctx, "Error closing file", "error", err)
		}
	}()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	colsWidth, err := writeDataToSheet(f, data, columns)
	if err != nil {
		slog.ErrorContext(ctx, "Error writing data to sheet", "error", err)
		return err
	}

	for i, colWidth := range colsWidth {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, colWidth)
	}
	freezeHeader(f)

	if err := f.SaveAs(output); err != nil {
		slog.ErrorContext(ctx, "Error saving file", "error", err)
		return err
	}

	return nil
}

func writeDataToSheet(
	f *excelize.File, data *soda.ResultSet, columns []config.Column,
) (map[int]float64, error) {
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	colsWidth := make(map[int]float64, len(columns))

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = excelize.Cell{Value: col.Header, StyleID: headerStyle}
		colsWidth[i] = float64(len(col.Header))
	}
	sw.SetRow("A1", header)

	for i, rec := range data.Records {
		row := make([]any, len(columns))
		for j, col := range columns {
			val := rec.Field(col.Field)
			row[j] = val
			colsWidth[j] = max(colsWidth[j], float64(len(val)))
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		sw.SetRow(cell, row)
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(columns), data.RowCount+1)

	enabled := true
	err = sw.AddTable(&excelize.Table{
		Range:          fmt.Sprintf("A1:%s", lastCell),
		Name:           fmt.Sprintf("Tabela_%s", sheetName),
		StyleName:      "TableStyleMedium2",
		ShowRowStripes: &enabled,
	})
	if err != nil {
		return nil, err
	}

	return colsWidth, sw.Flush()
}

func freezeHeader(f *excelize.File) {
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomRight",
	})
}
