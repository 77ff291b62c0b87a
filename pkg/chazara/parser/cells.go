// Package parser reads generated charts back: worksheet cells, column blocks
// and print setup from workbooks, page count and text from PDF documents.
package parser

import (
	"strconv"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts cell text from a sheet.
// It returns a slice of CellRow containing non-empty rows.
func ExtractCells(f *excelize.File, sheetName string) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return cellRows(rows), nil
}

func cellRows(rows [][]string) []models.CellRow {
	var result []models.CellRow
	for rowIdx, row := range rows {
		cellMap := make(map[string]string)
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellMap[strconv.Itoa(colIdx+1)] = cellValue // 1-based column index as string
		}
		if len(cellMap) > 0 {
			result = append(result, models.CellRow{
				R: rowIdx + 1,
				C: cellMap,
			})
		}
	}
	return result
}

// Cell returns the text of a 1-based column in a row, or "".
func Cell(row models.CellRow, col int) string {
	return row.C[strconv.Itoa(col)]
}
