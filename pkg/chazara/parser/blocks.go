package parser

import (
	"fmt"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/xuri/excelize/v2"
)

// DetectBlocks finds the side-by-side column blocks of a chart sheet.
// Every block starts with a header cell repeating the label of cell A1.
func DetectBlocks(f *excelize.File, sheetName string) ([]models.BlockRange, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return blockRanges(rows)
}

func blockRanges(rows [][]string) ([]models.BlockRange, error) {
	if len(rows) == 0 || len(rows[0]) == 0 || rows[0][0] == "" {
		return nil, nil
	}
	header := rows[0]

	// Block starts are the columns repeating the unit label
	var starts []int
	for colIdx, label := range header {
		if label == header[0] {
			starts = append(starts, colIdx)
		}
	}

	last := lastHeaderColumn(header)
	blocks := make([]models.BlockRange, 0, len(starts))
	for i, start := range starts {
		end := last
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}

		dataRows := countDataRows(rows, start)
		startCell, err := excelize.CoordinatesToCellName(start+1, 1)
		if err != nil {
			return nil, err
		}
		endCell, err := excelize.CoordinatesToCellName(end+1, dataRows+1)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, models.BlockRange{
			Ref:      fmt.Sprintf("%s:%s", startCell, endCell),
			C1:       start + 1,
			C2:       end + 1,
			DataRows: dataRows,
		})
	}
	return blocks, nil
}

// lastHeaderColumn returns the 0-based index of the last non-empty header cell.
func lastHeaderColumn(header []string) int {
	for colIdx := len(header) - 1; colIdx >= 0; colIdx-- {
		if header[colIdx] != "" {
			return colIdx
		}
	}
	return 0
}

// countDataRows counts the contiguous rows below the header holding a unit label in col.
func countDataRows(rows [][]string, col int) int {
	count := 0
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if col >= len(row) || row[col] == "" {
			break
		}
		count++
	}
	return count
}
