package chazara

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/ukaji3/chazara-go/pkg/chazara/parser"
	"github.com/xuri/excelize/v2"
)

// Inspection is the read-back view of a generated chart file.
// Exactly one of Workbook and PDF is set.
type Inspection struct {
	Workbook *models.ChartWorkbook `json:"workbook,omitempty"`
	PDF      *models.PDFSummary    `json:"pdf,omitempty"`
}

// Inspect reads a generated .xlsx or .pdf chart back.
func Inspect(path string) (*Inspection, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		wb, err := InspectWorkbook(path)
		if err != nil {
			return nil, err
		}
		return &Inspection{Workbook: wb}, nil
	case ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		summary, err := parser.SummarizePDFBytes(data)
		if err != nil {
			return nil, err
		}
		return &Inspection{PDF: &summary}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, filepath.Ext(path))
	}
}

// InspectWorkbook extracts the cells, column blocks and print setup of every sheet.
func InspectWorkbook(path string) (*models.ChartWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	wb := &models.ChartWorkbook{
		BookName:   filepath.Base(path),
		SheetOrder: f.GetSheetList(),
		Sheets:     make(map[string]models.SheetData),
	}

	for _, sheetName := range wb.SheetOrder {
		rows, err := parser.ExtractCells(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q cells: %w", sheetName, err)
		}

		blocks, err := parser.DetectBlocks(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q blocks: %w", sheetName, err)
		}

		columns := 0
		if len(blocks) > 0 {
			columns = blocks[len(blocks)-1].C2
		}
		setup, err := parser.ExtractPrintSetup(f, sheetName, columns)
		if err != nil {
			return nil, fmt.Errorf("sheet %q print setup: %w", sheetName, err)
		}

		wb.Sheets[sheetName] = models.SheetData{
			Rows:   rows,
			Blocks: blocks,
			Setup:  setup,
		}
	}

	return wb, nil
}
