package parser

import (
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintSetup reads the page layout, margins, frozen panes and the
// widths of the first columns columns of a sheet.
func ExtractPrintSetup(f *excelize.File, sheetName string, columns int) (models.PrintSetup, error) {
	var setup models.PrintSetup

	layout, err := f.GetPageLayout(sheetName)
	if err != nil {
		return setup, err
	}
	if layout.Orientation != nil {
		setup.Orientation = *layout.Orientation
	}
	if layout.Size != nil {
		setup.PaperSize = *layout.Size
	}
	if layout.FitToWidth != nil {
		setup.FitToWidth = *layout.FitToWidth
	}
	if layout.FitToHeight != nil {
		setup.FitToHeight = *layout.FitToHeight
	}

	props, err := f.GetSheetProps(sheetName)
	if err != nil {
		return setup, err
	}
	if props.FitToPage != nil {
		setup.FitToPage = *props.FitToPage
	}

	margins, err := f.GetPageMargins(sheetName)
	if err != nil {
		return setup, err
	}
	if margins.Horizontally != nil {
		setup.CenteredH = *margins.Horizontally
	}
	if margins.Left != nil {
		setup.MarginLeft = *margins.Left
	}
	if margins.Top != nil {
		setup.MarginTop = *margins.Top
	}

	panes, err := f.GetPanes(sheetName)
	if err != nil {
		return setup, err
	}
	if panes.Freeze {
		setup.FrozenRows = panes.YSplit
	}

	for col := 1; col <= columns; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return setup, err
		}
		width, err := f.GetColWidth(sheetName, name)
		if err != nil {
			return setup, err
		}
		setup.ColumnWidths = append(setup.ColumnWidths, width)
	}

	return setup, nil
}
