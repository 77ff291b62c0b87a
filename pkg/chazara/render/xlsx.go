package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSXMIMEType is the content type of generated workbooks.
const XLSXMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook palette and column widths.
const (
	headerColor       = "4338CA"
	alternateRowColor = "F3F4F6"
	unitColumnWidth   = 6.0
	dateColumnWidth   = 10.0
	reviewColumnWidth = 6.0
)

// Print setup of every worksheet: A4 landscape, one page wide.
const (
	paperSizeA4  = 9
	printMarginH = 0.25
	printMarginV = 0.5
	printMarginX = 0.3
)

const maxSheetNameLength = 31

// XLSX renders charts as workbooks with one worksheet per sheet.
type XLSX struct {
	log *zap.Logger
}

// NewXLSX creates the workbook renderer. A nil logger disables logging.
func NewXLSX(log *zap.Logger) *XLSX {
	if log == nil {
		log = zap.NewNop()
	}
	return &XLSX{log: log}
}

func (x *XLSX) Format() models.Format { return models.FormatTabular }

func (x *XLSX) Extension() string { return ".xlsx" }

func (x *XLSX) MIMEType() string { return XLSXMIMEType }

// Render builds the whole workbook in memory before writing it to w,
// so a failure never leaves a partial file behind.
func (x *XLSX) Render(ctx context.Context, doc Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}

	names := sheetNames(doc.Sheets)
	for i, sheet := range doc.Sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), names[i])
		} else {
			_, err = f.NewSheet(names[i])
		}
		if err != nil {
			return &SheetError{Sheet: sheet.Title, Err: err}
		}
		if err := writeSheet(ctx, f, names[i], sheet, styles); err != nil {
			return &SheetError{Sheet: sheet.Title, Err: err}
		}
		x.log.Debug("worksheet written",
			zap.String("sheet", names[i]),
			zap.Int("blocks", len(sheet.Grids)))
	}
	f.SetActiveSheet(0)

	created := doc.GeneratedOn.UTC().Format("2006-01-02T15:04:05Z")
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:          doc.Title(),
		Subject:        "Study Review Chart",
		Keywords:       "talmud, study, review, chart",
		Creator:        doc.Brand,
		LastModifiedBy: doc.Brand + " API",
		Created:        created,
		Modified:       created,
	}); err != nil {
		return fmt.Errorf("set document properties: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header    int
	data      int
	alternate int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Alignment: center,
	})
	if err != nil {
		return s, err
	}
	s.data, err = f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: center,
	})
	if err != nil {
		return s, err
	}
	s.alternate, err = f.NewStyle(&excelize.Style{
		Border:    thin,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{alternateRowColor}},
		Alignment: center,
	})
	return s, err
}

func writeSheet(ctx context.Context, f *excelize.File, name string, sheet Sheet, styles sheetStyles) error {
	slots := sheet.Options.SlotCount()

	for _, grid := range sheet.Grids {
		if err := ctx.Err(); err != nil {
			return err
		}
		firstCol := grid.Block.Index*slots + 1

		// Column widths follow the slot kinds of the header
		for _, c := range grid.Header {
			col, err := excelize.ColumnNumberToName(firstCol + c.Column)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(name, col, col, columnWidth(c.Slot)); err != nil {
				return err
			}
		}

		if err := writeRow(f, name, 1, firstCol, grid.Header, styles.header); err != nil {
			return err
		}
		for i, row := range grid.Rows {
			style := styles.data
			if len(row) > 0 && row[0].Style.AlternateRow {
				style = styles.alternate
			}
			if err := writeRow(f, name, i+2, firstCol, row, style); err != nil {
				return err
			}
		}
	}

	return applyPrintSetup(f, name)
}

// writeRow writes the cells of one block row starting at firstCol and styles the whole span.
func writeRow(f *excelize.File, sheet string, row, firstCol int, cells []models.GridCell, style int) error {
	if len(cells) == 0 {
		return nil
	}
	for _, c := range cells {
		if c.Content == "" {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(firstCol+c.Column, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, ref, c.Content); err != nil {
			return err
		}
	}

	first, err := excelize.CoordinatesToCellName(firstCol, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(firstCol+len(cells)-1, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func columnWidth(slot models.SlotKind) float64 {
	switch slot {
	case models.SlotUnit:
		return unitColumnWidth
	case models.SlotDate:
		return dateColumnWidth
	default:
		return reviewColumnWidth
	}
}

func applyPrintSetup(f *excelize.File, sheet string) error {
	// Freeze the header row
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
		Selection: []excelize.Selection{
			{SQRef: "A2", ActiveCell: "A2", Pane: "bottomLeft"},
		},
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	size := paperSizeA4
	orientation := "landscape"
	fitWidth, fitHeight := 1, 0
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
		FitToWidth:  &fitWidth,
		FitToHeight: &fitHeight,
	}); err != nil {
		return fmt.Errorf("page layout: %w", err)
	}

	fitToPage := true
	if err := f.SetSheetProps(sheet, &excelize.SheetPropsOptions{FitToPage: &fitToPage}); err != nil {
		return fmt.Errorf("sheet properties: %w", err)
	}

	h, v, x := printMarginH, printMarginV, printMarginX
	centered := true
	if err := f.SetPageMargins(sheet, &excelize.PageLayoutMarginsOptions{
		Left:         &h,
		Right:        &h,
		Top:          &v,
		Bottom:       &v,
		Header:       &x,
		Footer:       &x,
		Horizontally: &centered,
	}); err != nil {
		return fmt.Errorf("page margins: %w", err)
	}
	return nil
}

// sheetNames derives valid, unique worksheet names from sheet titles.
func sheetNames(sheets []Sheet) []string {
	names := make([]string, len(sheets))
	used := make(map[string]bool, len(sheets))
	for i, s := range sheets {
		base := sanitizeSheetName(s.Title)
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncateRunes(base, maxSheetNameLength-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func sanitizeSheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Chart"
	}
	return truncateRunes(name, maxSheetNameLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var _ Renderer = (*XLSX)(nil)
