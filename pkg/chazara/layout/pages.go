package layout

import "github.com/ukaji3/chazara-go/pkg/chazara/models"

// Geometry describes the printable page of the paginated output, in points.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	// Margin is the left and right page margin.
	Margin float64
	// BandHeight is the height of the colored title band at the top of every page.
	BandHeight float64
	// TopY is where the first header row starts on every page.
	TopY float64
	// BottomMargin is the distance from the page bottom that rows may not cross.
	BottomMargin float64
	HeaderHeight float64
	RowHeight    float64
}

// A4Landscape returns the geometry of an A4 landscape page with 30pt margins.
func A4Landscape() Geometry {
	return Geometry{
		PageWidth:    MMToPoints(A4HeightMM),
		PageHeight:   MMToPoints(A4WidthMM),
		Margin:       30,
		BandHeight:   40,
		TopY:         50,
		BottomMargin: 50,
		HeaderHeight: 20,
		RowHeight:    16,
	}
}

// BlockWidth is the width of one column block when columns blocks share the page.
func (g Geometry) BlockWidth(columns int) float64 {
	if columns < 1 {
		columns = 1
	}
	return (g.PageWidth - 2*g.Margin) / float64(columns)
}

// RowsPerPage is the number of data rows that fit below a header row.
func (g Geometry) RowsPerPage() int {
	n := int((g.PageHeight - g.BottomMargin - g.TopY - g.HeaderHeight) / g.RowHeight)
	return max(n, 1)
}

// SlotWidths splits a block width among its slots: the unit column takes 10%,
// the date column 15% when enabled, and review columns share the rest evenly.
func SlotWidths(blockWidth float64, opts Options) []float64 {
	unit := blockWidth * 0.1
	date := 0.0
	if opts.IncludeDate {
		date = blockWidth * 0.15
	}
	review := (blockWidth - unit - date) / float64(max(opts.ReviewCount, 1))

	slots := opts.Slots()
	widths := make([]float64, 0, len(slots))
	for _, slot := range slots {
		switch slot {
		case models.SlotUnit:
			widths = append(widths, unit)
		case models.SlotDate:
			widths = append(widths, date)
		default:
			widths = append(widths, review)
		}
	}
	return widths
}

// Box is a grid cell placed on a page.
type Box struct {
	X, Y, W, H float64
	Cell       models.GridCell
}

// Page is one physical page of a chart.
type Page struct {
	// Continued marks overflow pages, which carry a "(Continued)" title.
	Continued bool
	Boxes     []Box
}

// Paginate places the grids of one chart on pages. Blocks sit side by side;
// block i is drawn completely before block i+1. Once a block has filled
// RowsPerPage rows it continues at the top of the following page, which is
// created on demand, below a repeated header row.
func Paginate(grids []Grid, columns int, opts Options, g Geometry) []Page {
	pages := []Page{{}}
	blockWidth := g.BlockWidth(columns)
	widths := SlotWidths(blockWidth, opts)
	perPage := g.RowsPerPage()

	for b, grid := range grids {
		x0 := g.Margin + float64(b)*blockWidth
		placeRow(&pages[0], grid.Header, x0, g.TopY, g.HeaderHeight, widths)

		for i, row := range grid.Rows {
			page, slot := i/perPage, i%perPage
			if page == len(pages) {
				pages = append(pages, Page{Continued: true})
			}
			if page > 0 && slot == 0 {
				placeRow(&pages[page], grid.Header, x0, g.TopY, g.HeaderHeight, widths)
			}
			y := g.TopY + g.HeaderHeight + float64(slot)*g.RowHeight
			placeRow(&pages[page], row, x0, y, g.RowHeight, widths)
		}
	}
	return pages
}

func placeRow(p *Page, cells []models.GridCell, x, y, h float64, widths []float64) {
	for _, c := range cells {
		w := widths[c.Column]
		p.Boxes = append(p.Boxes, Box{X: x, Y: y, W: w, H: h, Cell: c})
		x += w
	}
}
