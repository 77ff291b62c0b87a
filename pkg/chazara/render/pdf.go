package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ukaji3/chazara-go/pkg/chazara/layout"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"go.uber.org/zap"
)

// PDFMIMEType is the content type of generated documents.
const PDFMIMEType = "application/pdf"

type rgb struct{ r, g, b int }

// Document palette.
var (
	bandColor = rgb{0x43, 0x38, 0xca}
	lightGray = rgb{0xf3, 0xf4, 0xf6}
	darkGray  = rgb{0x4b, 0x55, 0x63}
	white     = rgb{0xff, 0xff, 0xff}
)

const (
	utf8Family     = "chart"
	coreFamily     = "Helvetica"
	titleFontSize  = 18
	noteFontSize   = 10
	headerFontSize = 9
	cellFontSize   = 8
	checkboxSize   = 5
	generatedOn    = "January 2, 2006"
)

// PDF renders charts as landscape A4 documents.
type PDF struct {
	font     []byte
	geometry layout.Geometry
	log      *zap.Logger
}

// NewPDF creates the document renderer. fontPath optionally names a UTF-8
// TrueType font used for all text; without it Hebrew numerals fall back to
// the raw unit tokens, which the built-in Helvetica can draw.
func NewPDF(fontPath string, log *zap.Logger) (*PDF, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &PDF{geometry: layout.A4Landscape(), log: log}
	if fontPath != "" {
		font, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read pdf font: %w", err)
		}
		p.font = font
	}
	return p, nil
}

func (p *PDF) Format() models.Format { return models.FormatPaginated }

func (p *PDF) Extension() string { return ".pdf" }

func (p *PDF) MIMEType() string { return PDFMIMEType }

// Render draws every sheet on its own run of pages. The document is produced
// in memory and written to w only once it is complete.
func (p *PDF) Render(ctx context.Context, doc Document, w io.Writer) error {
	d := p.newDocument(doc)

	for _, sheet := range doc.Sheets {
		pages := layout.Paginate(sheet.Grids, sheet.Columns, sheet.Options, p.geometry)
		for i, page := range pages {
			if err := ctx.Err(); err != nil {
				return err
			}
			d.pdf.AddPage()
			d.band(sheet.Title, page.Continued)
			if i == 0 {
				d.generated(doc.GeneratedOn)
			}
			for _, box := range page.Boxes {
				d.box(box)
			}
		}
		if err := d.pdf.Error(); err != nil {
			return &SheetError{Sheet: sheet.Title, Err: err}
		}
	}

	if d.fallbacks > 0 {
		p.log.Warn("hebrew numerals drawn as raw tokens, no pdf font configured",
			zap.Int("cells", d.fallbacks))
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return fmt.Errorf("finalize pdf: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// document is the drawing state of one Render call.
type document struct {
	pdf       *fpdf.Fpdf
	geometry  layout.Geometry
	family    string
	utf8      bool
	translate func(string) string
	fallbacks int
}

func (p *PDF) newDocument(doc Document) *document {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(p.geometry.Margin, 0, p.geometry.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.GeneratedOn)
	pdf.SetModificationDate(doc.GeneratedOn)
	pdf.SetTitle(doc.Title(), true)
	pdf.SetAuthor(doc.Brand, true)
	pdf.SetSubject("Study Review Chart", true)
	pdf.SetKeywords("talmud, study, review, chart", true)
	pdf.SetCreator(doc.Brand+" Application", true)

	d := &document{pdf: pdf, geometry: p.geometry, family: coreFamily}
	if p.font != nil {
		pdf.AddUTF8FontFromBytes(utf8Family, "", p.font)
		pdf.AddUTF8FontFromBytes(utf8Family, "B", p.font)
		d.family = utf8Family
		d.utf8 = true
	} else {
		d.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.SetFooterFunc(func() {
		d.color(darkGray, pdf.SetTextColor)
		pdf.SetFont(d.family, "", cellFontSize)
		pdf.SetXY(p.geometry.Margin, p.geometry.PageHeight-20)
		pdf.CellFormat(p.geometry.PageWidth-2*p.geometry.Margin, 10,
			d.text(fmt.Sprintf("Page %d | %s", pdf.PageNo(), doc.Brand), ""),
			"", 0, "CM", false, 0, "")
	})
	return d
}

func (d *document) color(c rgb, set func(r, g, b int)) {
	set(c.r, c.g, c.b)
}

// band draws the colored title band at the top of the current page.
func (d *document) band(title string, continued bool) {
	d.color(bandColor, d.pdf.SetFillColor)
	d.pdf.Rect(0, 0, d.geometry.PageWidth, d.geometry.BandHeight, "F")

	title += " - Chazara Chart"
	if continued {
		title += " (Continued)"
	}
	d.color(white, d.pdf.SetTextColor)
	d.pdf.SetFont(d.family, "B", titleFontSize)
	d.pdf.SetXY(d.geometry.Margin, 10)
	d.pdf.CellFormat(d.geometry.PageWidth-230, 20, d.text(title, ""), "", 0, "LM", false, 0, "")
}

func (d *document) generated(on time.Time) {
	d.color(white, d.pdf.SetTextColor)
	d.pdf.SetFont(d.family, "", noteFontSize)
	d.pdf.SetXY(d.geometry.PageWidth-200, 10)
	d.pdf.CellFormat(170, 20, d.text("Generated on "+on.Format(generatedOn), ""), "", 0, "RM", false, 0, "")
}

func (d *document) box(b layout.Box) {
	c := b.Cell
	if c.Style.Header {
		d.color(bandColor, d.pdf.SetFillColor)
		d.pdf.Rect(b.X, b.Y, b.W, b.H, "F")
		d.color(white, d.pdf.SetTextColor)
		d.pdf.SetFont(d.family, "B", headerFontSize)
		d.cellText(b, c.Content, c.Content)
		return
	}

	if c.Style.AlternateRow {
		d.color(lightGray, d.pdf.SetFillColor)
		d.pdf.Rect(b.X, b.Y, b.W, b.H, "F")
	}
	d.color(darkGray, d.pdf.SetDrawColor)
	d.pdf.Rect(b.X, b.Y, b.W, b.H, "D")

	switch c.Slot {
	case models.SlotReview:
		d.pdf.Rect(b.X+b.W/2-checkboxSize/2.0, b.Y+b.H/2-checkboxSize/2.0, checkboxSize, checkboxSize, "D")
	case models.SlotUnit:
		d.color(darkGray, d.pdf.SetTextColor)
		d.pdf.SetFont(d.family, "", cellFontSize)
		d.cellText(b, c.Content, string(c.Token))
	default:
		d.color(darkGray, d.pdf.SetTextColor)
		d.pdf.SetFont(d.family, "", cellFontSize)
		d.cellText(b, c.Content, c.Content)
	}
}

func (d *document) cellText(b layout.Box, s, fallback string) {
	if s == "" {
		return
	}
	d.pdf.SetXY(b.X, b.Y)
	d.pdf.CellFormat(b.W, b.H, d.text(s, fallback), "", 0, "CM", false, 0, "")
}

// text prepares s for drawing. Hebrew is drawn in visual order with a UTF-8
// font; the core font cannot draw it, so fallback is used instead.
func (d *document) text(s, fallback string) string {
	if d.utf8 {
		return visualOrder(s)
	}
	if !hasHebrew(s) {
		return d.translate(s)
	}
	d.fallbacks++
	if fallback == "" || hasHebrew(fallback) {
		return "?"
	}
	return d.translate(fallback)
}

var _ Renderer = (*PDF)(nil)
