// Package render turns laid-out chart grids into documents: an .xlsx workbook
// through excelize and a paginated .pdf through fpdf.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ukaji3/chazara-go/pkg/chazara/layout"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

// ErrUnsupportedFormat indicates an output format with no renderer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Sheet is the chart of one content id.
type Sheet struct {
	// Title is the content id, used as worksheet name and page title.
	Title   string
	Grids   []layout.Grid
	Options layout.Options
	// Columns is the number of column blocks placed side by side.
	Columns int
}

// Document is everything a renderer needs to produce one artifact.
type Document struct {
	Sheets []Sheet
	// Brand names the producing application in metadata and footers.
	Brand string
	// GeneratedOn stamps document metadata and the "Generated on" line.
	GeneratedOn time.Time
}

// Title is the document title derived from the first sheet.
func (d Document) Title() string {
	if len(d.Sheets) == 0 {
		return "Chazara Chart"
	}
	return d.Sheets[0].Title + " Chazara Chart"
}

// Renderer writes a Document in one output format.
type Renderer interface {
	Render(ctx context.Context, doc Document, w io.Writer) error
	Format() models.Format
	Extension() string
	MIMEType() string
}

// SheetError reports a failure while rendering one sheet.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// Set holds one renderer per output format.
type Set map[models.Format]Renderer

// NewSet indexes renderers by their format.
func NewSet(renderers ...Renderer) Set {
	s := make(Set, len(renderers))
	for _, r := range renderers {
		s[r.Format()] = r
	}
	return s
}

// For returns the renderer for format.
func (s Set) For(format models.Format) (Renderer, error) {
	r, ok := s[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return r, nil
}
