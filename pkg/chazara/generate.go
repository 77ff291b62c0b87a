package chazara

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ukaji3/chazara-go/pkg/chazara/corpus"
	"github.com/ukaji3/chazara-go/pkg/chazara/layout"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/ukaji3/chazara-go/pkg/chazara/render"
	"go.uber.org/zap"
)

// Generator turns chart requests into finished documents. It holds no
// per-request state and is safe for concurrent use.
type Generator struct {
	settings  Settings
	catalog   *corpus.Catalog
	renderers render.Set
	log       *zap.Logger
	now       func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock replaces the clock used for default start dates and document timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator. A nil logger disables logging.
func New(settings Settings, catalog *corpus.Catalog, log *zap.Logger, opts ...Option) (*Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if catalog == nil {
		return nil, errors.New("chazara: nil corpus catalog")
	}
	if settings.MaxRows < 1 {
		settings.MaxRows = DefaultSettings().MaxRows
	}

	pdf, err := render.NewPDF(settings.FontPath, log)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		settings:  settings,
		catalog:   catalog,
		renderers: render.NewSet(render.NewXLSX(log), pdf),
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Settings returns the generator's defaults and limits.
func (g *Generator) Settings() Settings {
	return g.settings
}

// Catalog returns the corpus tables used to default and clamp ranges.
func (g *Generator) Catalog() *corpus.Catalog {
	return g.catalog
}

// Generate validates req, lays out its chart and renders it in the requested format.
// It fails with a *ValidationError before any rendering, or a *RenderError when
// the document cannot be produced. The returned artifact is complete.
func (g *Generator) Generate(ctx context.Context, req models.ChartRequest) (*models.ChartArtifact, error) {
	p, err := g.normalize(req)
	if err != nil {
		return nil, err
	}

	renderer, err := g.renderers.For(p.format)
	if err != nil {
		return nil, NewValidationError("format", "unsupported", err)
	}

	doc := g.document(p)
	var buf bytes.Buffer
	if err := g.render(ctx, renderer, doc, &buf); err != nil {
		contentID := p.contentIDs[0]
		var se *render.SheetError
		if errors.As(err, &se) {
			contentID = se.Sheet
		}
		rerr := NewRenderError(contentID, p.format, "render", err)
		g.log.Error("chart rendering failed",
			zap.String("content_id", contentID),
			zap.String("format", string(p.format)),
			zap.Error(err))
		return nil, rerr
	}

	g.log.Debug("chart generated",
		zap.Strings("content_ids", p.contentIDs),
		zap.String("format", string(p.format)),
		zap.Int("rows", len(p.tokens)),
		zap.Int("columns", p.columns),
		zap.Int("bytes", buf.Len()))

	return &models.ChartArtifact{
		Filename: p.contentIDs[0] + "-chazara-chart" + renderer.Extension(),
		MIMEType: renderer.MIMEType(),
		Data:     buf.Bytes(),
	}, nil
}

// render runs the renderer, turning a panic inside a document library into an error.
func (g *Generator) render(ctx context.Context, r render.Renderer, doc render.Document, buf *bytes.Buffer) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("renderer panic: %v", rec)
		}
	}()
	return r.Render(ctx, doc, buf)
}

// document lays out the shared token sequence once per content id.
func (g *Generator) document(p plan) render.Document {
	blocks := layout.Partition(p.tokens, p.columns)
	sheets := make([]render.Sheet, 0, len(p.contentIDs))
	for _, id := range p.contentIDs {
		sheets = append(sheets, render.Sheet{
			Title:   id,
			Grids:   layout.LayoutAll(blocks, p.options),
			Options: p.options,
			Columns: p.columns,
		})
	}
	return render.Document{
		Sheets:      sheets,
		Brand:       g.settings.Brand,
		GeneratedOn: g.now(),
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
