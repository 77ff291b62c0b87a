package chazara

import (
	"errors"
	"strings"
	"time"

	"github.com/ukaji3/chazara-go/pkg/chazara/corpus"
	"github.com/ukaji3/chazara-go/pkg/chazara/layout"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/ukaji3/chazara-go/pkg/chazara/sequence"
	"go.uber.org/zap"
)

// plan is a validated request with every default applied.
type plan struct {
	kind       corpus.Kind
	contentIDs []string
	tokens     []models.Token
	options    layout.Options
	columns    int
	format     models.Format
}

// normalize merges the request with the settings and validates it.
// Every failure is a *ValidationError.
func (g *Generator) normalize(req models.ChartRequest) (plan, error) {
	var p plan

	for _, id := range req.ContentIDs {
		if id = strings.TrimSpace(id); id != "" {
			p.contentIDs = append(p.contentIDs, id)
		}
	}
	if len(p.contentIDs) == 0 {
		return p, NewValidationError("tractates", "missing", ErrNoContent)
	}

	kind, err := corpus.ParseKind(req.Corpus)
	if err != nil {
		return p, NewValidationError("corpus", "unsupported", err)
	}
	p.kind = kind

	p.format = req.Format
	if p.format == "" {
		p.format = g.settings.DefaultFormat
	}
	if _, err := g.renderers.For(p.format); err != nil {
		return p, NewValidationError("format", "unsupported", err)
	}

	reviews := g.settings.DefaultReviews
	if req.ReviewCount != nil {
		reviews = int(*req.ReviewCount)
	}
	if reviews < 1 || reviews > g.settings.MaxReviews {
		return p, NewValidationError("reviews", "must be between 1 and "+itoa(g.settings.MaxReviews), nil)
	}

	p.columns = g.settings.DefaultColumns
	if req.ColumnsPerPage != nil {
		p.columns = int(*req.ColumnsPerPage)
	}
	if p.columns < 1 {
		return p, NewValidationError("columnsPerPage", "must be at least 1", nil)
	}
	if p.columns > g.settings.MaxColumns {
		g.log.Info("columns per page clamped",
			zap.Int("requested", p.columns),
			zap.Int("max", g.settings.MaxColumns))
		p.columns = g.settings.MaxColumns
	}

	p.tokens, err = g.tokens(req, kind, p.contentIDs[0])
	if err != nil {
		return p, err
	}

	p.options = layout.Options{
		ReviewCount:       reviews,
		IncludeDate:       g.settings.ShouldIncludeDate(req),
		AlternateNumerals: g.settings.ShouldUseAlternateNumerals(req),
		StartDate:         g.startDate(req.StartDate),
		Dates:             layout.DateFormatFor(g.settings.Locale(req)),
		UnitLabel:         kind.UnitLabel(),
		DateLabel:         "Date",
		Log:               g.log,
	}
	return p, nil
}

// startDate parses the requested first learning date, defaulting to today.
func (g *Generator) startDate(s string) time.Time {
	if s == "" {
		return layout.CalendarDay(g.now())
	}
	if d, ok := layout.ParseDate(s); ok {
		return d
	}
	g.log.Warn("unparsable start date, using today", zap.String("start_date", s))
	return layout.CalendarDay(g.now())
}

// tokens produces the chart rows: the explicit list when given, else the range.
func (g *Generator) tokens(req models.ChartRequest, kind corpus.Kind, contentID string) ([]models.Token, error) {
	if len(req.Pages) > 0 {
		if len(req.Pages) > g.settings.MaxRows {
			return nil, NewValidationError("pages", "more than "+itoa(g.settings.MaxRows)+" entries", ErrTooManyRows)
		}
		tokens := make([]models.Token, 0, len(req.Pages))
		for i, t := range req.Pages {
			t = models.Token(strings.TrimSpace(string(t)))
			if t == "" {
				return nil, NewValidationError("pages", "entry "+itoa(i)+" is empty", nil)
			}
			tokens = append(tokens, t)
		}
		return tokens, nil
	}

	entry, lookupErr := g.catalog.Lookup(kind, contentID)
	known := lookupErr == nil

	start, end := int(req.StartUnit), int(req.EndUnit)
	if !known && (start == 0 || end == 0) {
		return nil, NewValidationError("range", "start and end are required for "+contentID, lookupErr)
	}
	if start < 0 || end < 0 {
		return nil, NewValidationError("range", "units must be positive", sequence.ErrInvalidBound)
	}
	if known {
		if start == 0 {
			start = entry.First
		}
		if end == 0 {
			end = entry.Last
		}
		if end < start {
			return nil, NewValidationError("range", "end precedes start", ErrInvertedRange)
		}
		start, end = entry.Clamp(start), entry.Clamp(end)
	}
	// Unknown content is never clamped, so the span is checked before any token is built.
	if end >= start && end-start >= g.settings.MaxRows {
		return nil, g.tooManyRows()
	}

	granularity := g.settings.Granularity(req)
	if granularity != models.PerSubUnit && granularity != models.PerWholeUnit {
		return nil, NewValidationError("granularity", "must be sub-unit or whole-unit", nil)
	}

	var (
		tokens []models.Token
		err    error
	)
	switch {
	case kind == corpus.Mishnayot && granularity == models.PerSubUnit:
		if !known {
			return nil, NewValidationError("tractates", "mishnah counts unknown for "+contentID, lookupErr)
		}
		tokens, err = sequence.Items(
			sequence.Position{Unit: start, Item: int(req.StartItem)},
			sequence.Position{Unit: end, Item: int(req.EndItem)},
			entry.ItemCount)
	case kind.SubUnits():
		tokens, err = sequence.Generate(
			sequence.Bound{Unit: start, Sub: req.StartSub},
			sequence.Bound{Unit: end, Sub: req.EndSub},
			granularity)
	default:
		tokens, err = sequence.Generate(
			sequence.Bound{Unit: start},
			sequence.Bound{Unit: end},
			models.PerWholeUnit)
	}
	if err != nil {
		reason := "invalid bounds"
		if errors.Is(err, ErrInvertedRange) {
			reason = "end precedes start"
		}
		return nil, NewValidationError("range", reason, err)
	}
	if len(tokens) > g.settings.MaxRows {
		return nil, g.tooManyRows()
	}
	return tokens, nil
}

func (g *Generator) tooManyRows() error {
	return NewValidationError("range", "more than "+itoa(g.settings.MaxRows)+" rows", ErrTooManyRows)
}
