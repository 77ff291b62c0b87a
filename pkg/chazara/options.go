// Package chazara generates study review charts: a table with one row per
// study unit, an optional learning date and a column per planned review,
// rendered as an .xlsx workbook or a printable .pdf.
package chazara

import "github.com/ukaji3/chazara-go/pkg/chazara/models"

// Settings holds the defaults and limits applied to every chart request.
// It is built once at startup and passed by value.
type Settings struct {
	// DefaultReviews is the review column count when a request sets none.
	DefaultReviews int
	// DefaultColumns is the number of side-by-side column blocks when a request sets none.
	DefaultColumns int
	// MaxColumns bounds the column blocks of one chart; larger requests are clamped.
	MaxColumns int
	// MaxReviews bounds the review columns; larger requests are rejected.
	MaxReviews int
	// MaxRows bounds the rows of one chart; larger ranges and page lists are rejected.
	MaxRows int
	// IncludeDate controls the date column when a request does not.
	IncludeDate bool
	// DateLocale selects the date layout when a request does not ("" for ISO dates).
	DateLocale string
	// DefaultFormat is used when a request names no output format.
	DefaultFormat models.Format
	// Brand names the application in document metadata and page footers.
	Brand string
	// FontPath is an optional UTF-8 TrueType font for PDF text.
	FontPath string
}

// DefaultSettings returns the built-in chart defaults.
func DefaultSettings() Settings {
	return Settings{
		DefaultReviews: 3,
		DefaultColumns: 1,
		MaxColumns:     5,
		MaxReviews:     10,
		MaxRows:        2000,
		IncludeDate:    true,
		DefaultFormat:  models.FormatTabular,
		Brand:          "Chazara Charts",
	}
}

// ShouldIncludeDate returns whether the request's chart gets a date column.
func (s Settings) ShouldIncludeDate(req models.ChartRequest) bool {
	if req.IncludeDateColumn != nil {
		return *req.IncludeDateColumn
	}
	return s.IncludeDate
}

// ShouldUseAlternateNumerals returns whether unit labels are drawn in alphabetic numerals.
func (s Settings) ShouldUseAlternateNumerals(req models.ChartRequest) bool {
	if req.UseAlternateNumerals != nil {
		return *req.UseAlternateNumerals
	}
	return false
}

// Granularity returns the row granularity of the request. The legacy dafPerDay
// flag selects whole units when set and sub-units when cleared.
func (s Settings) Granularity(req models.ChartRequest) models.Granularity {
	if req.Granularity != "" {
		return req.Granularity
	}
	if req.DafPerDay != nil && !*req.DafPerDay {
		return models.PerSubUnit
	}
	return models.PerWholeUnit
}

// Locale returns the date locale of the request.
func (s Settings) Locale(req models.ChartRequest) string {
	if req.DateLocale != "" {
		return req.DateLocale
	}
	return s.DateLocale
}
