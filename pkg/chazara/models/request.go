package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format selects the output renderer.
type Format string

const (
	// FormatTabular produces an .xlsx workbook.
	FormatTabular Format = "excel"
	// FormatPaginated produces a .pdf document.
	FormatPaginated Format = "pdf"
)

// FlexInt is an integer that also accepts a quoted numeric string, as sent by HTML forms.
type FlexInt int

// UnmarshalJSON accepts 3 and "3".
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(u)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		var f float64
		if jerr := json.Unmarshal([]byte(s), &f); jerr != nil || f != float64(int(f)) {
			return fmt.Errorf("must be an integer, got %s", string(b))
		}
		v = int(f)
	}
	*n = FlexInt(v)
	return nil
}

// ChartRequest is the caller-facing payload of one chart generation.
// Pointer fields distinguish "not set" from an explicit zero so defaults can be merged.
type ChartRequest struct {
	// Corpus selects the content domain: gemara (default), mishnayot or mishna-berura.
	Corpus string `json:"corpus,omitempty"`
	// ContentIDs are the content-domain identifiers (tractates, chalakim or topics).
	ContentIDs []string `json:"tractates"`

	StartUnit FlexInt `json:"startUnit,omitempty"`
	StartSub  SubUnit `json:"startSub,omitempty"`
	StartItem FlexInt `json:"startItem,omitempty"`
	EndUnit   FlexInt `json:"endUnit,omitempty"`
	EndSub    SubUnit `json:"endSub,omitempty"`
	EndItem   FlexInt `json:"endItem,omitempty"`

	// Granularity defaults to whole units; DafPerDay is the legacy spelling.
	Granularity Granularity `json:"granularity,omitempty"`
	DafPerDay   *bool       `json:"dafPerDay,omitempty"`

	// Pages, when present, replaces range-based generation with an explicit token list.
	Pages []Token `json:"pages,omitempty"`

	ReviewCount          *FlexInt `json:"reviews,omitempty"`
	ColumnsPerPage       *FlexInt `json:"columnsPerPage,omitempty"`
	IncludeDateColumn    *bool    `json:"includeDateColumn,omitempty"`
	StartDate            string   `json:"startDate,omitempty"`
	DateLocale           string   `json:"dateLocale,omitempty"`
	UseAlternateNumerals *bool    `json:"useHebrew,omitempty"`
	Format               Format   `json:"format,omitempty"`
}
