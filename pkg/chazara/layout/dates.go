package layout

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// ISODate is the layout used when no locale is requested.
const ISODate = "2006-01-02"

var (
	dateLocales = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.Hebrew,
	}
	dateLayouts = []string{
		"1/2/2006",
		"02/01/2006",
		"2.1.2006",
	}
	dateMatcher = language.NewMatcher(dateLocales)
)

// DateFormat renders calendar dates for the date column.
type DateFormat struct {
	layout string
}

// DateFormatFor picks the date layout matching a BCP 47 locale such as "en-US" or "he-IL".
// Empty or unsupported locales fall back to ISO dates.
func DateFormatFor(locale string) DateFormat {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return DateFormat{layout: ISODate}
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DateFormat{layout: ISODate}
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		return DateFormat{layout: ISODate}
	}
	return DateFormat{layout: dateLayouts[idx]}
}

// Format renders t; the zero DateFormat renders ISO dates.
func (d DateFormat) Format(t time.Time) string {
	return t.Format(d.Layout())
}

// Layout returns the Go time layout in use.
func (d DateFormat) Layout() string {
	if d.layout == "" {
		return ISODate
	}
	return d.layout
}

// ParseDate parses "2006-01-02" or an RFC 3339 timestamp into a UTC calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(ISODate, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return CalendarDay(t), true
	}
	return time.Time{}, false
}

// CalendarDay truncates t to midnight UTC of its calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays advances a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
