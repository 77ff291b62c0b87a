// Package numerals renders study unit tokens in Hebrew alphabetic numerals (gematria).
package numerals

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

// ErrMalformedToken indicates a token that does not start with a positive unit number
// or carries an unknown suffix.
var ErrMalformedToken = errors.New("malformed unit token")

type letter struct {
	value int
	glyph string
}

// letters is the descending value table used for greedy decomposition.
var letters = []letter{
	{400, "ת"},
	{300, "ש"},
	{200, "ר"},
	{100, "ק"},
	{90, "צ"},
	{80, "פ"},
	{70, "ע"},
	{60, "ס"},
	{50, "נ"},
	{40, "מ"},
	{30, "ל"},
	{20, "כ"},
	{10, "י"},
	{9, "ט"},
	{8, "ח"},
	{7, "ז"},
	{6, "ו"},
	{5, "ה"},
	{4, "ד"},
	{3, "ג"},
	{2, "ב"},
	{1, "א"},
}

// irregular replaces tens+units combinations whose plain spelling would form a divine name.
// The substitution applies below every hundred, so 15, 115, 215 ... all end in tet-vav.
var irregular = map[int]string{
	15: "טו",
	16: "טז",
}

// MaxNumber is the largest magnitude rendered in alphabetic numerals.
const MaxNumber = 9999

const (
	firstSubUnitMark  = "."
	secondSubUnitMark = ":"
	itemSeparator     = ":"
)

// Number converts a positive integer to its alphabetic numeral form.
// It returns an empty string for n <= 0 or n > MaxNumber.
func Number(n int) string {
	if n <= 0 || n > MaxNumber {
		return ""
	}

	var b strings.Builder
	remaining := n

	// Hundreds first so the irregular tail can be applied to what is left
	for _, l := range letters {
		if l.value < 100 {
			break
		}
		for remaining >= l.value {
			b.WriteString(l.glyph)
			remaining -= l.value
		}
	}

	if s, ok := irregular[remaining]; ok {
		b.WriteString(s)
		return b.String()
	}

	for _, l := range letters {
		if l.value >= 100 {
			continue
		}
		for remaining >= l.value {
			b.WriteString(l.glyph)
			remaining -= l.value
		}
	}
	return b.String()
}

// Convert renders a token in alphabetic numerals.
//
//	"16"   -> "טז"
//	"23a"  -> "כג."
//	"23b"  -> "כג:"
//	"23ab" -> "כג"
//	"12:3" -> "יב:ג"
func Convert(token models.Token) (string, error) {
	unit, suffix, err := Split(token)
	if err != nil {
		return "", err
	}

	numeral := Number(unit)
	switch {
	case suffix == "":
		return numeral, nil
	case suffix == string(models.SubUnitFirst):
		return numeral + firstSubUnitMark, nil
	case suffix == string(models.SubUnitSecond):
		return numeral + secondSubUnitMark, nil
	case suffix == "ab":
		return numeral, nil
	case strings.HasPrefix(suffix, itemSeparator):
		item, err := strconv.Atoi(strings.TrimPrefix(suffix, itemSeparator))
		if err != nil || item <= 0 || item > MaxNumber {
			return "", fmt.Errorf("%w: %q", ErrMalformedToken, token)
		}
		return numeral + itemSeparator + Number(item), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}
}

// Split separates the leading unit number of a token from its suffix.
// Units above MaxNumber are malformed.
func Split(token models.Token) (int, string, error) {
	s := strings.TrimSpace(string(token))
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}

	unit, err := strconv.Atoi(s[:end])
	if err != nil || unit <= 0 || unit > MaxNumber {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}
	return unit, strings.ToLower(s[end:]), nil
}
