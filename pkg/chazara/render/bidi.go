package render

import "unicode"

// hasHebrew reports whether s contains a Hebrew letter.
func hasHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

// visualOrder reverses strings containing Hebrew so a left-to-right text
// engine draws them right to left. Other strings are returned unchanged.
func visualOrder(s string) string {
	if !hasHebrew(s) {
		return s
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
