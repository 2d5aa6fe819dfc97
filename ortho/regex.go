package ortho

import (
	"regexp"
	"strings"
	"unicode"
)

// ReservedRegex derives a regular expression matching text literally.
// Regex metacharacters are escaped. If caseSensitive is false, every letter
// with distinct upper and lower case is replaced by a bracket expression
// accepting both:
//
//     ReservedRegex("a+b", false)  =>  `[aA]\+[bB]`
//
func ReservedRegex(text string, caseSensitive bool) string {
	var b strings.Builder
	for _, r := range text {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		if !caseSensitive && lower != upper {
			b.WriteByte('[')
			b.WriteRune(lower)
			b.WriteRune(upper)
			b.WriteByte(']')
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}

// unquote strips the quotes from a meta-string.
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	return lexeme[1 : len(lexeme)-1]
}
