package analysis

import (
	"strings"
	"unicode"
)

var tokenReplacer = strings.NewReplacer("’", "'", "--", " ")

// Tokenize lower-cases text and splits it into words. Punctuation separates
// words and is dropped. Apostrophes and hyphens inside a word ("don't",
// "like-minded") are kept, and a curly apostrophe is read as a straight one.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(tokenReplacer.Replace(strings.ToLower(text)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// CountWords returns the number of tokens in text.
func CountWords(text string) int { return len(Tokenize(text)) }
