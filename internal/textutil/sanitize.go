package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer rewrites separators and punctuation that carry meaning in
// titles before the rune filter drops everything else.
var fileNameReplacer = strings.NewReplacer(
	"&", "and",
	":", "-",
	"/", "-",
	"\\", "-",
	"_", "-",
)

// CleanForFilename maps arbitrary text to a single filesystem-safe path
// segment. Whitespace and underscores become dashes, letters, digits, marks,
// dots and parentheses are kept, and everything else is dropped. Runs of
// dashes collapse and leading/trailing dashes and dots are trimmed. The result
// is NFC-normalized and the function is idempotent.
//
//	CleanForFilename("Breaking Bad")        == "Breaking-Bad"
//	CleanForFilename("BREAKING_BAD_S01_D1") == "BREAKING-BAD-S01-D1"
func CleanForFilename(text string) string {
	text = norm.NFC.String(text)
	text = fileNameReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	lastDash := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if lastDash {
				continue
			}
			b.WriteRune('-')
			lastDash = true
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r),
			r == '.', r == '(', r == ')':
			b.WriteRune(r)
			lastDash = false
		}
	}

	out := strings.Trim(b.String(), "-.")
	return norm.NFC.String(out)
}
