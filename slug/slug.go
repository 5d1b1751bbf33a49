// Package slug turns post titles into URL-safe identifiers. Korean titles
// are romanized through the Hangul syllable tables before normalization, so
// "전략 패턴" becomes "jeonryag-paeteon" rather than an empty string.
package slug

import (
	"strings"
	"unicode"
)

// Normalize reduces s to slug form: lowercase, with every character that is
// not an ASCII letter or digit, a Hangul syllable, whitespace, or a hyphen
// removed; whitespace runs and hyphen runs each collapse to a single hyphen,
// and leading/trailing hyphens are trimmed.
//
// The result may be empty when the input contains nothing retainable; the
// caller decides what to do about that (see Generate's users).
func Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case isHangulSyllable(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == '-':
			b.WriteRune('-')
		}
	}

	out := b.String()
	out = strings.Join(strings.Fields(out), "-")
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}

// Generate derives a slug from a human-entered title. It is used only when
// the author left the slug field blank; a manually supplied slug is trusted
// verbatim and never routed through this pipeline. Pure and deterministic.
func Generate(title string) string {
	return Normalize(Transliterate(title))
}
