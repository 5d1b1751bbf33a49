package slug

import "strings"

// Precomposed Hangul syllables occupy a single contiguous block arranged as
// 19 initials x 21 medials x 28 finals, so a syllable decomposes into its
// three jamo by plain integer arithmetic on the code point.
const (
	hangulBase = 0xAC00
	hangulEnd  = hangulBase + 19*21*28 - 1

	medialCount = 21
	finalCount  = 28
)

// Revised Romanization of Korean, transcription form. The silent initial
// ㅇ and the absent final (index 0) both romanize to the empty string.
var (
	initials = [19]string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp", "s",
		"ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	medials = [21]string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o", "wa",
		"wae", "oe", "yo", "u", "wo", "we", "wi", "yu", "eu", "ui", "i",
	}
	finals = [28]string{
		"", "g", "kk", "gs", "n", "nj", "nh", "d", "l", "lg",
		"lm", "lb", "ls", "lt", "lp", "lh", "m", "b", "bs", "s",
		"ss", "ng", "j", "ch", "k", "t", "p", "h",
	}
)

// isHangulSyllable reports whether r falls in the precomposed syllable block.
func isHangulSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulEnd
}

// romanizeSyllable maps one precomposed syllable to its Latin transcription.
func romanizeSyllable(r rune) string {
	idx := int(r - hangulBase)
	ini := idx / (medialCount * finalCount)
	med := (idx / finalCount) % medialCount
	fin := idx % finalCount
	return initials[ini] + medials[med] + finals[fin]
}

// Transliterate replaces every Hangul syllable in s with its romanization
// and passes all other runes through unchanged. It is a total function:
// every code point has a defined mapping, and ordering is preserved.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isHangulSyllable(r) {
			b.WriteString(romanizeSyllable(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
