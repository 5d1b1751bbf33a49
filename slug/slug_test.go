package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devhyun/devlog/slug"
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single syllable with silent initial",
			input:    "아",
			expected: "a",
		},
		{
			name:     "syllables with finals",
			input:    "전략",
			expected: "jeonryag",
		},
		{
			name:     "mixed korean and ascii",
			input:    "JPA 정복",
			expected: "JPA jeongbog",
		},
		{
			name:     "non-korean passes through",
			input:    "Hello, World!",
			expected: "Hello, World!",
		},
		{
			name:     "latin diacritics untouched",
			input:    "café",
			expected: "café",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "compound vowels and double consonants",
			input:    "왜 꿈",
			expected: "wae kkum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Transliterate(tt.input))
		})
	}
}

// Every syllable in the block must romanize without panicking, and only the
// bare silent-initial syllables may come out empty per jamo; the concatenated
// result is never empty because every medial has a non-empty romanization.
func TestTransliterateTotalOverBlock(t *testing.T) {
	for r := rune(0xAC00); r < 0xAC00+11172; r++ {
		got := slug.Transliterate(string(r))
		assert.NotEmpty(t, got, "syllable %U romanized to empty string", r)
		assert.Equal(t, strings.ToLower(got), got, "syllable %U romanized with uppercase", r)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation stripped",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "whitespace runs collapse",
			input:    "too    many\t spaces",
			expected: "too-many-spaces",
		},
		{
			name:     "hyphen runs collapse",
			input:    "a---b - c",
			expected: "a-b-c",
		},
		{
			name:     "leading and trailing trimmed",
			input:    " -padded- ",
			expected: "padded",
		},
		{
			name:     "hangul retained",
			input:    "전략 패턴",
			expected: "전략-패턴",
		},
		{
			name:     "only punctuation yields empty",
			input:    "!!!",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"전략 패턴",
		"  a---b  c  ",
		"JPA 정복하기: N+1 문제 해결",
	}
	for _, in := range inputs {
		once := slug.Normalize(in)
		assert.Equal(t, once, slug.Normalize(once), "Normalize not idempotent for %q", in)
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "korean title",
			input:    "전략 패턴",
			expected: "jeonryag-paeteon",
		},
		{
			name:     "mixed title",
			input:    "JPA 정복",
			expected: "jpa-jeongbog",
		},
		{
			name:     "long mixed title",
			input:    "전략 패턴, 코틀린과 스프링으로 효율적으로 써보자",
			expected: "jeonryag-paeteon-koteulringwa-seupeuringeuro-hyoyuljeogeuro-sseoboja",
		},
		{
			name:     "empty title",
			input:    "",
			expected: "",
		},
		{
			name:     "nothing retainable",
			input:    "!!!",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slug.Generate(tt.input)
			assert.Equal(t, tt.expected, got)
			if got != "" {
				assert.NotContains(t, got, "--")
				assert.False(t, strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-"))
			}
		})
	}
}
