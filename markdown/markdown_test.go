package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicFormatting(t *testing.T) {
	got := Render("# Title\n\nSome **bold** and *italic* text.")
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Title") {
		t.Errorf("heading not rendered: %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %q", got)
	}
	if !strings.Contains(got, "<em>italic</em>") {
		t.Errorf("italic not rendered: %q", got)
	}
}

func TestRenderFencedCodeKeepsLanguageClass(t *testing.T) {
	got := Render("```kotlin\ninterface PaymentStrategy {}\n```")
	if !strings.Contains(got, "<pre>") || !strings.Contains(got, "<code") {
		t.Errorf("code block not rendered: %q", got)
	}
	if !strings.Contains(got, "language-kotlin") {
		t.Errorf("language class stripped: %q", got)
	}
	if !strings.Contains(got, "PaymentStrategy") {
		t.Errorf("code content missing: %q", got)
	}
}

func TestRenderGFMTable(t *testing.T) {
	got := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestRenderStripsScript(t *testing.T) {
	got := Render("hello <script>alert(1)</script> world")
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Errorf("script survived sanitization: %q", got)
	}
}

func TestRenderStripsJavascriptLinks(t *testing.T) {
	got := Render(`[click](javascript:alert(1))`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript: URL survived sanitization: %q", got)
	}
}

func TestRenderKoreanContent(t *testing.T) {
	got := Render("먼저 이 글은 **Kotlin + Spring** 기준으로 작성된 글임을 알립니다.")
	if !strings.Contains(got, "먼저 이 글은") {
		t.Errorf("korean text mangled: %q", got)
	}
	if !strings.Contains(got, "<strong>Kotlin + Spring</strong>") {
		t.Errorf("bold inside korean text not rendered: %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	got := Excerpt("# JPA N+1 문제\n\nJPA를 사용하다 보면 가장 흔하게 마주치는 성능 문제입니다.", 200)
	if strings.Contains(got, "<") || strings.Contains(got, "#") {
		t.Errorf("excerpt contains markup: %q", got)
	}
	if !strings.Contains(got, "JPA") {
		t.Errorf("excerpt lost content: %q", got)
	}
}

func TestExcerptTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Excerpt(long, 50)
	if len([]rune(got)) > 51 { // 50 runes plus ellipsis
		t.Errorf("excerpt too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated excerpt missing ellipsis: %q", got)
	}
}
