package render

import (
	"strings"
	"testing"
)

func TestCleanMarkdownStripsFences(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"```markdown\n# Advice\n```", "# Advice"},
		{"```\nplain\n```", "plain"},
		{"  no fences  ", "no fences"},
	}
	for _, tc := range cases {
		if got := CleanMarkdown(tc.input); got != tc.want {
			t.Fatalf("CleanMarkdown(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestAdviceHTML(t *testing.T) {
	html, err := AdviceHTML("## Savings\n\nCut **dining** spend.")
	if err != nil {
		t.Fatalf("AdviceHTML: %v", err)
	}
	if !strings.Contains(html, "<h2>Savings</h2>") || !strings.Contains(html, "<strong>dining</strong>") {
		t.Fatalf("html = %s", html)
	}
}

func TestPlainTextCollapsesToOneLine(t *testing.T) {
	got := PlainText("## Savings\n\n- Cut dining\n- Pay the card\n")
	if got != "Savings Cut dining Pay the card" {
		t.Fatalf("PlainText = %q", got)
	}
}
