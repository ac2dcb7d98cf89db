// Package render prepares agent advice text for the presentation
// layer. Agents answer in Markdown, sometimes wrapped in code fences.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
)

// CleanMarkdown strips outer markdown code fences so the output is
// pure Markdown ready for rendering.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// AdviceHTML renders advice Markdown to HTML.
func AdviceHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(CleanMarkdown(markdown)), &buf); err != nil {
		return "", fmt.Errorf("markdown render failed: %w", err)
	}
	return buf.String(), nil
}

// PlainText reduces advice Markdown to a single-line digest, for
// notifications and compact status rows.
func PlainText(markdown string) string {
	html, err := AdviceHTML(markdown)
	if err != nil {
		return strings.TrimSpace(markdown)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(markdown)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
