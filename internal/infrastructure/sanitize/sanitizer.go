// Package sanitize cleans untrusted article HTML before display.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"NewsLens/internal/infrastructure/parser"
)

var blankLines = regexp.MustCompile(`\n[ \t]*\n`)

// Sanitizer provides HTML sanitization functionality.
type Sanitizer struct {
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

// New creates a Sanitizer with a UGC policy: common formatting is kept,
// scripts and event handlers are removed, links get nofollow.
func New() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{
		policy: p,
		strict: bluemonday.StrictPolicy(),
	}
}

// Sanitize returns display-safe HTML for content. Plain text is escaped and
// split into paragraphs. The result is empty when nothing readable survives.
func (s *Sanitizer) Sanitize(content string) string {
	var out string
	if parser.LooksLikeHTML(content) {
		out = strings.TrimSpace(s.policy.Sanitize(content))
	} else {
		out = paragraphs(content)
	}

	if strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(out))) == "" {
		return ""
	}
	return out
}

func paragraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var parts []string
	for _, part := range blankLines.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, "<p>"+html.EscapeString(part)+"</p>")
		}
	}
	return strings.Join(parts, "\n")
}
