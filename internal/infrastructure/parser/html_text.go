// Package parser flattens scraped article markup into paragraph text.
package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, div, h1, h2, h3, h4, h5, h6, ul, ol, li, dl, dt, dd, blockquote, pre, " +
	"table, thead, tbody, tr, td, th, article, section, main, figure, figcaption, hr"

var tagExpr = regexp.MustCompile(`(?i)<(p|div|br|span|a|b|i|em|strong|h[1-6]|ul|ol|li|article|section|blockquote|pre|table|script|style|img)\b[^>]*>`)

// LooksLikeHTML reports whether text contains recognisable markup.
func LooksLikeHTML(text string) bool {
	return tagExpr.MatchString(text)
}

// ExtractText converts markup into plain paragraphs separated by blank lines.
// Scripts, styles and page chrome are dropped. Each innermost block element
// becomes one paragraph. Text outside block elements keeps its own line
// structure, so inline-only markup such as a lone <b> only loses its tags.
func ExtractText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, form, iframe").Remove()

	w := &walker{}
	w.walk(doc.Find("body"))
	w.flush()
	return strings.Join(w.paragraphs, "\n\n")
}

type walker struct {
	paragraphs []string
	loose      strings.Builder
}

func (w *walker) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		switch name := goquery.NodeName(child); {
		case name == "#text":
			w.loose.WriteString(child.Text())
		case name == "br":
			w.loose.WriteString("\n")
		case strings.HasPrefix(name, "#"):
			// comments and doctypes
		case child.Is(blockSelector):
			w.flush()
			if child.Find(blockSelector).Length() == 0 {
				w.add(collapse(child.Text()))
				return
			}
			w.walk(child)
			w.flush()
		default:
			w.walk(child)
		}
	})
}

// flush turns buffered loose text into paragraphs. Blank lines separate
// paragraphs; single newlines inside a paragraph are kept.
func (w *walker) flush() {
	raw := w.loose.String()
	w.loose.Reset()

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = collapse(line)
		if line == "" {
			w.add(strings.Join(lines, "\n"))
			lines = lines[:0]
			continue
		}
		lines = append(lines, line)
	}
	w.add(strings.Join(lines, "\n"))
}

func (w *walker) add(paragraph string) {
	if paragraph != "" {
		w.paragraphs = append(w.paragraphs, paragraph)
	}
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
