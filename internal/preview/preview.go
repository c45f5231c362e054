// Package preview turns noisy scraped article text into a short,
// paragraph-aware preview that can be shown before the full body arrives.
package preview

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"NewsLens/internal/domain"
)

const (
	minParagraphLen = 50
	maxParagraphs   = 3
	charBudget      = 800
	chunkThreshold  = 300
	minSentenceCut  = 100
	truncationSlack = 200
)

// Fixed texts shown to the reader.
const (
	PlaceholderText  = "A preview is not available for this story. Open the original article to read it in full."
	ExternalNoteText = "Full content is available on the original site."
	SummaryNoteText  = "Source summary displayed."
)

var (
	// NewsAPI-style truncation suffix, e.g. "... [+2239 chars]".
	noiseMarker = regexp.MustCompile(`\s*\[\+\d+ chars\]$`)
	blankLines  = regexp.MustCompile(`\n[ \t]*\n`)
)

// Synthesize builds a preview from rawText, or from fallbackText when rawText
// is empty. The result is deterministic and never fails: unusable input yields
// the placeholder.
func Synthesize(rawText, fallbackText string) domain.PreviewContent {
	input := rawText
	if input == "" {
		input = fallbackText
	}

	trimmed := strings.TrimSpace(strings.ReplaceAll(input, "\r\n", "\n"))
	if runeLen(trimmed) < minParagraphLen {
		return placeholder()
	}

	hadMarker := noiseMarker.MatchString(trimmed)
	cleaned := strings.TrimSpace(noiseMarker.ReplaceAllString(trimmed, ""))
	if runeLen(cleaned) < minParagraphLen {
		return placeholder()
	}

	paragraphs := accumulate(splitParagraphs(cleaned))
	if len(paragraphs) == 0 {
		paragraphs = []string{singleChunk(cleaned)}
	}

	rendered := 0
	for _, p := range paragraphs {
		rendered += runeLen(p)
	}

	note := domain.NoteSummary
	if hadMarker || runeLen(input) > rendered+truncationSlack {
		note = domain.NoteExternal
	}

	return domain.PreviewContent{Paragraphs: paragraphs, Note: note}
}

// Render produces escaped HTML for the preview, one <p> per paragraph followed
// by the disposition note.
func Render(content domain.PreviewContent) string {
	var b strings.Builder
	for i, p := range content.Paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(p))
		b.WriteString("</p>")
	}

	if text := NoteText(content.Note); text != "" {
		b.WriteString("\n<p class=\"preview-note\"><em>")
		b.WriteString(text)
		b.WriteString("</em></p>")
	}

	return b.String()
}

// NoteText maps a note to its display text.
func NoteText(note domain.PreviewNote) string {
	switch note {
	case domain.NoteExternal:
		return ExternalNoteText
	case domain.NoteSummary:
		return SummaryNoteText
	default:
		return ""
	}
}

func placeholder() domain.PreviewContent {
	return domain.PreviewContent{
		Paragraphs:  []string{PlaceholderText},
		Note:        domain.NoteNone,
		Placeholder: true,
	}
}

// splitParagraphs prefers blank-line breaks and falls back to single newlines.
// Text without any break yields no candidates.
func splitParagraphs(text string) []string {
	parts := blankLines.Split(text, -1)
	if len(parts) < 2 {
		parts = strings.Split(text, "\n")
	}
	if len(parts) < 2 {
		return nil
	}

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if runeLen(part) >= minParagraphLen {
			out = append(out, part)
		}
	}
	return out
}

// accumulate takes paragraphs in order until the count or character budget is
// reached. The first paragraph is always taken.
func accumulate(candidates []string) []string {
	var (
		out   []string
		total int
	)
	for _, p := range candidates {
		if len(out) == maxParagraphs {
			break
		}
		n := runeLen(p)
		if len(out) > 0 && total+n > charBudget {
			break
		}
		out = append(out, p)
		total += n
	}
	return out
}

// singleChunk cuts unbroken text to the budget, preferring a sentence end.
func singleChunk(text string) string {
	runes := []rune(text)
	if len(runes) <= chunkThreshold {
		return text
	}

	chunk := runes
	if len(chunk) > charBudget {
		chunk = chunk[:charBudget]
	}
	for i := len(chunk) - 1; i > minSentenceCut; i-- {
		switch chunk[i] {
		case '.', '!', '?':
			return string(chunk[:i+1])
		}
	}
	return string(chunk)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
