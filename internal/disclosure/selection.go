package disclosure

import (
	"math"
	"strings"
	"time"

	"NewsLens/internal/domain"
	"NewsLens/internal/preview"
)

const (
	UnknownAuthor   = "Unknown Author"
	DefaultReadTime = "3 min read"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NewSelection is the single place where a record is turned into a
// fully-defaulted display value, preview included.
func NewSelection(rec domain.Record) domain.ArticleSelection {
	pv := preview.Synthesize(rec.Text, rec.Description)

	tags := []string{}
	switch {
	case rec.Tags != nil:
		tags = append(tags, rec.Tags...)
	case rec.Category != "":
		tags = append(tags, rec.Category)
	}

	confidence := rec.Confidence
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		confidence = 0
	}

	return domain.ArticleSelection{
		Key:         rec.Key(),
		ID:          rec.ID,
		URL:         rec.URL,
		Title:       rec.Title,
		Source:      rec.Source,
		Category:    rec.Category,
		Sentiment:   rec.Sentiment,
		Author:      firstNonEmpty(rec.Author, rec.Source, UnknownAuthor),
		ReadTime:    DefaultReadTime,
		Tags:        tags,
		Confidence:  confidence,
		PublishedAt: NormalizeTimestamp(firstNonEmpty(rec.Date, rec.PublishedAt)),
		Preview:     pv,
		Content:     preview.Render(pv),
		Origin:      domain.OriginPreview,
	}
}

// NormalizeTimestamp re-emits parseable timestamps as RFC3339 UTC and keeps
// anything else verbatim.
func NormalizeTimestamp(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
