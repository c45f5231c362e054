// Package payload decodes loosely-typed list and detail responses into domain
// values. Wrong or missing field types are defaulted, never reported.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"NewsLens/internal/domain"
	"NewsLens/internal/infrastructure/parser"
)

// ErrUnexpectedShape is returned when a response holds no recognisable list or object.
var ErrUnexpectedShape = errors.New("unexpected payload shape")

var (
	listKeys   = []string{"articles", "data", "results", "items", "news"}
	detailKeys = []string{"data", "article", "result"}
)

// ListItems extracts the record array from a bare array or a wrapping object.
func ListItems(body any) ([]any, error) {
	switch v := body.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range listKeys {
			if items, ok := v[key].([]any); ok {
				return items, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no article list", ErrUnexpectedShape)
}

// DetailObject extracts the detail object, unwrapping a data/article envelope
// when the top level carries no content of its own.
func DetailObject(body any) (map[string]any, error) {
	obj, ok := asObject(body)
	if !ok {
		return nil, fmt.Errorf("%w: detail is not an object", ErrUnexpectedShape)
	}
	if _, has := obj["content"]; has {
		return obj, nil
	}
	for _, key := range detailKeys {
		if inner, ok := asObject(obj[key]); ok {
			return inner, nil
		}
	}
	return obj, nil
}

// DecodeRecords converts every object in items; entries that are not objects
// are skipped and counted.
func DecodeRecords(items []any) ([]domain.RawRecord, int) {
	records := make([]domain.RawRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			skipped++
			continue
		}
		records = append(records, DecodeRecord(obj))
	}
	return records, skipped
}

// DecodeRecord converts one listing object. A missing or unknown sentiment
// becomes Neutral; markup in text is flattened to paragraphs.
func DecodeRecord(obj map[string]any) domain.RawRecord {
	sentiment, ok := domain.ParseSentiment(String(obj["sentiment"]))
	if !ok {
		sentiment = domain.SentimentNeutral
	}

	text := String(obj["text"])
	if parser.LooksLikeHTML(text) {
		text = parser.ExtractText(text)
	}

	return domain.RawRecord{
		ID:          identity(obj["id"]),
		URL:         String(obj["url"]),
		Title:       String(obj["title"]),
		Description: String(obj["description"]),
		Text:        text,
		Category:    String(obj["category"]),
		Sentiment:   sentiment,
		Confidence:  Float(obj["confidence"]),
		Source:      sourceName(obj["source"]),
		Author:      String(obj["author"]),
		Tags:        Strings(obj["tags"]),
		Date:        String(obj["date"]),
		PublishedAt: String(first(obj, "publishedAt", "published_at")),
	}
}

// identity reads an id field. A numeric zero counts as absent so the record
// falls back to its url.
func identity(v any) string {
	id := String(v)
	switch v.(type) {
	case json.Number, float64, int, int64, uint64:
		if f, err := strconv.ParseFloat(id, 64); err == nil && f == 0 {
			return ""
		}
	}
	return id
}

// DecodeDetail converts a detail object.
func DecodeDetail(obj map[string]any) domain.DetailPayload {
	return domain.DetailPayload{
		Content:    String(obj["content"]),
		Author:     String(obj["author"]),
		ReadTime:   String(first(obj, "readTime", "read_time")),
		Tags:       Strings(obj["tags"]),
		Confidence: Float(obj["confidence"]),
	}
}

// String coerces scalars to text; anything else is empty.
func String(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// Float coerces numbers and numeric strings; non-finite values become 0.
func Float(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Strings coerces a list or a comma separated string. Absent yields nil; an
// explicit empty list yields an empty, non-nil slice.
func Strings(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(String(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string{}, t...)
	case string:
		out := []string{}
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// sourceName accepts "Reuters" or {"id": "reuters", "name": "Reuters"}.
func sourceName(v any) string {
	if obj, ok := asObject(v); ok {
		return String(first(obj, "name", "id"))
	}
	return String(v)
}

func first(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// asObject also accepts the map[any]any that YAML decoding can produce.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
