package domain

import "strings"

// Sentiment is the classification attached to every news record.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments lists the three values in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// ParseSentiment matches case-insensitively; ok is false for anything else.
func ParseSentiment(value string) (Sentiment, bool) {
	for _, s := range Sentiments {
		if strings.EqualFold(strings.TrimSpace(value), string(s)) {
			return s, true
		}
	}
	return "", false
}

// RawRecord is a listing entry as delivered by the news source. Every field is
// optional upstream; decoding leaves absent fields at their zero value.
type RawRecord struct {
	ID          string
	URL         string
	Title       string
	Description string
	Text        string
	Category    string
	Sentiment   Sentiment
	Confidence  float64
	Source      string
	Author      string
	Tags        []string
	Date        string
	PublishedAt string
}

// Record is a member of the canonical set. It has the same shape as the raw
// listing entry; the distinction is that the set holds one per identity key.
type Record = RawRecord

// Key returns the identity key: id when present, url otherwise. A record with
// neither yields the empty key and merges with every other such record.
func (r RawRecord) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.URL
}

// HasIdentity reports whether the record carries an id or url.
func (r RawRecord) HasIdentity() bool {
	return r.Key() != ""
}

// FilterCriteria is the user's current sentiment tab and search text.
type FilterCriteria struct {
	Sentiment Sentiment
	Search    string
}

// DefaultFilterCriteria selects Neutral with no search text.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{Sentiment: SentimentNeutral}
}
