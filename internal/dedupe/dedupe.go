// Package dedupe collapses a raw listing into the canonical record set.
package dedupe

import "NewsLens/internal/domain"

// Dedupe returns one record per identity key. A key keeps the position of its
// first occurrence while its value is the last record seen for it.
func Dedupe(records []domain.RawRecord) []domain.Record {
	index := make(map[string]int, len(records))
	out := make([]domain.Record, 0, len(records))

	for _, rec := range records {
		key := rec.Key()
		if pos, ok := index[key]; ok {
			out[pos] = rec
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}

	return out
}

// Anonymous counts records lacking both id and url.
func Anonymous(records []domain.RawRecord) int {
	n := 0
	for _, rec := range records {
		if !rec.HasIdentity() {
			n++
		}
	}
	return n
}
