// Package store holds the canonical record set together with the user's
// filter criteria and keeps the visible subset and sentiment counts in sync.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"NewsLens/internal/domain"
)

// ErrUnknownSentiment is returned when a filter names a sentiment outside the three values.
var ErrUnknownSentiment = errors.New("unknown sentiment")

// View is the derived output consumed by presentation.
type View struct {
	Criteria domain.FilterCriteria
	Visible  []domain.Record
	Counts   map[domain.Sentiment]int
	// Matched is the size of the search-filtered pool, regardless of sentiment.
	Matched int
}

// Store owns the canonical set. All mutation goes through its methods and
// every mutation recomputes the view.
type Store struct {
	mu       sync.RWMutex
	records  []domain.Record
	criteria domain.FilterCriteria
	view     View
}

// New builds an empty store with the given initial criteria.
func New(criteria domain.FilterCriteria) (*Store, error) {
	if _, ok := domain.ParseSentiment(string(criteria.Sentiment)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSentiment, criteria.Sentiment)
	}
	s := &Store{criteria: criteria}
	s.recompute()
	return s, nil
}

// Replace swaps in a freshly deduplicated canonical set.
func (s *Store) Replace(records []domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]domain.Record(nil), records...)
	s.recompute()
}

// SetSentiment selects the sentiment tab.
func (s *Store) SetSentiment(sentiment domain.Sentiment) error {
	parsed, ok := domain.ParseSentiment(string(sentiment))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSentiment, sentiment)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria.Sentiment = parsed
	s.recompute()
	return nil
}

// SetSearch updates the free-text search.
func (s *Store) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria.Search = search
	s.recompute()
}

// Criteria returns the current filter.
func (s *Store) Criteria() domain.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// View returns a copy of the last computed view.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.view
	out.Visible = append([]domain.Record(nil), s.view.Visible...)
	out.Counts = make(map[domain.Sentiment]int, len(s.view.Counts))
	for k, v := range s.view.Counts {
		out.Counts[k] = v
	}
	return out
}

// Records returns the canonical set in order.
func (s *Store) Records() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Record(nil), s.records...)
}

// Lookup finds a record by identity key.
func (s *Store) Lookup(key string) (domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Key() == key {
			return rec, true
		}
	}
	return domain.Record{}, false
}

func (s *Store) recompute() {
	s.view = Compute(s.records, s.criteria)
}

// Compute derives the view from the canonical set and criteria alone.
func Compute(records []domain.Record, criteria domain.FilterCriteria) View {
	match := newMatcher(criteria.Search)

	view := View{
		Criteria: criteria,
		Visible:  []domain.Record{},
		Counts:   make(map[domain.Sentiment]int, len(domain.Sentiments)),
	}
	for _, s := range domain.Sentiments {
		view.Counts[s] = 0
	}

	for _, rec := range records {
		if !match(rec) {
			continue
		}
		view.Matched++
		if _, known := view.Counts[rec.Sentiment]; known {
			view.Counts[rec.Sentiment]++
		}
		if rec.Sentiment == criteria.Sentiment {
			view.Visible = append(view.Visible, rec)
		}
	}

	return view
}

// newMatcher returns the shared search predicate over title, description and
// category. Matching is a case-folded, NFKC-normalised substring test.
func newMatcher(search string) func(domain.Record) bool {
	if search == "" {
		return func(domain.Record) bool { return true }
	}

	caser := cases.Fold()
	fold := func(s string) string {
		return caser.String(norm.NFKC.String(s))
	}
	needle := fold(search)

	return func(rec domain.Record) bool {
		for _, field := range []string{rec.Title, rec.Description, rec.Category} {
			if field != "" && strings.Contains(fold(field), needle) {
				return true
			}
		}
		return false
	}
}
