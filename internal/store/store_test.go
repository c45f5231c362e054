package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsLens/internal/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{ID: "1", Title: "Markets rally on rate cut", Category: "Business", Sentiment: domain.SentimentPositive},
		{ID: "2", Title: "Storm warning issued", Description: "Coastal areas brace", Category: "Weather", Sentiment: domain.SentimentNegative},
		{ID: "3", Title: "City council meets", Category: "Politics", Sentiment: domain.SentimentNeutral},
		{ID: "4", Title: "Tech shares steady", Description: "MARKETS quiet ahead of earnings", Sentiment: domain.SentimentNeutral},
		{ID: "5", Title: "Café reopens", Category: "Local", Sentiment: domain.SentimentPositive},
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(domain.DefaultFilterCriteria())
	require.NoError(t, err)
	s.Replace(sampleRecords())
	return s
}

func TestStoreDefaultsToNeutral(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	view := s.View()

	assert.Equal(t, domain.SentimentNeutral, view.Criteria.Sentiment)
	assert.Len(t, view.Visible, 2)
	assert.Equal(t, map[domain.Sentiment]int{
		domain.SentimentPositive: 2,
		domain.SentimentNeutral:  2,
		domain.SentimentNegative: 1,
	}, view.Counts)
	assert.Equal(t, 5, view.Matched)
}

func TestStoreSearchAffectsCounts(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	s.SetSearch("markets")

	view := s.View()
	assert.Equal(t, 1, view.Counts[domain.SentimentPositive])
	assert.Equal(t, 1, view.Counts[domain.SentimentNeutral])
	assert.Equal(t, 0, view.Counts[domain.SentimentNegative])
	require.Len(t, view.Visible, 1)
	assert.Equal(t, "4", view.Visible[0].ID)
}

func TestStoreSearchMatchesCategoryAndFoldsCase(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	require.NoError(t, s.SetSentiment(domain.SentimentPositive))

	s.SetSearch("CAFÉ")
	view := s.View()
	require.Len(t, view.Visible, 1)
	assert.Equal(t, "5", view.Visible[0].ID)

	s.SetSearch("busi")
	view = s.View()
	require.Len(t, view.Visible, 1)
	assert.Equal(t, "1", view.Visible[0].ID)
}

func TestStoreCountsPartitionSearchPool(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	for _, q := range []string{"", "a", "storm", "e", "zzz"} {
		s.SetSearch(q)
		view := s.View()

		sum := 0
		for _, sentiment := range domain.Sentiments {
			sum += view.Counts[sentiment]
		}
		assert.Equal(t, view.Matched, sum, "search %q", q)
	}
}

func TestStoreRejectsUnknownSentiment(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	err := s.SetSentiment("Angry")

	assert.ErrorIs(t, err, ErrUnknownSentiment)
	assert.Equal(t, domain.SentimentNeutral, s.Criteria().Sentiment)

	_, err = New(domain.FilterCriteria{})
	assert.ErrorIs(t, err, ErrUnknownSentiment)
}

func TestStoreReplaceRecomputes(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	s.Replace([]domain.Record{{ID: "9", Title: "Only one", Sentiment: domain.SentimentNeutral}})

	view := s.View()
	assert.Len(t, view.Visible, 1)
	assert.Equal(t, 1, view.Matched)

	rec, ok := s.Lookup("9")
	assert.True(t, ok)
	assert.Equal(t, "Only one", rec.Title)

	_, ok = s.Lookup("1")
	assert.False(t, ok)
}

func TestComputeIsDeterministic(t *testing.T) {
	t.Parallel()

	criteria := domain.FilterCriteria{Sentiment: domain.SentimentPositive, Search: "a"}
	first := Compute(sampleRecords(), criteria)
	second := Compute(sampleRecords(), criteria)

	assert.Equal(t, first, second)
}

func TestViewIsACopy(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	view := s.View()
	view.Visible[0].Title = "mutated"
	view.Counts[domain.SentimentNeutral] = 99

	fresh := s.View()
	assert.NotEqual(t, "mutated", fresh.Visible[0].Title)
	assert.Equal(t, 2, fresh.Counts[domain.SentimentNeutral])
}
