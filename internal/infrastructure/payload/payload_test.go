package payload

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsLens/internal/domain"
	"NewsLens/internal/preview"
)

func decodeJSON(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestListItemsShapes(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`[{"id":1}]`,
		`{"articles":[{"id":1}]}`,
		`{"status":"ok","data":[{"id":1}]}`,
	} {
		items, err := ListItems(decodeJSON(t, body))
		require.NoError(t, err, body)
		assert.Len(t, items, 1)
	}

	_, err := ListItems(decodeJSON(t, `{"status":"ok"}`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, err = ListItems(decodeJSON(t, `"nope"`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestDecodeRecordsDefaultsWrongTypes(t *testing.T) {
	t.Parallel()

	items, err := ListItems(decodeJSON(t, `[
		{"id": 42, "url": "https://n.example/a", "title": null, "description": 7,
		 "sentiment": "positive", "confidence": "0.75", "source": {"id": "wire", "name": "Wire"},
		 "tags": "economy, rates", "publishedAt": "2025-11-08T10:00:00Z"},
		{"url": "https://n.example/b", "sentiment": "Furious", "confidence": "NaN", "tags": []},
		"garbage",
		{"confidence": true, "text": "<p>Para one</p><p>Para two</p>"}
	]`))
	require.NoError(t, err)

	records, skipped := DecodeRecords(items)
	require.Len(t, records, 3)
	assert.Equal(t, 1, skipped)

	first := records[0]
	assert.Equal(t, "42", first.ID)
	assert.Equal(t, "", first.Title)
	assert.Equal(t, "7", first.Description)
	assert.Equal(t, domain.SentimentPositive, first.Sentiment)
	assert.InDelta(t, 0.75, first.Confidence, 1e-9)
	assert.Equal(t, "Wire", first.Source)
	assert.Equal(t, []string{"economy", "rates"}, first.Tags)
	assert.Equal(t, "2025-11-08T10:00:00Z", first.PublishedAt)

	second := records[1]
	assert.Equal(t, domain.SentimentNeutral, second.Sentiment)
	assert.Zero(t, second.Confidence)
	assert.NotNil(t, second.Tags)
	assert.Empty(t, second.Tags)

	third := records[2]
	assert.False(t, third.HasIdentity())
	assert.Zero(t, third.Confidence)
	assert.Nil(t, third.Tags)
	assert.Equal(t, "Para one\n\nPara two", third.Text)
}

func TestDetailObjectUnwraps(t *testing.T) {
	t.Parallel()

	obj, err := DetailObject(decodeJSON(t, `{"data":{"content":"<p>x</p>","readTime":"4 min read"}}`))
	require.NoError(t, err)

	detail := DecodeDetail(obj)
	assert.Equal(t, "<p>x</p>", detail.Content)
	assert.Equal(t, "4 min read", detail.ReadTime)
	assert.Nil(t, detail.Tags)

	obj, err = DetailObject(decodeJSON(t, `{"content":"","author":"A","confidence":0.5,"data":{"content":"ignored"}}`))
	require.NoError(t, err)
	detail = DecodeDetail(obj)
	assert.Equal(t, "", detail.Content)
	assert.Equal(t, "A", detail.Author)

	_, err = DetailObject(decodeJSON(t, `[1,2]`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestFloatRejectsNonFinite(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Float(math.Inf(1)))
	assert.Zero(t, Float("Infinity"))
	assert.Equal(t, 3.0, Float(3))
	assert.Zero(t, Float(nil))
}

func TestAsObjectAcceptsYAMLMaps(t *testing.T) {
	t.Parallel()

	obj, ok := asObject(map[any]any{"id": 1, 2: "two"})
	require.True(t, ok)
	assert.Equal(t, "1", String(obj["id"]))
	assert.Equal(t, "two", obj["2"])
}

func TestDecodeRecordInlineMarkupKeepsParagraphs(t *testing.T) {
	t.Parallel()

	para := "Markets moved sharply as traders weighed the latest inflation data. "
	text := "<b>Breaking</b> " + para + "\n\n" + para + "\n\n" + para + "[+900 chars]"

	rec := DecodeRecord(map[string]any{"id": "7", "text": text})

	assert.Equal(t, "Breaking "+strings.TrimSpace(para)+"\n\n"+strings.TrimSpace(para)+"\n\n"+para+"[+900 chars]", rec.Text)

	content := preview.Synthesize(rec.Text, "")
	assert.Len(t, content.Paragraphs, 3)
	assert.Equal(t, domain.NoteExternal, content.Note)
}

func TestDecodeRecordMixedBlocksKeepLooseText(t *testing.T) {
	t.Parallel()

	text := "<p>Officials confirmed the bridge would reopen next week after repairs.</p>\n" +
		"Loose scraped body text that sits outside any paragraph element. [+1200 chars]"

	rec := DecodeRecord(map[string]any{"text": text})

	assert.Equal(t, "Officials confirmed the bridge would reopen next week after repairs.\n\n"+
		"Loose scraped body text that sits outside any paragraph element. [+1200 chars]", rec.Text)

	content := preview.Synthesize(rec.Text, "")
	require.Len(t, content.Paragraphs, 2)
	assert.Equal(t, "Loose scraped body text that sits outside any paragraph element.", content.Paragraphs[1])
	assert.Equal(t, domain.NoteExternal, content.Note)
}

func TestDecodeRecordZeroIDFallsBackToURL(t *testing.T) {
	t.Parallel()

	items, err := ListItems(decodeJSON(t, `[
		{"id": 0, "url": "https://n.example/zero"},
		{"id": "0", "url": "https://n.example/string-zero"}
	]`))
	require.NoError(t, err)

	records, _ := DecodeRecords(items)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].ID)
	assert.Equal(t, "https://n.example/zero", records[0].Key())
	assert.Equal(t, "0", records[1].ID)
}
