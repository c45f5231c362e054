package domain

// PreviewNote is the trailing disposition attached to a synthesized preview.
type PreviewNote int

const (
	NoteNone PreviewNote = iota
	// NoteExternal means the source carries substantially more than the preview.
	NoteExternal
	// NoteSummary means the preview shows the summary as supplied.
	NoteSummary
)

// PreviewContent is the bounded, paragraph-based rendering built before any
// detail fetch. Paragraphs hold plain (unescaped) text.
type PreviewContent struct {
	Paragraphs  []string
	Note        PreviewNote
	Placeholder bool
}

// DetailPayload is the on-demand per-item response. Zero values mean the field
// was not supplied, except Tags where a nil slice means absent.
type DetailPayload struct {
	Content    string
	Author     string
	ReadTime   string
	Tags       []string
	Confidence float64
}

// ContentOrigin tells which stage produced the selection's content.
type ContentOrigin string

const (
	OriginPreview ContentOrigin = "preview"
	OriginDetail  ContentOrigin = "detail"
)

// ArticleSelection is the fully-defaulted view of the record the user is
// focused on.
type ArticleSelection struct {
	Key         string
	ID          string
	URL         string
	Title       string
	Source      string
	Category    string
	Sentiment   Sentiment
	Author      string
	ReadTime    string
	Tags        []string
	Confidence  float64
	PublishedAt string

	Preview PreviewContent
	// Content is HTML markup ready for display.
	Content string
	Origin  ContentOrigin
}

// Clone returns a copy that shares no slices with the receiver.
func (s ArticleSelection) Clone() ArticleSelection {
	out := s
	if s.Tags != nil {
		out.Tags = append([]string{}, s.Tags...)
	}
	if s.Preview.Paragraphs != nil {
		out.Preview.Paragraphs = append([]string{}, s.Preview.Paragraphs...)
	}
	return out
}
