// Package fixture serves list and detail payloads from a local YAML or JSON
// file. It backs offline runs and demos.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"NewsLens/internal/domain"
	"NewsLens/internal/infrastructure/payload"
	"NewsLens/internal/ports"
)

// ErrDetailNotFound is wrapped in the TransportError returned for unknown ids.
var ErrDetailNotFound = errors.New("detail not found")

type document struct {
	Articles []any          `yaml:"articles"`
	Details  map[string]any `yaml:"details"`
}

// Source reads the file on every call so edits show up on the next refresh.
type Source struct {
	path string
}

var _ ports.NewsSource = (*Source)(nil)

// NewSource binds the fixture file path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// FetchList returns every article in the file.
func (s *Source) FetchList(_ context.Context) ([]domain.RawRecord, error) {
	doc, err := s.load("fetch list")
	if err != nil {
		return nil, err
	}
	records, _ := payload.DecodeRecords(doc.Articles)
	return records, nil
}

// FetchDetail returns the details entry keyed by id.
func (s *Source) FetchDetail(_ context.Context, id string) (domain.DetailPayload, error) {
	const op = "fetch detail"

	doc, err := s.load(op)
	if err != nil {
		return domain.DetailPayload{}, err
	}

	raw, ok := doc.Details[id]
	if !ok {
		return domain.DetailPayload{}, domain.NewTransportError(op, http.StatusNotFound, fmt.Errorf("%w: %s", ErrDetailNotFound, id))
	}
	obj, err := payload.DetailObject(raw)
	if err != nil {
		return domain.DetailPayload{}, domain.NewTransportError(op, 0, err)
	}
	return payload.DecodeDetail(obj), nil
}

func (s *Source) load(op string) (document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return document{}, domain.NewTransportError(op, 0, fmt.Errorf("read fixture: %w", err))
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return document{}, domain.NewTransportError(op, 0, fmt.Errorf("parse fixture: %w", err))
	}
	return doc, nil
}
