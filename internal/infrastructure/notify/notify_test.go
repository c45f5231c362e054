package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiFansOut(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	m := Multi{
		NewLog(slog.New(slog.NewTextHandler(&first, nil))),
		nil,
		NewLog(slog.New(slog.NewTextHandler(&second, nil))),
	}

	m.NotifySuccess(context.Background(), "Loaded 3 articles")
	m.NotifyError(context.Background(), "Failed to load news")

	for _, buf := range []*bytes.Buffer{&first, &second} {
		out := buf.String()
		assert.Contains(t, out, `msg="Loaded 3 articles" notification=success`)
		assert.Contains(t, out, `msg="Failed to load news" notification=error`)
	}
}

func TestNewLogNilIsSafe(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NewLog(nil).NotifyError(context.Background(), "x")
	})
}

type flushingSink struct {
	*Log
	flushed int
	err     error
}

func (f *flushingSink) Flush(context.Context) error {
	f.flushed++
	return f.err
}

func TestMultiFlushReachesBackgroundSinks(t *testing.T) {
	t.Parallel()

	errDown := errors.New("sink down")
	ok := &flushingSink{Log: NewLog(nil)}
	failing := &flushingSink{Log: NewLog(nil), err: errDown}

	m := Multi{NewLog(nil), ok, nil, failing}

	err := m.Flush(context.Background())
	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, 1, ok.flushed)
	assert.Equal(t, 1, failing.flushed)
}
