package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedInput marks a record that carries neither id nor url. It is only
// reported, never returned from ingestion.
var ErrMalformedInput = errors.New("record has no id or url")

// TransportError wraps any failure to obtain a list or detail payload:
// network errors, non-2xx statuses and undecodable bodies.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError builds a TransportError for op.
func NewTransportError(op string, status int, err error) error {
	return &TransportError{Op: op, Status: status, Err: err}
}

// IsTransport reports whether err wraps a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
