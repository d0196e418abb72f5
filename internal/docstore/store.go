package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned when a point operation targets a missing document.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned when a write violates a unique field.
	ErrConflict = errors.New("unique field conflict")
	// ErrInvalid is returned for malformed collection names, fields or payloads.
	ErrInvalid = errors.New("invalid request")
	// ErrClosed is returned by a store that has been closed.
	ErrClosed = errors.New("store closed")
)

// Store is the document store capability the dictionary consumes. Every
// implementation pushes the full current collection to subscribers once on
// subscribe and again after each change.
type Store interface {
	Create(ctx context.Context, collection string, data any) (string, error)
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error)
	Subscribe(ctx context.Context, collection string, onPush func([]Document), onError func(error)) (func(), error)
}

// Document is a stored JSON object and its store-assigned id.
type Document struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Decode unmarshals the document payload into v.
func (d Document) Decode(v any) error {
	if len(d.Data) == 0 {
		return fmt.Errorf("decode document %s: empty payload", d.ID)
	}
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validIdent(kind, s string) error {
	if !identPattern.MatchString(s) {
		return fmt.Errorf("%w: %s %q", ErrInvalid, kind, s)
	}
	return nil
}

// encodeObject marshals data and checks that it is a JSON object.
func encodeObject(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: encode payload: %v", ErrInvalid, err)
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil || object == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", ErrInvalid)
	}
	return raw, nil
}

func jsonMarshal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
