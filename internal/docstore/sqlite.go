package docstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// SQLite is a Store backed by a single SQLite database. Documents of every
// collection share one table; payloads are JSON text queried with json_extract.
type SQLite struct {
	db  *sql.DB
	hub *hub
}

var _ Store = (*SQLite)(nil)

// Option configures OpenSQLite.
type Option func(*sqliteOptions)

type sqliteOptions struct {
	unique [][2]string
}

// WithUniqueField makes field unique across the documents of collection.
// Writes that would break it fail with ErrConflict.
func WithUniqueField(collection, field string) Option {
	return func(o *sqliteOptions) {
		o.unique = append(o.unique, [2]string{collection, field})
	}
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string, opts ...Option) (*SQLite, error) {
	var o sqliteOptions
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps :memory: databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	for _, u := range o.unique {
		if err := createUniqueIndex(db, u[0], u[1]); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &SQLite{db: db, hub: newHub()}, nil
}

func createUniqueIndex(db *sql.DB, collection, field string) error {
	if err := validIdent("collection", collection); err != nil {
		return err
	}
	if err := validIdent("field", field); err != nil {
		return err
	}
	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS uniq_%[1]s_%[2]s ON documents (json_extract(data, '$.%[2]s')) WHERE collection = '%[1]s'",
		collection, field,
	)
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("create unique index %s.%s: %w", collection, field, err)
	}
	return nil
}

// Close stops every subscription and closes the database.
func (s *SQLite) Close() error {
	s.hub.close()
	return s.db.Close()
}

// Create inserts data as a new document and returns its id.
func (s *SQLite) Create(ctx context.Context, collection string, data any) (string, error) {
	if err := validIdent("collection", collection); err != nil {
		return "", err
	}
	raw, err := encodeObject(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, data, created_at) VALUES (?, ?, json(?), ?)",
		collection, id, string(raw), time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", mapConstraint(err))
	}

	s.hub.notify(collection)
	return id, nil
}

// Update merges patch into the document (RFC 7396 semantics: null removes a key).
func (s *SQLite) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	if err := validIdent("collection", collection); err != nil {
		return err
	}
	raw, err := encodeObject(patch)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET data = json_patch(data, ?) WHERE collection = ? AND id = ?",
		string(raw), collection, id,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", mapConstraint(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update document %s: %w", id, ErrNotFound)
	}

	s.hub.notify(collection)
	return nil
}

// Delete removes the document. Deleting a missing document is not an error.
func (s *SQLite) Delete(ctx context.Context, collection, id string) error {
	if err := validIdent("collection", collection); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.hub.notify(collection)
	}
	return nil
}

// QueryByField returns the documents whose field equals value.
func (s *SQLite) QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if err := validIdent("collection", collection); err != nil {
		return nil, err
	}
	if err := validIdent("field", field); err != nil {
		return nil, err
	}
	rawValue, err := jsonScalar(value)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, data FROM documents WHERE collection = ? AND json_extract(data, '$.' || ?) = json_extract(?, '$') ORDER BY created_at, id",
		collection, field, rawValue,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return scanDocuments(rows)
}

// Subscribe pushes the full collection now and after every change until the
// returned function is called or ctx ends. Callbacks run on one goroutine per
// subscription, never concurrently with each other.
func (s *SQLite) Subscribe(ctx context.Context, collection string, onPush func([]Document), onError func(error)) (func(), error) {
	if err := validIdent("collection", collection); err != nil {
		return nil, err
	}
	sub, err := s.hub.add(collection)
	if err != nil {
		return nil, err
	}
	sub.signal()

	go func() {
		defer s.hub.remove(sub)
		for {
			select {
			case <-sub.done:
				return
			case <-ctx.Done():
				return
			case <-sub.wake:
			}

			docs, err := s.list(ctx, collection)
			if sub.stopped() || ctx.Err() != nil {
				return
			}
			if err != nil {
				glog.Infof("[docstore]push %s error = %v", collection, err)
				if onError != nil {
					onError(err)
				}
				continue
			}
			glog.V(2).Infof("[docstore]push %s documents = %d", collection, len(docs))
			if onPush != nil {
				onPush(docs)
			}
		}
	}()

	return func() { s.hub.remove(sub) }, nil
}

// List returns every document of collection in creation order.
func (s *SQLite) List(ctx context.Context, collection string) ([]Document, error) {
	if err := validIdent("collection", collection); err != nil {
		return nil, err
	}
	return s.list(ctx, collection)
}

func (s *SQLite) list(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, data FROM documents WHERE collection = ? ORDER BY created_at, id",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return scanDocuments(rows)
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var (
			id   string
			data string
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, Document{ID: id, Data: []byte(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return docs, nil
}

func jsonScalar(value any) (string, error) {
	switch value.(type) {
	case nil, map[string]any, []any:
		return "", fmt.Errorf("%w: query value must be a scalar", ErrInvalid)
	}
	raw, err := jsonMarshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: encode query value: %v", ErrInvalid, err)
	}
	return raw, nil
}

func mapConstraint(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
