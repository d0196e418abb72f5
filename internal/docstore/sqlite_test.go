package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type word struct {
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
}

func openTestStore(t *testing.T, opts ...Option) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_CreateQueryUpdateDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "words", word{Name: "cozy"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("Create returned empty id")
	}

	docs, err := s.QueryByField(ctx, "words", "name", "cozy")
	if err != nil {
		t.Fatalf("QueryByField returned error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Fatalf("QueryByField = %#v, want one document id=%s", docs, id)
	}

	if err := s.Update(ctx, "words", id, map[string]any{"favorite": true}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	docs, err = s.QueryByField(ctx, "words", "favorite", true)
	if err != nil {
		t.Fatalf("QueryByField(favorite) returned error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("QueryByField(favorite) = %d documents, want 1", len(docs))
	}
	var got word
	if err := docs[0].Decode(&got); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.Name != "cozy" || !got.Favorite {
		t.Fatalf("document = %#v, want cozy favorite", got)
	}

	if err := s.Delete(ctx, "words", id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	docs, err = s.List(ctx, "words")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("List after delete = %d documents, want 0", len(docs))
	}

	// Deleting again is not an error.
	if err := s.Delete(ctx, "words", id); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
}

func TestSQLite_UpdateMissingIsNotFound(t *testing.T) {
	s := openTestStore(t)
	err := s.Update(context.Background(), "words", "missing", map[string]any{"favorite": true})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update error = %v, want ErrNotFound", err)
	}
}

func TestSQLite_UniqueFieldConflicts(t *testing.T) {
	s := openTestStore(t, WithUniqueField("words", "name"))
	ctx := context.Background()

	if _, err := s.Create(ctx, "words", word{Name: "cozy"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	_, err := s.Create(ctx, "words", word{Name: "cozy"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate Create error = %v, want ErrConflict", err)
	}

	// Other collections are unaffected.
	if _, err := s.Create(ctx, "notes", word{Name: "cozy"}); err != nil {
		t.Fatalf("Create in other collection returned error: %v", err)
	}
}

func TestSQLite_RejectsInvalidInput(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "bad name", word{}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Create(bad collection) error = %v, want ErrInvalid", err)
	}
	if _, err := s.Create(ctx, "words", []string{"not", "object"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Create(array) error = %v, want ErrInvalid", err)
	}
	if _, err := s.QueryByField(ctx, "words", "name'; --", "x"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("QueryByField(bad field) error = %v, want ErrInvalid", err)
	}
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "x.db"), WithUniqueField("words", "na-me")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("OpenSQLite(bad unique field) error = %v, want ErrInvalid", err)
	}
}

type pushRecorder struct {
	mu     sync.Mutex
	pushes [][]Document
}

func (r *pushRecorder) push(docs []Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, docs)
}

func (r *pushRecorder) last() ([]Document, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pushes) == 0 {
		return nil, 0
	}
	return r.pushes[len(r.pushes)-1], len(r.pushes)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSQLite_SubscribePushesFullCollection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "words", word{Name: "ant"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var rec pushRecorder
	unsubscribe, err := s.Subscribe(ctx, "words", rec.push, func(err error) {
		t.Errorf("unexpected subscription error: %v", err)
	})
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	waitFor(t, "initial push", func() bool {
		docs, n := rec.last()
		return n >= 1 && len(docs) == 1
	})

	if _, err := s.Create(ctx, "words", word{Name: "bun"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	waitFor(t, "push after create", func() bool {
		docs, _ := rec.last()
		return len(docs) == 2
	})

	// Writes to other collections do not wake this subscriber.
	_, before := rec.last()
	if _, err := s.Create(ctx, "notes", word{Name: "x"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, after := rec.last(); after != before {
		t.Fatalf("push count changed from %d to %d after unrelated write", before, after)
	}

	unsubscribe()
	waitFor(t, "hub to drop subscription", func() bool { return s.hub.count("words") == 0 })

	_, before = rec.last()
	if _, err := s.Create(ctx, "words", word{Name: "cat"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, after := rec.last(); after != before {
		t.Fatalf("push delivered after unsubscribe")
	}
}

func TestSQLite_SubscribeAfterCloseFails(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := s.Subscribe(context.Background(), "words", nil, nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("Subscribe after Close error = %v, want ErrClosed", err)
	}
}
