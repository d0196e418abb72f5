package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/lexicon/internal/docstore"
	"github.com/five82/lexicon/internal/entry"
)

type fakeSub struct {
	onPush  func([]docstore.Document)
	onError func(error)
}

// fakeStore is an in-memory docstore.Store. Pushes are delivered only when a
// test calls push, so ordering is under the test's control.
type fakeStore struct {
	mu     sync.Mutex
	nextID int
	order  []string
	docs   map[string]entry.Fields
	calls  []string

	failCreate    error
	failUpdate    error
	failDelete    error
	failQuery     error
	failSubscribe error
	before        func(op string)

	subs       map[int]fakeSub
	subSeq     int
	subscribed int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs: make(map[string]entry.Fields),
		subs: make(map[int]fakeSub),
	}
}

func (f *fakeStore) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	hook := f.before
	f.mu.Unlock()
	if hook != nil {
		hook(op)
	}
}

func (f *fakeStore) Create(_ context.Context, _ string, data any) (string, error) {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return "", f.failCreate
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	var fields entry.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", err
	}
	f.nextID++
	id := fmt.Sprintf("w%d", f.nextID)
	f.docs[id] = fields
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, _ string, id string, patch map[string]any) error {
	f.record("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	fields, ok := f.docs[id]
	if !ok {
		return docstore.ErrNotFound
	}
	if v, ok := patch[entry.FieldFavorite].(bool); ok {
		fields.Favorite = v
	}
	f.docs[id] = fields
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ string, id string) error {
	f.record("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete != nil {
		return f.failDelete
	}
	delete(f.docs, id)
	f.order = slices.DeleteFunc(f.order, func(s string) bool { return s == id })
	return nil
}

func (f *fakeStore) QueryByField(_ context.Context, _ string, field string, value any) ([]docstore.Document, error) {
	f.record("query")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failQuery != nil {
		return nil, f.failQuery
	}
	if field != entry.FieldName {
		return nil, fmt.Errorf("%w: unexpected field %q", docstore.ErrInvalid, field)
	}
	var out []docstore.Document
	for _, id := range f.order {
		if f.docs[id].Name == value {
			out = append(out, f.documentLocked(id))
		}
	}
	return out, nil
}

func (f *fakeStore) Subscribe(_ context.Context, _ string, onPush func([]docstore.Document), onError func(error)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribed++
	if f.failSubscribe != nil {
		return nil, f.failSubscribe
	}
	f.subSeq++
	seq := f.subSeq
	f.subs[seq] = fakeSub{onPush: onPush, onError: onError}
	return func() {
		f.mu.Lock()
		delete(f.subs, seq)
		f.mu.Unlock()
	}, nil
}

func (f *fakeStore) documentLocked(id string) docstore.Document {
	raw, _ := json.Marshal(f.docs[id])
	return docstore.Document{ID: id, Data: raw}
}

func (f *fakeStore) seed(name string, favorite bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("w%d", f.nextID)
	f.docs[id] = entry.Fields{
		Name:        name,
		Types:       []entry.Type{entry.Noun},
		DateCreated: "01/01/2025",
		Favorite:    favorite,
	}
	f.order = append(f.order, id)
	return id
}

func (f *fakeStore) live() []fakeSub {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fakeSub, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out
}

// push delivers the current collection to every live subscriber.
func (f *fakeStore) push() {
	f.mu.Lock()
	docs := make([]docstore.Document, 0, len(f.order))
	for _, id := range f.order {
		docs = append(docs, f.documentLocked(id))
	}
	f.mu.Unlock()
	for _, s := range f.live() {
		s.onPush(docs)
	}
}

func (f *fakeStore) breakStream(err error) {
	for _, s := range f.live() {
		s.onError(err)
	}
}

func (f *fakeStore) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeStore) subscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribed
}

func (f *fakeStore) favorite(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[id].Favorite
}

type note struct {
	success bool
	message string
	dismiss string
}

type recorder struct {
	mu    sync.Mutex
	notes []note
}

func (r *recorder) Notify(success bool, message, dismiss string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{success, message, dismiss})
}

func (r *recorder) all() []note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.notes)
}

func (r *recorder) count(substr string) int {
	n := 0
	for _, nt := range r.all() {
		if strings.Contains(nt.message, substr) {
			n++
		}
	}
	return n
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

var fixedNow = time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

// newTestDictionary mounts a dictionary over a fake store and waits for the
// first push so tests start from a loaded list.
func newTestDictionary(t *testing.T, store *fakeStore, opts Options) (*Dictionary, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts.Store = store
	opts.Notifier = rec
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.SubscribeDelay == 0 {
		opts.SubscribeDelay = time.Millisecond
	}
	d, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(d.Unmount)

	d.Mount(context.Background())
	waitFor(t, "subscription", func() bool { return len(store.live()) == 1 })
	store.push()
	waitFor(t, "initial load", func() bool { return rec.count("Loaded") == 1 })
	return d, rec
}

func names(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func (f *fakeStore) setBefore(hook func(op string)) {
	f.mu.Lock()
	f.before = hook
	f.mu.Unlock()
}

func (f *fakeStore) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch op {
	case "create":
		f.failCreate = err
	case "update":
		f.failUpdate = err
	case "delete":
		f.failDelete = err
	case "query":
		f.failQuery = err
	case "subscribe":
		f.failSubscribe = err
	}
}
