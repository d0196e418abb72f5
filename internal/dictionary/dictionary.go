package dictionary

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/five82/lexicon/internal/docstore"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/state"
)

const (
	DefaultCollection     = "words"
	DefaultRollbackDelay  = 300 * time.Millisecond
	DefaultSubscribeDelay = 600 * time.Millisecond
	DefaultLocale         = "en"
)

// Options configures a Dictionary. Zero values take the defaults above.
type Options struct {
	Store          docstore.Store
	Collection     string
	Notifier       Notifier
	RollbackDelay  time.Duration
	SubscribeDelay time.Duration
	RetryInterval  time.Duration
	Locale         string
	Now            func() time.Time
}

// Dictionary ties the projection, the live subscription and the mutation
// controller together for one mounted view.
type Dictionary struct {
	state  *state.Store
	ctrl   *Controller
	sync   *Syncer
	comp   *compensator
	locale language.Tag

	mu        sync.Mutex
	memo      []entry.Entry
	memoRev   uint64
	memoValid bool
}

// New builds a Dictionary. Nothing touches the store until Mount.
func New(opts Options) (*Dictionary, error) {
	if opts.Store == nil {
		return nil, errors.New("dictionary: store is required")
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.Notifier == nil {
		opts.Notifier = discard{}
	}
	if opts.RollbackDelay <= 0 {
		opts.RollbackDelay = DefaultRollbackDelay
	}
	if opts.SubscribeDelay < 0 {
		opts.SubscribeDelay = 0
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	tag, err := language.Parse(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("dictionary: locale %q: %w", opts.Locale, err)
	}

	st := state.NewStore()
	comp := newCompensator(opts.RollbackDelay, st.Dispatch)
	return &Dictionary{
		state:  st,
		comp:   comp,
		locale: tag,
		ctrl:   newController(opts.Store, st, opts.Collection, opts.Notifier, comp, opts.Now),
		sync:   newSyncer(opts.Store, st, opts.Collection, opts.Notifier, opts.SubscribeDelay, opts.RetryInterval),
	}, nil
}

// Mount starts the live subscription.
func (d *Dictionary) Mount(ctx context.Context) {
	d.sync.Start(ctx)
}

// Unmount tears down the subscription, cancels pending rollbacks and closes
// the projection. Later dispatches are dropped.
func (d *Dictionary) Unmount() {
	d.sync.Stop()
	d.comp.close()
	d.state.Close()
}

// Loaded is closed once the first push from the store has been applied.
func (d *Dictionary) Loaded() <-chan struct{} {
	return d.sync.Loaded()
}

// Dispatch applies a UI action such as SetSearch or ToggleTag.
func (d *Dictionary) Dispatch(a state.Action) bool {
	return d.state.Dispatch(a)
}

// Snapshot returns a copy of the full projection.
func (d *Dictionary) Snapshot() state.Projection {
	return d.state.Snapshot()
}

// Changes signals after every dispatch.
func (d *Dictionary) Changes() <-chan struct{} {
	return d.state.Changes()
}

// Visible returns the filtered, ordered entries. The result is recomputed
// only when the entry list or search text has changed since the last call.
func (d *Dictionary) Visible() []entry.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.memoValid && d.state.Revision() == d.memoRev {
		return cloneEntries(d.memo)
	}
	entries, search, rev := d.state.View()
	d.memo = Visible(entries, search, d.locale)
	d.memoRev = rev
	d.memoValid = true
	return cloneEntries(d.memo)
}

func cloneEntries(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// Sections groups Visible into favorites and the rest.
func (d *Dictionary) Sections() []Section {
	return Sections(d.Visible())
}

// Create adds a new word. See Controller.Create.
func (d *Dictionary) Create(ctx context.Context, draft Draft) (entry.Entry, error) {
	return d.ctrl.Create(ctx, draft)
}

// Favorite flips a word's favorite flag. See Controller.Favorite.
func (d *Dictionary) Favorite(ctx context.Context, e entry.Entry) error {
	return d.ctrl.Favorite(ctx, e)
}

// Delete removes a word. See Controller.Delete.
func (d *Dictionary) Delete(ctx context.Context, e entry.Entry, index int) error {
	return d.ctrl.Delete(ctx, e, index)
}

// Pending reports how many mutations are awaiting the store or a rollback.
func (d *Dictionary) Pending() int {
	return d.comp.pending()
}
