package dictionary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/five82/lexicon/internal/docstore"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/state"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// Syncer keeps the projection's entry list equal to the latest push from the
// remote collection. It subscribes after a short delay, replaces the entries
// on every push and resubscribes with backoff when the stream fails.
type Syncer struct {
	store      docstore.Store
	state      *state.Store
	collection string
	notify     Notifier
	delay      time.Duration
	retry      time.Duration

	loadedCh chan struct{}

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	gen      uint64
	loaded   bool
	lost     bool
	failures int
	stopped  bool
}

func newSyncer(store docstore.Store, st *state.Store, collection string, notify Notifier, delay, retry time.Duration) *Syncer {
	if retry <= 0 {
		retry = defaultRetryInterval
	}
	return &Syncer{
		store:      store,
		state:      st,
		collection: collection,
		notify:     notify,
		delay:      delay,
		retry:      retry,
		loadedCh:   make(chan struct{}),
	}
}

// Loaded is closed once the first push has been applied.
func (s *Syncer) Loaded() <-chan struct{} {
	return s.loadedCh
}

// Start launches the subscription goroutine. It returns immediately and is a
// no-op on a started or stopped syncer.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil || s.stopped {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
}

// Stop cancels the pending delay or the live subscription and waits for the
// goroutine to exit. Pushes delivered afterwards are ignored.
func (s *Syncer) Stop() {
	s.mu.Lock()
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Syncer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	if !sleep(ctx, s.delay) {
		glog.V(1).Infof("Subscription to %s cancelled before it started", s.collection)
		return
	}

	for {
		gen := s.nextGen()
		errc := make(chan error, 1)
		report := func(err error) {
			select {
			case errc <- err:
			default:
			}
		}

		unsubscribe, err := s.store.Subscribe(ctx, s.collection,
			func(docs []docstore.Document) { s.push(gen, docs) },
			report,
		)
		if err != nil {
			report(err)
		}

		select {
		case <-ctx.Done():
			if unsubscribe != nil {
				unsubscribe()
			}
			return
		case err := <-errc:
			if unsubscribe != nil {
				unsubscribe()
			}
			wait := s.fail(err)
			if !sleep(ctx, wait) {
				return
			}
		}
	}
}

func (s *Syncer) nextGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

func (s *Syncer) push(gen uint64, docs []docstore.Document) {
	s.mu.Lock()
	if gen != s.gen || s.stopped {
		s.mu.Unlock()
		return
	}
	first := !s.loaded
	recovered := s.lost
	s.loaded = true
	s.lost = false
	s.failures = 0
	s.mu.Unlock()

	entries := decodeEntries(docs)
	if !s.state.Dispatch(state.ReplaceAll{Entries: entries}) {
		return
	}
	if recovered {
		glog.Infof("Subscription to %s recovered", s.collection)
	}
	if first {
		close(s.loadedCh)
		s.notify.Notify(true, fmt.Sprintf("Loaded %d words", len(entries)), "Thanks")
	}
}

// fail records a stream failure and returns how long to wait before
// resubscribing. Only the first failure of an outage is announced.
func (s *Syncer) fail(err error) time.Duration {
	s.mu.Lock()
	announce := !s.lost && !s.stopped
	s.lost = true
	wait := calculateBackoff(s.failures, s.retry)
	s.failures++
	s.mu.Unlock()

	glog.Warningf("Subscription to %s failed: %v (retrying in %v)", s.collection, err, wait)
	if announce {
		s.notify.Notify(false, "Connection to the dictionary was lost", "Dismiss")
	}
	return wait
}

func decodeEntries(docs []docstore.Document) []entry.Entry {
	entries := make([]entry.Entry, 0, len(docs))
	for _, doc := range docs {
		var f entry.Fields
		if err := doc.Decode(&f); err != nil {
			glog.Warningf("Skipping undecodable document %s: %v", doc.ID, err)
			continue
		}
		entries = append(entries, entry.FromFields(doc.ID, f))
	}
	return entries
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
