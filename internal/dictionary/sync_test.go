package dictionary

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/five82/lexicon/internal/docstore"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // 32s before the cap
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestSyncer_FirstPushAnnouncedOnce(t *testing.T) {
	store := newFakeStore()
	store.seed("ant", false)
	store.seed("bun", false)
	d, rec := newTestDictionary(t, store, Options{})

	if rec.count("Loaded 2 words") != 1 {
		t.Fatalf("notes = %+v, want Loaded 2 words", rec.all())
	}
	store.seed("cat", false)
	store.push()
	waitFor(t, "second push", func() bool { return len(d.Snapshot().Entries) == 3 })
	if got := len(rec.all()); got != 1 {
		t.Fatalf("notes = %+v, want later pushes silent", rec.all())
	}
}

func TestSyncer_PushSupersedesOptimisticState(t *testing.T) {
	store := newFakeStore()
	store.seed("ant", false)
	d, _ := newTestDictionary(t, store, Options{})

	d.Dispatch(state.OptimisticAdd{Entry: entry.Entry{ID: "ghost", Name: "ghost"}})
	d.Dispatch(state.SetSearch{Text: "an"})
	store.push()

	waitFor(t, "replace", func() bool { return d.Snapshot().IndexOf("ghost") < 0 })
	p := d.Snapshot()
	if got := names(p.Entries); !slices.Equal(got, []string{"ant"}) {
		t.Fatalf("entries = %v, want [ant]", got)
	}
	if p.SearchText != "an" {
		t.Fatalf("SearchText = %q, want it kept across pushes", p.SearchText)
	}
}

func TestSyncer_StreamFailureKeepsEntriesAndResubscribes(t *testing.T) {
	store := newFakeStore()
	store.seed("ant", false)
	d, rec := newTestDictionary(t, store, Options{RetryInterval: 10 * time.Millisecond})

	store.breakStream(errors.New("stream reset"))
	waitFor(t, "resubscribe", func() bool { return store.subscriptions() >= 2 && len(store.live()) == 1 })
	store.breakStream(errors.New("stream reset again"))
	waitFor(t, "second resubscribe", func() bool { return store.subscriptions() >= 3 && len(store.live()) == 1 })

	if got := names(d.Snapshot().Entries); !slices.Equal(got, []string{"ant"}) {
		t.Fatalf("entries = %v, want last push kept during outage", got)
	}
	if rec.count("lost") != 1 {
		t.Fatalf("notes = %+v, want one connection-lost per outage", rec.all())
	}

	store.seed("bun", false)
	store.push()
	waitFor(t, "recovery push", func() bool { return len(d.Snapshot().Entries) == 2 })
	if rec.count("Loaded") != 1 {
		t.Fatalf("notes = %+v, want recovery push silent", rec.all())
	}

	store.breakStream(errors.New("new outage"))
	waitFor(t, "second outage notice", func() bool { return rec.count("lost") == 2 })
}

func TestSyncer_SubscribeErrorRetries(t *testing.T) {
	store := newFakeStore()
	store.setFail("subscribe", errors.New("refused"))
	rec := &recorder{}
	d, err := New(Options{Store: store, Notifier: rec, RetryInterval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(d.Unmount)
	d.Mount(context.Background())

	waitFor(t, "retries", func() bool { return store.subscriptions() >= 3 })
	if rec.count("lost") != 1 {
		t.Fatalf("notes = %+v, want one connection-lost", rec.all())
	}

	store.setFail("subscribe", nil)
	waitFor(t, "subscription", func() bool { return len(store.live()) == 1 })
	store.push()
	waitFor(t, "load", func() bool { return rec.count("Loaded 0 words") == 1 })
}

func TestSyncer_UnmountDuringDelayNeverSubscribes(t *testing.T) {
	store := newFakeStore()
	d, err := New(Options{Store: store, SubscribeDelay: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.Mount(context.Background())
	d.Unmount()

	time.Sleep(250 * time.Millisecond)
	if n := store.subscriptions(); n != 0 {
		t.Fatalf("subscriptions = %d, want 0", n)
	}
}

func TestSyncer_UnmountUnsubscribes(t *testing.T) {
	store := newFakeStore()
	d, _ := newTestDictionary(t, store, Options{})

	stale := store.live()[0]
	d.Unmount()
	if n := len(store.live()); n != 0 {
		t.Fatalf("live subscriptions = %d, want 0", n)
	}

	store.seed("late", false)
	stale.onPush(nil)
	if len(d.Snapshot().Entries) != 0 {
		t.Fatal("push after unmount reached the projection")
	}
}

func TestDecodeEntries_SkipsBadDocuments(t *testing.T) {
	good := docstore.Document{ID: "w1", Data: []byte(`{"name":"ant","types":["noun"],"dateCreated":"01/01/2025","favorite":true}`)}
	bad := docstore.Document{ID: "w2", Data: []byte(`{"name": 7}`)}

	got := decodeEntries([]docstore.Document{good, bad})
	if len(got) != 1 || got[0].ID != "w1" || got[0].Name != "ant" || !got[0].Favorite {
		t.Fatalf("decodeEntries() = %+v, want only w1", got)
	}
	if empty := decodeEntries(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("decodeEntries(nil) = %#v, want empty non-nil", empty)
	}
}
