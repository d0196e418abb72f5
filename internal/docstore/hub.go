package docstore

import "sync"

// hub tracks live subscriptions and wakes the ones watching a collection
// after a write. Wake-ups coalesce: a subscriber that is still busy pushing
// sees one pending signal no matter how many writes landed meanwhile, and
// reloads the whole collection when it gets to it.
type hub struct {
	mu     sync.Mutex
	subs   map[*subscription]struct{}
	closed bool
}

type subscription struct {
	collection string
	wake       chan struct{}
	done       chan struct{}
	once       sync.Once
}

func newHub() *hub {
	return &hub{subs: make(map[*subscription]struct{})}
}

func (h *hub) add(collection string) (*subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	sub := &subscription{
		collection: collection,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	h.subs[sub] = struct{}{}
	return sub, nil
}

func (h *hub) remove(sub *subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	sub.stop()
}

func (h *hub) notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if sub.collection == collection {
			sub.signal()
		}
	}
}

func (h *hub) count(collection string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for sub := range h.subs {
		if sub.collection == collection {
			n++
		}
	}
	return n
}

func (h *hub) close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*subscription]struct{})
	h.closed = true
	h.mu.Unlock()
	for sub := range subs {
		sub.stop()
	}
}

func (s *subscription) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *subscription) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
