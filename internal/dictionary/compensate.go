package dictionary

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/five82/lexicon/internal/state"
)

// phase is where an optimistic mutation is in its life:
//
//	pending -> confirmed
//	pending -> failed                          (nothing was applied locally)
//	pending -> compensating -> reverted
//	pending -> compensating -> cancelled       (unmounted before the timer fired)
type phase int

const (
	phasePending phase = iota
	phaseConfirmed
	phaseFailed
	phaseCompensating
	phaseReverted
	phaseCancelled
)

func (p phase) String() string {
	switch p {
	case phasePending:
		return "pending"
	case phaseConfirmed:
		return "confirmed"
	case phaseFailed:
		return "failed"
	case phaseCompensating:
		return "compensating"
	case phaseReverted:
		return "reverted"
	case phaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type mutation struct {
	seq     uint64
	op      string
	entryID string
	phase   phase
	timer   *time.Timer
}

// compensator tracks in-flight mutations and runs their compensating actions
// after a fixed delay. close cancels every timer that has not fired.
type compensator struct {
	mu       sync.Mutex
	delay    time.Duration
	dispatch func(state.Action) bool
	seq      uint64
	inflight map[uint64]*mutation
	closed   bool
	timers   sync.WaitGroup
}

func newCompensator(delay time.Duration, dispatch func(state.Action) bool) *compensator {
	return &compensator{
		delay:    delay,
		dispatch: dispatch,
		inflight: make(map[uint64]*mutation),
	}
}

func (c *compensator) begin(op, entryID string) *mutation {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	m := &mutation{seq: c.seq, op: op, entryID: entryID, phase: phasePending}
	c.inflight[m.seq] = m
	glog.V(2).Infof("[mutation]%d %s %s pending", m.seq, op, entryID)
	return m
}

func (c *compensator) confirm(m *mutation) {
	c.settle(m, phaseConfirmed)
}

func (c *compensator) fail(m *mutation) {
	c.settle(m, phaseFailed)
}

func (c *compensator) settle(m *mutation, to phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.phase != phasePending {
		return
	}
	m.phase = to
	delete(c.inflight, m.seq)
	glog.V(2).Infof("[mutation]%d %s %s %s", m.seq, m.op, m.entryID, to)
}

// compensate schedules undo to be dispatched after the delay.
func (c *compensator) compensate(m *mutation, undo state.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.phase != phasePending {
		return
	}
	if c.closed {
		m.phase = phaseCancelled
		delete(c.inflight, m.seq)
		return
	}
	m.phase = phaseCompensating
	c.timers.Add(1)
	m.timer = time.AfterFunc(c.delay, func() {
		defer c.timers.Done()
		c.fire(m, undo)
	})
	glog.Infof("[mutation]%d %s %s compensating in %v", m.seq, m.op, m.entryID, c.delay)
}

func (c *compensator) fire(m *mutation, undo state.Action) {
	c.mu.Lock()
	if m.phase != phaseCompensating {
		c.mu.Unlock()
		return
	}
	m.phase = phaseReverted
	delete(c.inflight, m.seq)
	c.mu.Unlock()

	// The state store drops this if it was closed in the meantime.
	if !c.dispatch(undo) {
		glog.V(2).Infof("[mutation]%d %s compensation dropped after unmount", m.seq, m.op)
	}
}

func (c *compensator) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for seq, m := range c.inflight {
		if m.phase != phaseCompensating {
			continue
		}
		if m.timer.Stop() {
			c.timers.Done()
		}
		m.phase = phaseCancelled
		delete(c.inflight, seq)
	}
}

// pending returns the number of mutations not yet settled.
func (c *compensator) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}

// wait blocks until every scheduled compensation has fired or been cancelled.
func (c *compensator) wait() {
	c.timers.Wait()
}
