// Package timer schedules wake-ups for the session loop and supplies the
// wall clock read by clock widgets.
package timer

import (
	"sync"
	"time"
)

// Owner says who scheduled a timer. Each owner can only stop its own timers.
type Owner uint8

const (
	// System timers belong to the session, e.g. the display refresh tick.
	// Their events are dropped when the loop is behind; the next tick
	// redraws the same state.
	System Owner = iota
	// Script timers carry a Lua callback. Their events are never dropped.
	Script
)

func (o Owner) String() string {
	if o == System {
		return "system"
	}
	return "script"
}

// Event is sent when a timer fires.
type Event struct {
	ID        int
	Owner     Owner
	Repeating bool
}

// Service delivers timer events on a channel. It hands out IDs and keeps
// the schedule; whatever an ID means lives with the receiver.
type Service struct {
	events chan<- Event
	quit   chan struct{}
	once   sync.Once

	mu     sync.Mutex
	timers map[int]*pending
	lastID int
}

type pending struct {
	owner  Owner
	period time.Duration // 0 for one-shot
	t      *time.Timer
}

// NewService creates a timer service that sends fired events to events.
func NewService(events chan<- Event) *Service {
	return &Service{
		events: events,
		quit:   make(chan struct{}),
		timers: make(map[int]*pending),
	}
}

// Once schedules a one-shot timer for owner and returns its ID.
func (s *Service) Once(owner Owner, d time.Duration) int {
	return s.start(owner, d, 0)
}

// Repeat schedules a timer for owner that fires every period until stopped.
func (s *Service) Repeat(owner Owner, period time.Duration) int {
	return s.start(owner, period, period)
}

func (s *Service) start(owner Owner, first, period time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	id := s.lastID
	p := &pending{owner: owner, period: period}
	p.t = time.AfterFunc(first, func() { s.fire(id) })
	s.timers[id] = p
	return id
}

func (s *Service) fire(id int) {
	s.mu.Lock()
	p, ok := s.timers[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if p.period > 0 {
		p.t.Reset(p.period)
	} else {
		delete(s.timers, id)
	}
	s.mu.Unlock()

	ev := Event{ID: id, Owner: p.owner, Repeating: p.period > 0}
	if p.owner == System {
		select {
		case s.events <- ev:
		default:
		}
		return
	}

	select {
	case s.events <- ev:
	case <-s.quit:
	}
}

// Stop cancels timer id if owner scheduled it. It reports whether a timer
// was stopped.
func (s *Service) Stop(owner Owner, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.timers[id]
	if !ok || p.owner != owner {
		return false
	}
	p.t.Stop()
	delete(s.timers, id)
	return true
}

// StopAll cancels every timer of owner and returns how many were pending.
func (s *Service) StopAll(owner Owner) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, p := range s.timers {
		if p.owner == owner {
			p.t.Stop()
			delete(s.timers, id)
			n++
		}
	}
	return n
}

// Shutdown cancels every timer and releases senders blocked on a stalled
// receiver. The service must not be used afterwards.
func (s *Service) Shutdown() {
	s.once.Do(func() { close(s.quit) })

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.timers {
		p.t.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the number of scheduled timers of owner.
func (s *Service) Pending(owner Owner) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, p := range s.timers {
		if p.owner == owner {
			n++
		}
	}
	return n
}
