// Package session keeps one view.State per browser session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meur/loadout/internal/view"
)

type entry struct {
	state    *view.State
	lastSeen time.Time
}

// Store maps session ids to their UI state. Sessions idle for longer than
// the TTL are removed by a background sweeper until Close is called.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Store and starts its sweeper. sweepEvery <= 0 disables the
// sweeper; Sweep can still be called directly.
func New(ttl, sweepEvery time.Duration, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.sweepLoop(sweepEvery)
	} else {
		close(s.done)
	}
	return s
}

// Update runs fn on the state of session id while holding the store lock.
// Unknown, expired or malformed ids get a fresh session; the id actually used
// is returned so callers can hand it back to the client.
func (s *Store) Update(id string, fn func(*view.State) error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.lookup(id, now)
	if !ok {
		id = uuid.NewString()
		e = &entry{state: view.NewState()}
		s.sessions[id] = e
		s.log.Debug("session created", zap.String("session", id))
	}
	e.lastSeen = now

	return id, fn(e.state)
}

func (s *Store) lookup(id string, now time.Time) (*entry, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	return e, true
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes idle sessions and returns how many were removed
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) sweepLoop(every time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("sessions expired", zap.Int("count", n))
			}
		}
	}
}

// Close stops the sweeper and waits for it to exit. It is safe to call more
// than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}
