package cart

import "sync"

// Store owns one cart per session. Each session has a single authoritative
// in-memory cart; mutations on the same session are serialized, carts of
// different sessions never contend with each other.
type Store struct {
	mu       sync.Mutex
	rules    Rules
	sessions map[string]*session
}

type session struct {
	mu   sync.Mutex
	cart *Cart
}

// NewStore returns an empty store whose carts are priced with the given
// rules.
func NewStore(rules Rules) *Store {
	return &Store{
		rules:    rules,
		sessions: make(map[string]*session),
	}
}

// With runs fn against the session's cart, creating an empty cart on first
// use, and returns the snapshot after fn has run. The session lock is held
// for the duration of fn.
func (s *Store) With(sessionID string, fn func(*Cart)) Snapshot {
	sess := s.session(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	fn(sess.cart)
	return sess.cart.Snapshot()
}

// Snapshot returns the current state of the session's cart without mutating
// it.
func (s *Store) Snapshot(sessionID string) Snapshot {
	return s.With(sessionID, func(*Cart) {})
}

func (s *Store) session(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{cart: New(s.rules)}
		s.sessions[sessionID] = sess
	}
	return sess
}
