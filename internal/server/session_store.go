package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// DefaultSessionTTL is how long an untouched session is kept
const DefaultSessionTTL = 2 * time.Hour

// sessionEntry serializes all access to one wizard session
type sessionEntry struct {
	mu       sync.Mutex
	session  *wizard.Session
	owner    string
	lastUsed time.Time
	subs     map[int]chan wizard.Snapshot
	nextSub  int
	closed   bool
}

// SessionStore keeps wizard sessions in memory. Each session has exactly one
// writer at a time; sessions are scoped to the owner that created them.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
	options  []wizard.Option
}

// NewSessionStore creates a store whose sessions expire after ttl of
// inactivity and are built with opts.
func NewSessionStore(ttl time.Duration, opts ...wizard.Option) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
		options:  opts,
	}
}

// Create starts a session for owner. extra options are applied after the
// store defaults, so WithDocument can resume an existing document.
func (st *SessionStore) Create(owner string, extra ...wizard.Option) (string, wizard.Snapshot) {
	opts := append(append([]wizard.Option(nil), st.options...), extra...)
	session := wizard.NewSession(opts...)
	snap := session.Snapshot()
	id := uuid.NewString()

	st.mu.Lock()
	st.sessions[id] = &sessionEntry{
		session:  session,
		owner:    owner,
		lastUsed: st.now(),
		subs:     make(map[int]chan wizard.Snapshot),
	}
	st.mu.Unlock()

	return id, snap
}

// lookup returns the entry locked, or ErrSessionNotFound.
func (st *SessionStore) lookup(id, owner string) (*sessionEntry, error) {
	st.mu.RLock()
	entry, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || entry.owner != owner {
		return nil, &ErrSessionNotFound{ID: id}
	}

	entry.mu.Lock()
	if entry.closed || st.now().Sub(entry.lastUsed) > st.ttl {
		entry.mu.Unlock()
		st.remove(id)
		return nil, &ErrSessionNotFound{ID: id}
	}
	entry.lastUsed = st.now()
	return entry, nil
}

// View runs fn with exclusive access to the session without publishing.
func (st *SessionStore) View(id, owner string, fn func(*wizard.Session) error) error {
	entry, err := st.lookup(id, owner)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Update runs fn with exclusive access to the session. When expected is set
// and differs from the current revision fn is not run and
// ErrRevisionConflict is returned. Subscribers receive the new snapshot
// whenever the step or revision changed.
func (st *SessionStore) Update(id, owner string, expected *uint64, fn func(*wizard.Session) error) (wizard.Snapshot, error) {
	entry, err := st.lookup(id, owner)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	defer entry.mu.Unlock()

	s := entry.session
	if expected != nil && *expected != s.Revision() {
		return wizard.Snapshot{}, &ErrRevisionConflict{Expected: *expected, Actual: s.Revision()}
	}

	beforeRev, beforeStep := s.Revision(), s.Step()
	fnErr := fn(s)
	snap := s.Snapshot()
	if snap.Revision != beforeRev || snap.Step != beforeStep {
		entry.publish(snap)
	}
	return snap, fnErr
}

// Subscribe returns a channel receiving a snapshot after every change. The
// channel holds only the latest snapshot and is closed when the session is
// deleted or expires. cancel must be called to stop receiving.
func (st *SessionStore) Subscribe(id, owner string) (<-chan wizard.Snapshot, func(), error) {
	entry, err := st.lookup(id, owner)
	if err != nil {
		return nil, nil, err
	}
	defer entry.mu.Unlock()

	ch := make(chan wizard.Snapshot, 1)
	subID := entry.nextSub
	entry.nextSub++
	entry.subs[subID] = ch

	cancel := func() {
		entry.mu.Lock()
		defer entry.mu.Unlock()
		if c, ok := entry.subs[subID]; ok {
			delete(entry.subs, subID)
			close(c)
		}
	}
	return ch, cancel, nil
}

// Delete removes a session and reports whether it existed for owner.
func (st *SessionStore) Delete(id, owner string) bool {
	st.mu.RLock()
	entry, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || entry.owner != owner {
		return false
	}
	st.remove(id)
	return true
}

// Sweep removes every session idle for longer than the TTL and returns how
// many were removed.
func (st *SessionStore) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.RLock()
	var expired []string
	for id, entry := range st.sessions {
		entry.mu.Lock()
		if entry.lastUsed.Before(cutoff) {
			expired = append(expired, id)
		}
		entry.mu.Unlock()
	}
	st.mu.RUnlock()

	for _, id := range expired {
		st.remove(id)
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) remove(id string) {
	st.mu.Lock()
	entry, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.closed = true
	for subID, ch := range entry.subs {
		delete(entry.subs, subID)
		close(ch)
	}
}

// publish replaces any unread snapshot with snap. Caller holds e.mu.
func (e *sessionEntry) publish(snap wizard.Snapshot) {
	for _, ch := range e.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
