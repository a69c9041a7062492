package components

import (
	"sort"
	"sync"
	"time"

	"github.com/banksight/banksight/schema"
)

// Turn is one completed query/response exchange within a session.
type Turn struct {
	ID       string `json:"id"`
	Query    string `json:"query"`
	Response string `json:"response"`
	Intent   string `json:"intent"`
}

// Session holds the conversation state for one session ID: the ordered list
// of completed turns plus an optional injected prior-turn history used by the
// richer agent mode.
// threadsafe
type Session struct {
	id string
	// turns is the ordered list of completed exchanges, oldest first.
	turns []Turn
	// history is role-tagged prior messages injected from an earlier session.
	history  []Message
	lastSeen time.Time
	mtx      sync.RWMutex
}

// NewSession returns an empty session for the given ID.
func NewSession(id string) *Session {
	return &Session{
		id:       id,
		lastSeen: time.Now(),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// AddTurn appends a completed exchange to the session, assigning a turn ID
// when the caller did not.
func (s *Session) AddTurn(turn Turn) {
	if turn.ID == "" {
		turn.ID = NewTurnID()
	}
	s.mtx.Lock()
	s.turns = append(s.turns, turn)
	s.lastSeen = time.Now()
	s.mtx.Unlock()
}

// Turns returns a copy of the completed exchanges, oldest first.
func (s *Session) Turns() []Turn {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// InjectHistory replaces the session's prior-turn history with the given
// role-tagged messages.
func (s *Session) InjectHistory(history []Message) {
	s.mtx.Lock()
	s.history = make([]Message, len(history))
	copy(s.history, history)
	s.mtx.Unlock()
}

// History returns the injected prior-turn history followed by the messages
// reconstructed from the session's own turns.
func (s *Session) History() []Message {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	out := make([]Message, 0, len(s.history)+len(s.turns)*2)
	out = append(out, s.history...)
	for _, turn := range s.turns {
		out = append(out, *NewMessage(UserRole, schema.String(turn.Query)).SetTurnID(turn.ID))
		out = append(out, *NewMessage(AssistantRole, schema.String(turn.Response)).SetTurnID(turn.ID))
	}
	return out
}

// Reset clears the session's turns and injected history.
func (s *Session) Reset() {
	s.mtx.Lock()
	s.turns = nil
	s.history = nil
	s.mtx.Unlock()
}

// LastSeen returns the time of the session's most recent activity.
func (s *Session) LastSeen() time.Time {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.mtx.Lock()
	s.lastSeen = time.Now()
	s.mtx.Unlock()
}

// SessionStore is the process-wide session registry. Absence of a session ID
// means "create default state", never an error. Sessions are evicted when the
// store exceeds maxSessions (oldest-idle first) or when a session has been
// idle longer than maxAge.
// threadsafe
type SessionStore struct {
	sessions map[string]*Session
	// maxSessions caps the number of live sessions; 0 means unbounded.
	maxSessions int
	// maxAge is the idle lifetime of a session; 0 means sessions never expire.
	maxAge time.Duration
	mtx    sync.Mutex
}

// NewSessionStore returns a SessionStore with the given eviction policy.
func NewSessionStore(maxSessions int, maxAge time.Duration) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		maxAge:      maxAge,
	}
}

// Session returns the session for the given ID, creating it on first use.
func (s *SessionStore) Session(id string) *Session {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.evictLocked()
	if sess, ok := s.sessions[id]; ok {
		sess.touch()
		return sess
	}
	sess := NewSession(id)
	s.sessions[id] = sess
	if s.maxSessions > 0 && len(s.sessions) > s.maxSessions {
		s.evictOldestLocked(len(s.sessions) - s.maxSessions)
	}
	return sess
}

// Delete removes a session, if present.
func (s *SessionStore) Delete(id string) {
	s.mtx.Lock()
	delete(s.sessions, id)
	s.mtx.Unlock()
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) evictLocked() {
	if s.maxAge <= 0 {
		return
	}
	deadline := time.Now().Add(-s.maxAge)
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(deadline) {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) evictOldestLocked(n int) {
	type entry struct {
		id       string
		lastSeen time.Time
	}
	entries := make([]entry, 0, len(s.sessions))
	for id, sess := range s.sessions {
		entries = append(entries, entry{id: id, lastSeen: sess.LastSeen()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].lastSeen.Before(entries[j].lastSeen)
	})
	for i := 0; i < n && i < len(entries); i++ {
		delete(s.sessions, entries[i].id)
	}
}
