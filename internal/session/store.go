// Package session holds authenticated session state: the session token and
// the work-order table currently loaded for that session. This replaces the
// ambient authenticated flag of the original dashboard with explicit state
// created at login and destroyed at logout.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"wodash/internal/dataset"
)

// Session is one authenticated session. The table it owns is replaced
// wholesale on every successful upload and guarded against concurrent
// handler access.
type Session struct {
	Token     string
	User      string
	CreatedAt time.Time

	mu    sync.RWMutex
	table *dataset.Table
}

// Table returns the currently loaded table, or nil before the first upload.
func (s *Session) Table() *dataset.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// SetTable replaces the session's table.
func (s *Session) SetTable(t *dataset.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
}

// Store is an in-memory token-to-session map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create issues a new session with a random token.
func (st *Store) Create(user string) *Session {
	s := &Session{
		Token:     uuid.New().String(),
		User:      user,
		CreatedAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.Token] = s
	st.mu.Unlock()
	return s
}

// Get resolves a token to its session.
func (st *Store) Get(token string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[token]
	return s, ok
}

// Delete removes a session; its table becomes unreachable with it.
func (st *Store) Delete(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
