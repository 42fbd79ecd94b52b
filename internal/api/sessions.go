package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"budgetlens/internal/chat"
)

// sessionRegistry maps session IDs to chat sessions. The registry is
// the only shared mutable state in the HTTP layer; each session's own
// history is guarded by the session itself.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*chat.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*chat.Session)}
}

// getOrCreate returns the session for id, minting a fresh session and
// ID when id is empty or unknown.
func (r *sessionRegistry) getOrCreate(id string) (string, *chat.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != "" {
		if sess, ok := r.sessions[id]; ok {
			return id, sess
		}
	}
	id = newSessionID()
	sess := chat.NewSession()
	r.sessions[id] = sess
	return id, sess
}

func (r *sessionRegistry) get(id string) (*chat.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("sess_%d", time.Now().UnixNano())
	}
	return "sess_" + hex.EncodeToString(b)
}
