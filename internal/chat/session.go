package chat

import "sync"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// maxHistory is the hard ceiling on retained conversation entries
// (10 exchanges). Not configurable per session.
const maxHistory = 20

// Message is one conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds one user's conversation state. Each session belongs to
// exactly one user; the mutex only guards against overlapping requests
// on the same session ID.
type Session struct {
	mu      sync.Mutex
	history []Message
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Append records a message, trimming the oldest entries past the cap.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Message{Role: role, Content: content})
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
}

// Recent returns up to n of the latest messages, oldest first.
func (s *Session) Recent(n int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

// Len returns the number of retained messages.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Clear drops the conversation history.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
