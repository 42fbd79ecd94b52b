package chat

import (
	"fmt"
	"testing"
)

func TestSessionAppendCapsHistory(t *testing.T) {
	sess := NewSession()
	for i := 0; i < maxHistory+6; i++ {
		sess.Append(RoleUser, fmt.Sprintf("message %d", i))
	}
	if sess.Len() != maxHistory {
		t.Fatalf("len = %d, want %d", sess.Len(), maxHistory)
	}
	// Oldest entries trimmed, not newest.
	recent := sess.Recent(maxHistory)
	if recent[0].Content != "message 6" {
		t.Errorf("oldest retained = %q, want message 6", recent[0].Content)
	}
	if recent[len(recent)-1].Content != fmt.Sprintf("message %d", maxHistory+5) {
		t.Errorf("newest retained = %q", recent[len(recent)-1].Content)
	}
}

func TestSessionRecentOldestFirst(t *testing.T) {
	sess := NewSession()
	sess.Append(RoleUser, "first")
	sess.Append(RoleAssistant, "second")
	sess.Append(RoleUser, "third")

	recent := sess.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Content != "second" || recent[1].Content != "third" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestSessionRecentMoreThanHeld(t *testing.T) {
	sess := NewSession()
	sess.Append(RoleUser, "only")
	if got := sess.Recent(10); len(got) != 1 {
		t.Errorf("recent = %+v, want one message", got)
	}
}

func TestSessionClear(t *testing.T) {
	sess := NewSession()
	sess.Append(RoleUser, "hello")
	sess.Clear()
	if sess.Len() != 0 {
		t.Errorf("len after clear = %d", sess.Len())
	}
}
