package session

import (
	"errors"
	"testing"
	"time"

	"taskr/internal/domain"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := m.Issue(Session{UserID: 42, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	sess, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sess.UserID != 42 {
		t.Errorf("user id = %d, want 42", sess.UserID)
	}
	if sess.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", sess.Role, domain.RoleUser)
	}
}

func TestParseRejectsEmptyToken(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := m.Parse(""); !errors.Is(err, ErrNoSession) {
		t.Errorf("empty token: got %v, want ErrNoSession", err)
	}
}

func TestParseRejectsTokenSignedWithOtherSecret(t *testing.T) {
	issuer, err := NewManager("secret-one", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	verifier, err := NewManager("secret-two", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := issuer.Issue(Session{UserID: 1, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrNoSession) {
		t.Errorf("foreign token: got %v, want ErrNoSession", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, err := NewManager("test-secret", time.Millisecond)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := m.Issue(Session{UserID: 7, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := m.Parse(token); !errors.Is(err, ErrNoSession) {
		t.Errorf("expired token: got %v, want ErrNoSession", err)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := m.Issue(Session{UserID: 3, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.Parse(tampered); !errors.Is(err, ErrNoSession) {
		t.Errorf("tampered token: got %v, want ErrNoSession", err)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewManager("secret", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
}
