package token

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager(Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	tok, err := m.Issue("user-1", "artisan")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	p, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.ID != "user-1" || p.Role != "artisan" {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuerMgr, err := NewManager(Config{Secret: "secret-a"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	verifierMgr, err := NewManager(Config{Secret: "secret-b"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	tok, err := issuerMgr.Issue("user-1", "buyer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifierMgr.Verify(tok); err == nil {
		t.Fatalf("token signed with a different secret should not verify")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, err := NewManager(Config{Secret: "test-secret", TTL: time.Millisecond, Leeway: time.Millisecond})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	tok, err := m.Issue("user-1", "buyer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := m.Verify(tok); err == nil {
		t.Fatalf("expired token should not verify")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, err := NewManager(Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	for _, tok := range []string{"", "   ", "not.a.jwt"} {
		if _, err := m.Verify(tok); err == nil {
			t.Fatalf("token %q should not verify", tok)
		}
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatalf("expected constructor error for empty secret")
	}
}
