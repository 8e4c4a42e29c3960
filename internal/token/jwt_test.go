package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	issued, err := m.Issue(42, false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.TokenType != "Bearer" {
		t.Errorf("token type: got %q, want %q", issued.TokenType, "Bearer")
	}
	if issued.ExpiresIn != 3600 {
		t.Errorf("expires_in: got %d, want 3600", issued.ExpiresIn)
	}

	claims, err := m.Parse(issued.AccessToken)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	uid, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if uid != 42 {
		t.Errorf("user id: got %d, want 42", uid)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty jti")
	}
}

func TestIssueRememberExtendsLifetime(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 48*time.Hour)

	issued, err := m.Issue(1, true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.ExpiresIn != int64((48 * time.Hour).Seconds()) {
		t.Errorf("expires_in: got %d, want 48h in seconds", issued.ExpiresIn)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issued, err := NewManager("secret-a", time.Hour, time.Hour).Issue(1, false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = NewManager("secret-b", time.Hour, time.Hour).Parse(issued.AccessToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)

	issued, err := m.Issue(1, false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = m.Parse(issued.AccessToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken for expired token", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)

	if _, err := m.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestJTIsAreUnique(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		issued, err := m.Issue(1, false)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		claims, err := m.Parse(issued.AccessToken)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if seen[claims.ID] {
			t.Fatalf("duplicate jti %q", claims.ID)
		}
		seen[claims.ID] = true
	}
}
