package identity

import (
	"testing"
	"time"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
)

var testSecret = []byte("test-secret-key")

func testSession(ttl time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        "session-1",
		UserID:    "user-1",
		Email:     "editor@example.com",
		Remember:  ttl >= 24*time.Hour,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestSignAndParseSessionToken(t *testing.T) {
	session := testSession(time.Hour)

	token, err := signSessionToken(testSecret, "admin-gate", session)
	if err != nil {
		t.Fatalf("signSessionToken() error = %v", err)
	}

	claims, err := parseSessionToken(testSecret, "admin-gate", token)
	if err != nil {
		t.Fatalf("parseSessionToken() error = %v", err)
	}

	if claims.SessionID != session.ID {
		t.Errorf("SessionID = %v, want %v", claims.SessionID, session.ID)
	}
	if claims.Subject != session.UserID {
		t.Errorf("Subject = %v, want %v", claims.Subject, session.UserID)
	}
	if claims.Email != session.Email {
		t.Errorf("Email = %v, want %v", claims.Email, session.Email)
	}
	if claims.Remember {
		t.Error("one-hour session should not carry the remember flag")
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, err := signSessionToken(testSecret, "admin-gate", testSession(time.Hour))
	if err != nil {
		t.Fatalf("signSessionToken() error = %v", err)
	}

	if _, err := parseSessionToken([]byte("other-secret"), "admin-gate", token); err != ErrInvalidToken {
		t.Errorf("parseSessionToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestParseSessionToken_WrongIssuer(t *testing.T) {
	token, err := signSessionToken(testSecret, "someone-else", testSession(time.Hour))
	if err != nil {
		t.Fatalf("signSessionToken() error = %v", err)
	}

	if _, err := parseSessionToken(testSecret, "admin-gate", token); err != ErrInvalidToken {
		t.Errorf("parseSessionToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, err := signSessionToken(testSecret, "admin-gate", testSession(-time.Minute))
	if err != nil {
		t.Fatalf("signSessionToken() error = %v", err)
	}

	if _, err := parseSessionToken(testSecret, "admin-gate", token); err != ErrInvalidToken {
		t.Errorf("parseSessionToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestPeekSessionToken_Expired(t *testing.T) {
	session := testSession(-time.Minute)
	token, err := signSessionToken(testSecret, "admin-gate", session)
	if err != nil {
		t.Fatalf("signSessionToken() error = %v", err)
	}

	// Revocation must still find the session behind an expired token
	claims, err := peekSessionToken(testSecret, token)
	if err != nil {
		t.Fatalf("peekSessionToken() error = %v", err)
	}
	if claims.SessionID != session.ID {
		t.Errorf("SessionID = %v, want %v", claims.SessionID, session.ID)
	}
}

func TestPeekSessionToken_Garbage(t *testing.T) {
	if _, err := peekSessionToken(testSecret, "not-a-token"); err != ErrInvalidToken {
		t.Errorf("peekSessionToken() error = %v, want %v", err, ErrInvalidToken)
	}
}
