package domain

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input  string
		want   Role
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{"editor", RoleEditor, true},
		{"user", RoleUser, true},
		{"superuser", RoleUser, false},
		{"Admin", RoleUser, false},
		{"", RoleUser, false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRole(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSession_Valid(t *testing.T) {
	now := time.Now()

	var nilSession *Session
	if nilSession.Valid(now) {
		t.Error("nil session should not be valid")
	}

	expired := &Session{ExpiresAt: now.Add(-time.Minute)}
	if expired.Valid(now) {
		t.Error("expired session should not be valid")
	}

	// Expiry exactly at now counts as expired
	boundary := &Session{ExpiresAt: now}
	if boundary.Valid(now) {
		t.Error("session expiring exactly now should not be valid")
	}

	active := &Session{ExpiresAt: now.Add(time.Minute)}
	if !active.Valid(now) {
		t.Error("future-dated session should be valid")
	}
}
