package dto

import "testing"

func TestLoginRequest_ValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"admin@example.com", true},
		{"user.name+tag@sub.example.org", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"", false},
		{"spaces in@example.com", false},
	}

	for _, tt := range tests {
		req := &LoginRequest{Email: tt.email}
		valid, _ := req.ValidateEmail()
		if valid != tt.valid {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, valid, tt.valid)
		}
	}
}
