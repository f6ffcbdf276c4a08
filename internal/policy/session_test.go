package policy

import (
	"testing"
	"time"
)

func TestChooseDuration(t *testing.T) {
	p := NewSessionPolicy(0, 0)

	if got := p.ChooseDuration(true); got != 2_592_000*time.Second {
		t.Errorf("ChooseDuration(true) = %v, want 30 days", got)
	}
	if got := p.ChooseDuration(false); got != 3_600*time.Second {
		t.Errorf("ChooseDuration(false) = %v, want 1 hour", got)
	}
}

func TestChooseDuration_Configured(t *testing.T) {
	p := NewSessionPolicy(30*time.Minute, 7*24*time.Hour)

	if got := p.ChooseDuration(false); got != 30*time.Minute {
		t.Errorf("ChooseDuration(false) = %v, want 30m", got)
	}
	if got := p.ChooseDuration(true); got != 7*24*time.Hour {
		t.Errorf("ChooseDuration(true) = %v, want 168h", got)
	}
}

func TestIsLongSession(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"thirty days ahead", now.Add(30 * 24 * time.Hour), true},
		{"just over the threshold", now.Add(24*time.Hour + time.Second), true},
		{"exactly 24h is not long", now.Add(24 * time.Hour), false},
		{"one hour ahead", now.Add(time.Hour), false},
		{"already expired", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLongSession(tt.expiresAt, now); got != tt.want {
				t.Errorf("IsLongSession() = %v, want %v", got, tt.want)
			}
		})
	}
}
