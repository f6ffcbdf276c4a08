package policy

import "time"

const (
	// ShortSessionTTL is the lifetime of a login without remember-me
	ShortSessionTTL = time.Hour
	// LongSessionTTL is the lifetime of a remember-me login
	LongSessionTTL = 30 * 24 * time.Hour
	// LongSessionThreshold classifies a session as extended when its
	// remaining lifetime strictly exceeds this
	LongSessionThreshold = 24 * time.Hour
)

// SessionPolicy chooses token lifetimes at login and refresh time.
// Stateless; both durations are fixed at construction.
type SessionPolicy struct {
	short time.Duration
	long  time.Duration
}

// NewSessionPolicy builds a policy with the given lifetimes. Zero
// values fall back to the canonical 1h/30d pair.
func NewSessionPolicy(short, long time.Duration) *SessionPolicy {
	if short <= 0 {
		short = ShortSessionTTL
	}
	if long <= 0 {
		long = LongSessionTTL
	}
	return &SessionPolicy{short: short, long: long}
}

// ChooseDuration selects the session lifetime for a login. The
// remember-me flag is the only input.
func (p *SessionPolicy) ChooseDuration(rememberMe bool) time.Duration {
	if rememberMe {
		return p.long
	}
	return p.short
}

// IsLongSession reports whether the session counts as extended for UI
// display: its expiry lies strictly more than 24 hours ahead of now.
// Exactly 24 hours is not long. Never used for access control.
func IsLongSession(expiresAt, now time.Time) bool {
	return expiresAt.Sub(now) > LongSessionThreshold
}
