package identity

import (
	"context"
	"errors"
	"time"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidToken       = errors.New("invalid token")
)

// Credential is an issued token together with the session it proves
type Credential struct {
	Token   string
	Session *domain.Session
}

// Store is the identity-store boundary. Sessions are owned by the
// store; this layer only issues, validates, refreshes and revokes.
type Store interface {
	// IssueToken verifies the credentials and issues a token whose
	// session lives for ttl.
	IssueToken(ctx context.Context, email, password string, ttl time.Duration) (*Credential, error)
	// ValidateToken resolves a token to its session. A revoked or
	// naturally expired session returns (nil, nil); a malformed or
	// tampered token returns ErrInvalidToken.
	ValidateToken(ctx context.Context, token string) (*domain.Session, error)
	// RefreshToken rotates the session behind the token, giving the
	// replacement a lifetime of ttl. Role and permission state are
	// untouched.
	RefreshToken(ctx context.Context, token string, ttl time.Duration) (*Credential, error)
	// RevokeToken destroys the session behind the token. Revoking an
	// already-absent session is a no-op.
	RevokeToken(ctx context.Context, token string) error
}

// UserSource supplies identities for credential verification
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
