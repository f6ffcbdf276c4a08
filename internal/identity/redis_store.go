package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
	"github.com/RonUpdate/sitecf-sub001/pkg/logger"
	"github.com/RonUpdate/sitecf-sub001/pkg/telemetry"
)

const sessionKeyPrefix = "admin-gate:session:"

// RedisStoreConfig holds settings for the Redis-backed identity store
type RedisStoreConfig struct {
	TokenSecret string
	Issuer      string
}

// RedisStore implements Store with HS256 credential tokens and session
// records in Redis. Record TTL equals the session lifetime, so natural
// expiry and explicit revocation both present as an absent session.
type RedisStore struct {
	rdb    *redis.Client
	users  UserSource
	secret []byte
	issuer string
}

// NewRedisStore creates a Redis-backed identity store
func NewRedisStore(rdb *redis.Client, users UserSource, cfg *RedisStoreConfig) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		users:  users,
		secret: []byte(cfg.TokenSecret),
		issuer: cfg.Issuer,
	}
}

// IssueToken verifies credentials and creates a session lasting ttl
func (s *RedisStore) IssueToken(ctx context.Context, email, password string, ttl time.Duration) (*Credential, error) {
	ctx, span := telemetry.StartSpan(ctx, "identity.issue_token")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		Remember:  ttl >= 24*time.Hour,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.putSession(ctx, session, ttl); err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := signSessionToken(s.secret, s.issuer, session)
	if err != nil {
		return nil, err
	}

	return &Credential{Token: token, Session: session}, nil
}

// ValidateToken resolves a token to its live session
func (s *RedisStore) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	ctx, span := telemetry.StartSpan(ctx, "identity.validate_token")
	defer span.End()

	claims, err := parseSessionToken(s.secret, s.issuer, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := s.getSession(ctx, claims.SessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if session == nil {
		// Revoked or expired out of the store
		return nil, nil
	}
	if !session.Valid(time.Now()) {
		return nil, nil
	}
	return session, nil
}

// RefreshToken rotates the session behind the token with a new ttl
func (s *RedisStore) RefreshToken(ctx context.Context, token string, ttl time.Duration) (*Credential, error) {
	ctx, span := telemetry.StartSpan(ctx, "identity.refresh_token")
	defer span.End()

	current, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrInvalidToken
	}

	// Rotate: old record goes away before the replacement is written
	if err := s.rdb.Del(ctx, sessionKeyPrefix+current.ID).Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := time.Now()
	next := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    current.UserID,
		Email:     current.Email,
		Remember:  ttl >= 24*time.Hour,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.putSession(ctx, next, ttl); err != nil {
		span.RecordError(err)
		return nil, err
	}

	signed, err := signSessionToken(s.secret, s.issuer, next)
	if err != nil {
		return nil, err
	}

	return &Credential{Token: signed, Session: next}, nil
}

// RevokeToken destroys the session behind the token
func (s *RedisStore) RevokeToken(ctx context.Context, token string) error {
	ctx, span := telemetry.StartSpan(ctx, "identity.revoke_token")
	defer span.End()

	claims, err := peekSessionToken(s.secret, token)
	if err != nil {
		// Nothing to revoke behind a token we cannot attribute
		logger.Debug("revoke skipped for unparseable token")
		return nil
	}

	if err := s.rdb.Del(ctx, sessionKeyPrefix+claims.SessionID).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *RedisStore) putSession(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) getSession(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session := &domain.Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		logger.Warn("dropping undecodable session record", zap.String("session_id", id))
		return nil, nil
	}
	return session, nil
}
