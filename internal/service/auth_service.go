package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/RonUpdate/sitecf-sub001/internal/authz"
	"github.com/RonUpdate/sitecf-sub001/internal/domain"
	"github.com/RonUpdate/sitecf-sub001/internal/dto"
	"github.com/RonUpdate/sitecf-sub001/internal/identity"
	"github.com/RonUpdate/sitecf-sub001/internal/policy"
	"github.com/RonUpdate/sitecf-sub001/pkg/logger"
	"github.com/RonUpdate/sitecf-sub001/pkg/telemetry"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrNoPanelAccess      = errors.New("role has no admin panel access")
	ErrNoSession          = errors.New("no session")
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	Policy        *policy.SessionPolicy
	AdminHomePath string
}

/// LoginResult is a successful login: the issued credential, the
// resolved role and the chosen session duration.
type LoginResult struct {
	Credential *identity.Credential
	Role       domain.Role
	Duration   time.Duration
}

// AuthService defines the session-lifecycle and role-resolution operations
type AuthService interface {
	// Login authenticates, applies the remember-me duration policy and
	// rejects identities with no admin-panel capability, revoking the
	// just-issued session so nothing privileged-less lingers.
	Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error)
	// Logout revokes the session behind the token; idempotent
	Logout(ctx context.Context, token string) error
	// Refresh rotates the session with a lifetime chosen by the
	// remember-me policy. Role and permission state are unaffected.
	Refresh(ctx context.Context, token string, rememberMe bool) (*identity.Credential, error)
	// Resolve turns a token into a session, or nil when absent. Store
	// failures and invalid tokens are logged and reported as absent so
	// pages can render a logged-out view.
	Resolve(ctx context.Context, token string) *domain.Session
	// ResolveRole determines the session's role via the ordered
	// resolver. Fails with ErrNoSession when session is nil.
	ResolveRole(ctx context.Context, session *domain.Session) (domain.Role, error)
	// SessionInfo describes the session for UI display, including the
	// extended-session classification
	SessionInfo(ctx context.Context, session *domain.Session, role domain.Role) *dto.SessionResponse
}

// authService implements AuthService
type authService struct {
	store    identity.Store
	resolver *authz.Resolver
	config   *AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(store identity.Store, resolver *authz.Resolver, config *AuthServiceConfig) AuthService {
	if config.Policy == nil {
		config.Policy = policy.NewSessionPolicy(0, 0)
	}
	if config.AdminHomePath == "" {
		config.AdminHomePath = "/admin"
	}
	return &authService{
		store:    store,
		resolver: resolver,
		config:   config,
	}
}

// Login authenticates a user against the identity store
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	span.SetAttributes(
		attribute.String("email", req.Email),
		attribute.Bool("remember_me", req.RememberMe),
	)

	duration := s.config.Policy.ChooseDuration(req.RememberMe)

	cred, err := s.store.IssueToken(ctx, req.Email, req.Password, duration)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			span.SetStatus(codes.Error, "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		if errors.Is(err, identity.ErrUserInactive) {
			span.SetStatus(codes.Error, "user inactive")
			return nil, ErrUserInactive
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	role, err := s.ResolveRole(ctx, cred.Session)
	if err != nil {
		// Cannot happen with a just-issued session, but never proceed
		// on an unresolved role.
		s.revokeQuietly(ctx, cred.Token)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !authz.HasAnyCapability(role) {
		// Valid credentials without panel access: tear the session
		// down before answering so no dangling session persists.
		s.revokeQuietly(ctx, cred.Token)
		span.SetStatus(codes.Error, "no panel access")
		return nil, ErrNoPanelAccess
	}

	span.SetAttributes(
		attribute.String("user_id", cred.Session.UserID),
		attribute.String("role", string(role)),
	)
	span.SetStatus(codes.Ok, "")

	return &LoginResult{
		Credential: cred,
		Role:       role,
		Duration:   duration,
	}, nil
}

// Logout revokes the session behind the token
func (s *authService) Logout(ctx context.Context, token string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.logout")
	defer span.End()

	if token == "" {
		span.SetStatus(codes.Ok, "already logged out")
		return nil
	}

	if err := s.store.RevokeToken(ctx, token); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Refresh rotates the session behind the token
func (s *authService) Refresh(ctx context.Context, token string, rememberMe bool) (*identity.Credential, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.refresh")
	defer span.End()

	duration := s.config.Policy.ChooseDuration(rememberMe)

	cred, err := s.store.RefreshToken(ctx, token, duration)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", cred.Session.UserID))
	span.SetStatus(codes.Ok, "")
	return cred, nil
}

// Resolve turns a token into a session, absent on any failure
func (s *authService) Resolve(ctx context.Context, token string) *domain.Session {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.resolve")
	defer span.End()

	if token == "" {
		// No credential presented; quieter than a failed validation
		logger.Debug("session resolution without credential token")
		return nil
	}

	session, err := s.store.ValidateToken(ctx, token)
	if err != nil {
		// Absent, not an error: pages render logged-out. The
		// distinction only reaches the log.
		if errors.Is(err, identity.ErrInvalidToken) {
			logger.Info("credential token failed validation")
		} else {
			logger.Warn("identity store unavailable during session resolution", zap.Error(err))
		}
		return nil
	}

	return session
}

// ResolveRole determines the role for a resolved session
func (s *authService) ResolveRole(ctx context.Context, session *domain.Session) (domain.Role, error) {
	if session == nil {
		return "", ErrNoSession
	}

	ctx, span := telemetry.StartSpan(ctx, "service.auth.resolve_role")
	defer span.End()

	role := s.resolver.Resolve(ctx, session)
	span.SetAttributes(attribute.String("role", string(role)))
	return role, nil
}

// SessionInfo describes the session for display
func (s *authService) SessionInfo(ctx context.Context, session *domain.Session, role domain.Role) *dto.SessionResponse {
	now := time.Now()
	return &dto.SessionResponse{
		Email:       session.Email,
		Role:        string(role),
		ExpiresAt:   session.ExpiresAt.Format(time.RFC3339),
		ExpiresIn:   int64(session.ExpiresAt.Sub(now).Seconds()),
		LongSession: policy.IsLongSession(session.ExpiresAt, now),
	}
}

// revokeQuietly tears down a session on a deny path. Failure to revoke
// is logged; the deny still stands.
func (s *authService) revokeQuietly(ctx context.Context, token string) {
	if err := s.store.RevokeToken(ctx, token); err != nil {
		logger.Error("failed to revoke session on deny path", zap.Error(err))
	}
}
