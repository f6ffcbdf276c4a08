package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/RonUpdate/sitecf-sub001/internal/authz"
	"github.com/RonUpdate/sitecf-sub001/internal/domain"
	"github.com/RonUpdate/sitecf-sub001/internal/dto"
	"github.com/RonUpdate/sitecf-sub001/internal/identity"
	"github.com/RonUpdate/sitecf-sub001/internal/policy"
)

// mockIdentityStore is an in-memory identity.Store. Tokens are the
// session ids themselves; sessions expire naturally by timestamp.
type mockIdentityStore struct {
	users       map[string]string // email -> password
	inactive    map[string]bool
	sessions    map[string]*domain.Session
	issueErr    error
	validateErr error
}

func newMockIdentityStore() *mockIdentityStore {
	return &mockIdentityStore{
		users:    make(map[string]string),
		inactive: make(map[string]bool),
		sessions: make(map[string]*domain.Session),
	}
}

func (m *mockIdentityStore) IssueToken(ctx context.Context, email, password string, ttl time.Duration) (*identity.Credential, error) {
	if m.issueErr != nil {
		return nil, m.issueErr
	}
	stored, ok := m.users[email]
	if !ok || stored != password {
		return nil, identity.ErrInvalidCredentials
	}
	if m.inactive[email] {
		return nil, identity.ErrUserInactive
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    "uid-" + email,
		Email:     email,
		Remember:  ttl >= 24*time.Hour,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	m.sessions[session.ID] = session
	return &identity.Credential{Token: session.ID, Session: session}, nil
}

func (m *mockIdentityStore) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	session, ok := m.sessions[token]
	if !ok || !session.Valid(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (m *mockIdentityStore) RefreshToken(ctx context.Context, token string, ttl time.Duration) (*identity.Credential, error) {
	session, err := m.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, identity.ErrInvalidToken
	}
	delete(m.sessions, session.ID)

	now := time.Now()
	next := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    session.UserID,
		Email:     session.Email,
		Remember:  ttl >= 24*time.Hour,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	m.sessions[next.ID] = next
	return &identity.Credential{Token: next.ID, Session: next}, nil
}

func (m *mockIdentityStore) RevokeToken(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

// mockAdminUserRepository is a mock implementation of AdminUserRepository
type mockAdminUserRepository struct {
	rows map[string]*domain.AdminUser
}

func (r *mockAdminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.rows[email], nil
}

// mockUserRoleRepository is a mock implementation of UserRoleRepository
type mockUserRoleRepository struct {
	rows map[string]*domain.UserRole
}

func (r *mockUserRoleRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserRole, error) {
	return r.rows[userID], nil
}

type fixture struct {
	store  *mockIdentityStore
	admins *mockAdminUserRepository
	roles  *mockUserRoleRepository
	svc    AuthService
}

func newFixture() *fixture {
	store := newMockIdentityStore()
	admins := &mockAdminUserRepository{rows: make(map[string]*domain.AdminUser)}
	roles := &mockUserRoleRepository{rows: make(map[string]*domain.UserRole)}

	svc := NewAuthService(store, authz.NewResolver(admins, roles), &AuthServiceConfig{
		Policy:        policy.NewSessionPolicy(0, 0),
		AdminHomePath: "/admin",
	})

	return &fixture{store: store, admins: admins, roles: roles, svc: svc}
}

func (f *fixture) addUser(email, password string) {
	f.store.users[email] = password
}

func (f *fixture) addAdmin(email string) {
	f.admins.rows[email] = &domain.AdminUser{Email: email}
}

func (f *fixture) addRole(email, role string) {
	f.roles.rows["uid-"+email] = &domain.UserRole{UserID: "uid-" + email, Role: role}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("admin with remember-me gets a 30 day session", func(t *testing.T) {
		f := newFixture()
		f.addUser("boss@example.com", "Password1!")
		f.addAdmin("boss@example.com")

		result, err := f.svc.Login(context.Background(), &dto.LoginRequest{
			Email:      "boss@example.com",
			Password:   "Password1!",
			RememberMe: true,
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if result.Role != domain.RoleAdmin {
			t.Errorf("Role = %v, want admin", result.Role)
		}
		if got := int64(result.Duration.Seconds()); got != 2_592_000 {
			t.Errorf("Duration = %d seconds, want 2592000", got)
		}
		if result.Credential.Token == "" {
			t.Error("Login() issued an empty token")
		}
	})

	t.Run("no remember-me gets a 1 hour session", func(t *testing.T) {
		f := newFixture()
		f.addUser("boss@example.com", "Password1!")
		f.addAdmin("boss@example.com")

		result, err := f.svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "boss@example.com",
			Password: "Password1!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if got := int64(result.Duration.Seconds()); got != 3_600 {
			t.Errorf("Duration = %d seconds, want 3600", got)
		}
	})

	t.Run("editor role may log in", func(t *testing.T) {
		f := newFixture()
		f.addUser("editor@example.com", "Password1!")
		f.addRole("editor@example.com", "editor")

		result, err := f.svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "editor@example.com",
			Password: "Password1!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if result.Role != domain.RoleEditor {
			t.Errorf("Role = %v, want editor", result.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture()
		f.addUser("boss@example.com", "Password1!")
		f.addAdmin("boss@example.com")

		_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "boss@example.com",
			Password: "nope",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})

	t.Run("valid credentials without panel access revokes the session", func(t *testing.T) {
		f := newFixture()
		f.addUser("shopper@example.com", "Password1!")
		// No admin row, no role row: defaults to user

		_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "shopper@example.com",
			Password: "Password1!",
		})
		if !errors.Is(err, ErrNoPanelAccess) {
			t.Fatalf("Login() error = %v, want %v", err, ErrNoPanelAccess)
		}

		// The issued session must not linger
		if len(f.store.sessions) != 0 {
			t.Errorf("%d sessions remain after denied login, want 0", len(f.store.sessions))
		}
	})

	t.Run("admin allowlist beats conflicting role row", func(t *testing.T) {
		f := newFixture()
		f.addUser("boss@example.com", "Password1!")
		f.addAdmin("boss@example.com")
		f.addRole("boss@example.com", "user")

		result, err := f.svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "boss@example.com",
			Password: "Password1!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if result.Role != domain.RoleAdmin {
			t.Errorf("Role = %v, want admin despite role row", result.Role)
		}
	})
}

func TestAuthService_Resolve(t *testing.T) {
	f := newFixture()
	f.addUser("boss@example.com", "Password1!")
	f.addAdmin("boss@example.com")

	result, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "boss@example.com",
		Password: "Password1!",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	token := result.Credential.Token

	t.Run("valid token resolves", func(t *testing.T) {
		session := f.svc.Resolve(context.Background(), token)
		if session == nil {
			t.Fatal("Resolve() = nil, want session")
		}
		if session.Email != "boss@example.com" {
			t.Errorf("Email = %v, want boss@example.com", session.Email)
		}
	})

	t.Run("empty token is absent", func(t *testing.T) {
		if session := f.svc.Resolve(context.Background(), ""); session != nil {
			t.Errorf("Resolve(\"\") = %v, want nil", session)
		}
	})

	t.Run("store failure is absent, not an error", func(t *testing.T) {
		f.store.validateErr = errors.New("connection refused")
		defer func() { f.store.validateErr = nil }()

		if session := f.svc.Resolve(context.Background(), token); session != nil {
			t.Errorf("Resolve() = %v during outage, want nil (fail closed)", session)
		}
	})

	t.Run("revoked token is absent", func(t *testing.T) {
		if err := f.svc.Logout(context.Background(), token); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
		if session := f.svc.Resolve(context.Background(), token); session != nil {
			t.Errorf("Resolve() after logout = %v, want nil", session)
		}
	})
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	f := newFixture()

	if err := f.svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Errorf("Logout() of unknown token error = %v, want nil", err)
	}
	if err := f.svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("Logout() without token error = %v, want nil", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	f := newFixture()
	f.addUser("boss@example.com", "Password1!")
	f.addAdmin("boss@example.com")

	result, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "boss@example.com",
		Password: "Password1!",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	oldToken := result.Credential.Token

	cred, err := f.svc.Refresh(context.Background(), oldToken, true)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if cred.Token == oldToken {
		t.Error("Refresh() did not rotate the token")
	}
	if !cred.Session.Remember {
		t.Error("refreshed session should carry the remember flag")
	}
	if f.svc.Resolve(context.Background(), oldToken) != nil {
		t.Error("old token should be absent after refresh")
	}
	if f.svc.Resolve(context.Background(), cred.Token) == nil {
		t.Error("new token should resolve after refresh")
	}

	// Role state is untouched by refresh
	role, err := f.svc.ResolveRole(context.Background(), cred.Session)
	if err != nil {
		t.Fatalf("ResolveRole() error = %v", err)
	}
	if role != domain.RoleAdmin {
		t.Errorf("role after refresh = %v, want admin", role)
	}
}

func TestAuthService_ResolveRole_NoSession(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.ResolveRole(context.Background(), nil); !errors.Is(err, ErrNoSession) {
		t.Errorf("ResolveRole(nil) error = %v, want %v", err, ErrNoSession)
	}
}

func TestAuthService_SessionInfo(t *testing.T) {
	f := newFixture()
	now := time.Now()

	longSession := &domain.Session{
		Email:     "boss@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	info := f.svc.SessionInfo(context.Background(), longSession, domain.RoleAdmin)
	if !info.LongSession {
		t.Error("30 day session should classify as long")
	}
	if info.Role != "admin" {
		t.Errorf("Role = %v, want admin", info.Role)
	}

	shortSession := &domain.Session{
		Email:     "boss@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	info = f.svc.SessionInfo(context.Background(), shortSession, domain.RoleAdmin)
	if info.LongSession {
		t.Error("1 hour session should not classify as long")
	}
	if info.ExpiresIn <= 0 || info.ExpiresIn > 3600 {
		t.Errorf("ExpiresIn = %d, want within (0, 3600]", info.ExpiresIn)
	}
}
