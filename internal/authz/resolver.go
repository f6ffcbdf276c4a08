package authz

import (
	"context"

	"go.uber.org/zap"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
	"github.com/RonUpdate/sitecf-sub001/internal/repository"
	"github.com/RonUpdate/sitecf-sub001/pkg/logger"
)

// RoleSource yields a role for an authenticated session. Sources are
// consulted in order; the first positive answer wins.
type RoleSource interface {
	// Name identifies the source in logs
	Name() string
	// Resolve returns (role, true) when this source has an answer for
	// the session. Lookup failures return an error and the walk
	// continues with the next source, so an upstream outage can only
	// lower privileges, never raise them.
	Resolve(ctx context.Context, session *domain.Session) (domain.Role, bool, error)
}

// Resolver walks an ordered list of role sources. The default layout
// is [admin allowlist, user_roles table, default user]: an explicit
// allowlist entry always beats a possibly stale generic role row.
type Resolver struct {
	sources []RoleSource
}

// NewResolver builds the standard three-source resolver
func NewResolver(admins repository.AdminUserRepository, roles repository.UserRoleRepository) *Resolver {
	return &Resolver{
		sources: []RoleSource{
			&adminTableSource{admins: admins},
			&roleTableSource{roles: roles},
			defaultSource{},
		},
	}
}

// NewResolverWithSources builds a resolver over an explicit source
// ordering. Used by tests to exercise precedence.
func NewResolverWithSources(sources ...RoleSource) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve determines the session's role. It never fails open: any
// source error is logged and skipped, and the terminal default source
// answers with the least-privileged role.
func (r *Resolver) Resolve(ctx context.Context, session *domain.Session) domain.Role {
	for _, source := range r.sources {
		role, ok, err := source.Resolve(ctx, session)
		if err != nil {
			logger.Warn("role source failed, continuing with lower privileges",
				zap.String("source", source.Name()),
				zap.String("user_id", session.UserID),
				zap.Error(err),
			)
			continue
		}
		if ok {
			return role
		}
	}
	return domain.RoleUser
}

// adminTableSource answers admin when the session email has an
// allowlist row. Consulted first so it short-circuits the role table.
type adminTableSource struct {
	admins repository.AdminUserRepository
}

func (s *adminTableSource) Name() string { return "admin_users" }

func (s *adminTableSource) Resolve(ctx context.Context, session *domain.Session) (domain.Role, bool, error) {
	row, err := s.admins.GetByEmail(ctx, session.Email)
	if err != nil {
		return "", false, err
	}
	if row == nil {
		return "", false, nil
	}
	return domain.RoleAdmin, true, nil
}

// roleTableSource answers with the user_roles row, parse-validated.
// The stored value is free-form text, so an unrecognized role string
// degrades to user and the anomaly is logged rather than propagated.
type roleTableSource struct {
	roles repository.UserRoleRepository
}

func (s *roleTableSource) Name() string { return "user_roles" }

func (s *roleTableSource) Resolve(ctx context.Context, session *domain.Session) (domain.Role, bool, error) {
	row, err := s.roles.GetByUserID(ctx, session.UserID)
	if err != nil {
		return "", false, err
	}
	if row == nil {
		return "", false, nil
	}

	role, valid := domain.ParseRole(row.Role)
	if !valid {
		logger.Warn("unrecognized role string in user_roles, treating as user",
			zap.String("user_id", row.UserID),
			zap.String("stored_role", row.Role),
		)
	}
	return role, true, nil
}

// defaultSource terminates the walk with the least-privileged role
type defaultSource struct{}

func (defaultSource) Name() string { return "default" }

func (defaultSource) Resolve(ctx context.Context, session *domain.Session) (domain.Role, bool, error) {
	return domain.RoleUser, true, nil
}
