package repository

import (
	"context"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
)

// UserRepository defines the interface for identity lookups
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AdminUserRepository reads the admin allowlist table
type AdminUserRepository interface {
	// GetByEmail retrieves an allowlist row by exact email match
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

// UserRoleRepository reads the generic role table
type UserRoleRepository interface {
	// GetByUserID retrieves a role row by exact user id match
	GetByUserID(ctx context.Context, userID string) (*domain.UserRole, error)
}

// CategoryRepository defines data access for storefront categories
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// ColoringPageRepository defines data access for coloring pages
type ColoringPageRepository interface {
	Create(ctx context.Context, page *domain.ColoringPage) error
	GetByID(ctx context.Context, id string) (*domain.ColoringPage, error)
	Update(ctx context.Context, page *domain.ColoringPage) error
	Delete(ctx context.Context, id string) error
}
