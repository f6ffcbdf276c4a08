package di

import (
	"github.com/RonUpdate/sitecf-sub001/internal/authz"
	"github.com/RonUpdate/sitecf-sub001/internal/handler"
	"github.com/RonUpdate/sitecf-sub001/internal/identity"
	"github.com/RonUpdate/sitecf-sub001/internal/repository"
	"github.com/RonUpdate/sitecf-sub001/internal/service"
	"github.com/RonUpdate/sitecf-sub001/pkg/database"
	"github.com/RonUpdate/sitecf-sub001/pkg/redis"
)

// Container holds all dependencies for the admin gate service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo      repository.UserRepository
	AdminUserRepo repository.AdminUserRepository
	UserRoleRepo  repository.UserRoleRepository
	CategoryRepo  repository.CategoryRepository
	PageRepo      repository.ColoringPageRepository

	// Domain wiring
	IdentityStore identity.Store
	RoleResolver  *authz.Resolver
	AuthService   service.AuthService

	// Handlers
	HealthHandler *handler.HealthHandler
	AuthHandler   *handler.AuthHandler
	AdminHandler  *handler.AdminHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB            *database.PostgresDB
	Redis         *redis.Client
	ServiceName   string
	StoreConfig   *identity.RedisStoreConfig
	ServiceConfig *service.AuthServiceConfig
	HandlerConfig *handler.AuthHandlerConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Repositories
	pool := cfg.DB.Pool()
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.AdminUserRepo = repository.NewPostgresAdminUserRepository(pool)
	c.UserRoleRepo = repository.NewPostgresUserRoleRepository(pool)
	c.CategoryRepo = repository.NewPostgresCategoryRepository(pool)
	c.PageRepo = repository.NewPostgresColoringPageRepository(pool)

	// Identity and authorization
	c.IdentityStore = identity.NewRedisStore(cfg.Redis.Client(), c.UserRepo, cfg.StoreConfig)
	c.RoleResolver = authz.NewResolver(c.AdminUserRepo, c.UserRoleRepo)
	c.AuthService = service.NewAuthService(c.IdentityStore, c.RoleResolver, cfg.ServiceConfig)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis, cfg.ServiceName)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, cfg.HandlerConfig)
	c.AdminHandler = handler.NewAdminHandler(c.CategoryRepo, c.PageRepo)

	return c
}
