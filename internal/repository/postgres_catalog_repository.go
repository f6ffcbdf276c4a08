package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
)

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

// Create creates a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.CreatedAt,
		category.UpdatedAt,
	)
	return err
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	category := &domain.Category{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

// Update updates a category
func (r *PostgresCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, updated_at = $4
		WHERE id = $1
	`
	category.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.UpdatedAt,
	)
	return err
}

// Delete deletes a category
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// PostgresColoringPageRepository implements ColoringPageRepository using PostgreSQL
type PostgresColoringPageRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresColoringPageRepository creates a new PostgresColoringPageRepository
func NewPostgresColoringPageRepository(pool *pgxpool.Pool) *PostgresColoringPageRepository {
	return &PostgresColoringPageRepository{pool: pool}
}

// Create creates a new coloring page
func (r *PostgresColoringPageRepository) Create(ctx context.Context, page *domain.ColoringPage) error {
	query := `
		INSERT INTO coloring_pages (id, title, slug, category_id, image_url, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		page.ID,
		page.Title,
		page.Slug,
		page.CategoryID,
		page.ImageURL,
		page.Published,
		page.CreatedAt,
		page.UpdatedAt,
	)
	return err
}

// GetByID retrieves a coloring page by ID
func (r *PostgresColoringPageRepository) GetByID(ctx context.Context, id string) (*domain.ColoringPage, error) {
	query := `
		SELECT id, title, slug, category_id, image_url, published, created_at, updated_at
		FROM coloring_pages
		WHERE id = $1
	`
	page := &domain.ColoringPage{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&page.ID,
		&page.Title,
		&page.Slug,
		&page.CategoryID,
		&page.ImageURL,
		&page.Published,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return page, nil
}

// Update updates a coloring page
func (r *PostgresColoringPageRepository) Update(ctx context.Context, page *domain.ColoringPage) error {
	query := `
		UPDATE coloring_pages
		SET title = $2, slug = $3, category_id = $4, image_url = $5, published = $6, updated_at = $7
		WHERE id = $1
	`
	page.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		page.ID,
		page.Title,
		page.Slug,
		page.CategoryID,
		page.ImageURL,
		page.Published,
		page.UpdatedAt,
	)
	return err
}

// Delete deletes a coloring page
func (r *PostgresColoringPageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM coloring_pages WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
