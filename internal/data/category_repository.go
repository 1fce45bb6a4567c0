package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"trivia-api/internal/errs"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	DB *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// AllCategories retrieves all categories ordered by id.
func (r *CategoryRepository) AllCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	if err := r.DB.SelectContext(ctx, &categories, "SELECT id, type FROM categories ORDER BY id"); err != nil {
		return nil, fmt.Errorf("%w: failed to get all categories: %w", errs.ErrStorageUnavailable, err)
	}
	return categories, nil
}

// GetByID finds a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	err := r.DB.GetContext(ctx, &category, r.DB.Rebind("SELECT id, type FROM categories WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to get category by id: %w", errs.ErrStorageUnavailable, err)
	}
	return &category, nil
}

// Save creates a new category and returns its ID.
func (r *CategoryRepository) Save(ctx context.Context, category *Category) (int64, error) {
	id, err := insertReturningID(ctx, r.DB, "INSERT INTO categories (type) VALUES (?)", category.Type)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to save category: %w", errs.ErrWriteFailed, err)
	}
	category.ID = id
	return id, nil
}
