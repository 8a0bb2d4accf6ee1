package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/cosmocats/internal/category/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const selectColumns = `SELECT id, type, description, created_at, updated_at FROM categories`

func (r *repo) Create(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO categories (id, type, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		category.ID,
		category.Type,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error) {
	return r.findOne(ctx, db, selectColumns+` WHERE id = ?`, id)
}

func (r *repo) FindByType(ctx context.Context, db *gorm.DB, categoryType domain.Type) (*domain.Category, error) {
	return r.findOne(ctx, db, selectColumns+` WHERE type = ?`, categoryType)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&c).Error; err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).Raw(selectColumns + ` ORDER BY type ASC`).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SearchByDescription(ctx context.Context, db *gorm.DB, keyword string) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).Raw(
		selectColumns+` WHERE LOWER(description) LIKE ? ORDER BY type ASC`,
		"%"+strings.ToLower(keyword)+"%",
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	if category == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE categories SET type = ?, description = ?, updated_at = ? WHERE id = ?`,
		category.Type,
		category.Description,
		category.UpdatedAt,
		category.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM categories WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repo) CountProducts(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM products WHERE category_id = ?`, id).Scan(&count).Error
	return count, err
}
