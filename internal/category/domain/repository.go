package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Category, error)
	FindByType(ctx context.Context, db *gorm.DB, categoryType Type) (*Category, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Category, error)
	SearchByDescription(ctx context.Context, db *gorm.DB, keyword string) ([]Category, error)
	Update(ctx context.Context, db *gorm.DB, category *Category) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	CountProducts(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}
