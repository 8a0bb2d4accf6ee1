package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, error)
	ExistsByNameAndCategory(ctx context.Context, db *gorm.DB, name string, categoryID int64, excludeID int64) (bool, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	CountOrderItems(ctx context.Context, db *gorm.DB, id int64) (int64, error)

	FindLowStock(ctx context.Context, db *gorm.DB, threshold int) ([]Product, error)
	SalesReport(ctx context.Context, db *gorm.DB) ([]SalesReport, error)
	PopularProducts(ctx context.Context, db *gorm.DB, limit int) ([]PopularProduct, error)
}

// ListFilter is the storage-level form of ListRequest.
type ListFilter struct {
	Name       string
	CategoryID *int64
	Status     *Status
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     string
	OrderBy    string
}
