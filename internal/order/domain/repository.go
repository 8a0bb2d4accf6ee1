package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	// Create inserts the order and its items; callers pass a transaction.
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	FindByNumber(ctx context.Context, db *gorm.DB, number string) (*Order, error)
	ListByStatus(ctx context.Context, db *gorm.DB, status Status) ([]Order, error)
	ListBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Order, error)
	ListAboveAmount(ctx context.Context, db *gorm.DB, amount decimal.Decimal) ([]Order, error)
	List(ctx context.Context, db *gorm.DB) ([]Order, error)
	// ListPage returns up to limit orders with id below beforeID, newest id first.
	// A zero beforeID starts from the newest order.
	ListPage(ctx context.Context, db *gorm.DB, beforeID int64, limit int) ([]Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status Status, updatedAt time.Time) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)

	// LoadItems fills Items on every given order.
	LoadItems(ctx context.Context, db *gorm.DB, orders []Order) error
}
