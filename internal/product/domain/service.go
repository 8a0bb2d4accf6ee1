package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Delete(ctx context.Context, id string) error

	LowStock(ctx context.Context, threshold int) ([]Response, error)
	SalesReport(ctx context.Context) ([]SalesReport, error)
	Popular(ctx context.Context, limit int) ([]PopularProduct, error)
}

type CreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
}

// UpdateRequest applies only the non-nil fields.
type UpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Category    *string          `json:"category"`
	Status      *string          `json:"status"`
}

type ListRequest struct {
	Name     string
	Category string
	Status   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
	OrderBy  string
}

type Response struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Quantity    int                 `json:"quantity"`
	Category    categorydomain.Type `json:"category"`
	Status      Status              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

const DefaultLowStockThreshold = 10

var (
	ErrNotFound           = errors.New("product_not_found")
	ErrDuplicate          = errors.New("duplicate_product")
	ErrInUse              = errors.New("product_in_use")
	ErrCategoryNotFound   = errors.New("category_not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidThreshold   = errors.New("invalid_threshold")
	ErrInvalidLimit       = errors.New("invalid_limit")
)
