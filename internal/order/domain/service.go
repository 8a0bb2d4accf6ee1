package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/cosmocats/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	GetByNumber(ctx context.Context, number string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	ListPage(ctx context.Context, page pagination.Pagination) ([]Response, pagination.PageInfo, error)
	ListByStatus(ctx context.Context, status string) ([]Response, error)
	ListRecent(ctx context.Context, since time.Time) ([]Response, error)
	ListAboveAmount(ctx context.Context, amount decimal.Decimal) ([]Response, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	OrderNumber string              `json:"order_number"`
	TotalAmount *decimal.Decimal    `json:"total_amount"`
	Status      string              `json:"status"`
	OrderDate   *time.Time          `json:"order_date"`
	Items       []CreateItemRequest `json:"items"`
}

type CreateItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Response struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      Status          `json:"status"`
	OrderDate   time.Time       `json:"order_date"`
	Items       []ItemResponse  `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ItemResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

const (
	OrderNumberPrefix    = "ORD-"
	MaxOrderNumberLength = 50
	MaxNumberAttempts    = 5
)

var (
	ErrNotFound           = errors.New("order_not_found")
	ErrDuplicate          = errors.New("duplicate_order_number")
	ErrProductNotFound    = errors.New("product_not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidOrderNumber = errors.New("invalid_order_number")
	ErrInvalidTotalAmount = errors.New("invalid_total_amount")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidProduct     = errors.New("invalid_product_id")
	ErrNumberExhausted    = errors.New("order_number_exhausted")
)
