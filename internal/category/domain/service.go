package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	GetByType(ctx context.Context, categoryType string) (*Response, error)
	Search(ctx context.Context, keyword string) ([]Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error

	// Resolve maps a type token to the stored category for other rules engines.
	Resolve(ctx context.Context, categoryType string) (*Category, error)
}

type CreateRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type UpdateRequest struct {
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

type Response struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const MaxDescriptionLength = 500

var (
	ErrNotFound           = errors.New("category_not_found")
	ErrDuplicate          = errors.New("duplicate_category")
	ErrInUse              = errors.New("category_in_use")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidType        = errors.New("invalid_type")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidKeyword     = errors.New("invalid_keyword")
)
