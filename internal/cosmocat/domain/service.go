package domain

import "context"

// Service exposes the listings that only exist while their feature toggle is on.
type Service interface {
	ListCosmoCats(ctx context.Context) ([]string, error)
	ListKittyProducts(ctx context.Context) ([]string, error)
}
