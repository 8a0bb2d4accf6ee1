package domain

import "context"

// Gate decides whether a gated operation may run.
type Gate interface {
	Enforce(ctx context.Context, name string) error
}

type Service interface {
	Gate
	List(ctx context.Context) ([]Feature, error)
	Enable(ctx context.Context, name string) (*Feature, error)
	Disable(ctx context.Context, name string) (*Feature, error)
}
