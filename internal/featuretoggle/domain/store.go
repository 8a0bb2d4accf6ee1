package domain

import "context"

// Store holds the current state of every toggle. Unknown names are reported
// as disabled, never as an error.
type Store interface {
	IsEnabled(ctx context.Context, name string) (bool, error)
	Set(ctx context.Context, name string, enabled bool) error
	List(ctx context.Context) ([]Feature, error)
}
