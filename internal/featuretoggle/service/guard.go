package service

import (
	"context"

	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
)

// Guard wraps fn so that it only runs while feature is enabled. fn's result
// and error are returned unchanged.
func Guard[T any](gate domain.Gate, feature string, fn func(ctx context.Context) (T, error)) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		if err := gate.Enforce(ctx, feature); err != nil {
			var zero T
			return zero, err
		}
		return fn(ctx)
	}
}
