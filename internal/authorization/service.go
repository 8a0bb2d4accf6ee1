package authorization

import (
	"context"
	"errors"
)

const (
	ObjectCatalog = "catalog"
	ObjectOrder   = "order"
	ObjectFeature = "feature"
)

const (
	ActionRead  = "read"
	ActionWrite = "write"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
)

type Service interface {
	// Authorize succeeds when any of roles grants action on object.
	Authorize(ctx context.Context, roles []string, object string, action string) error
}
