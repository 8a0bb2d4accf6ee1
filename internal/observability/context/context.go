// Package context carries request-scoped correlation values between the HTTP
// layer, services and the logger.
package context

import (
	"context"
	"strings"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	principalKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithPrincipal records the authenticated caller for log correlation.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return ctx
	}
	return context.WithValue(ctx, principalKey, principal)
}

func PrincipalFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(principalKey).(string)
	return value
}
