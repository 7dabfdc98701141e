// Package auth defines the caller identity resolved once per request.
package auth

import (
	"context"
	"strings"
)

// Context is the verified identity of the caller. Use cases receive it
// explicitly and never read session state on their own.
type Context struct {
	UserID string
	Email  string
	Name   string
}

// Valid reports whether the context carries a user.
func (c Context) Valid() bool {
	return strings.TrimSpace(c.UserID) != ""
}

// DisplayName falls back to the email local part when the provider sent no name.
func (c Context) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if i := strings.IndexByte(c.Email, '@'); i > 0 {
		return c.Email[:i]
	}
	return c.Email
}

type ctxKey struct{}

// WithContext stores ac in ctx.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext returns the identity stored by WithContext.
func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(ctxKey{}).(Context)
	return ac, ok && ac.Valid()
}
