// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, tests
// inject them, and none of it drags net/http into the resolver packages.
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	loginKey       struct{}
	userInfoKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// WithLogin stores the session login in the context.
func WithLogin(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, loginKey{}, login)
}

// Login returns the session login, or "" when the request is anonymous.
func Login(ctx context.Context) string {
	v, _ := ctx.Value(loginKey{}).(string)
	return v
}

// WithUserInfo stores the raw "informacoesusuario" session payload. The legacy
// session populated it with anything from a bare number to a map, so the value
// stays untyped here and is narrowed by the user-code probes.
func WithUserInfo(ctx context.Context, info any) context.Context {
	return context.WithValue(ctx, userInfoKey{}, info)
}

// UserInfo returns the raw session user payload, or nil.
func UserInfo(ctx context.Context) any {
	return ctx.Value(userInfoKey{})
}

// WithRequestID stores the request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request correlation ID, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// WithTime injects a request timestamp so every operation in one request
// agrees on "now".
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the request-scoped time, falling back to the wall clock when no
// middleware set one (background jobs, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}
