// Package authctx carries the authenticated user's email in a request
// context. It exists so handler packages can read the email without
// importing internal/auth, which itself depends on internal/users.
package authctx

import "context"

type ctxKey string

const emailKey ctxKey = "user_email"

// WithEmail returns a context carrying the authenticated user's email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// EmailFromContext returns the authenticated user's email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(emailKey)
	if v == nil {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
