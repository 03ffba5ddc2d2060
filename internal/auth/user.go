package auth

import (
	"context"
	"strings"
)

// User is the authenticated customer as reported by the identity provider.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

const defaultCustomerName = "고객"

// CustomerName is the name shown to the payment gateway: the display name,
// else the local part of the email, else a generic label.
func (u *User) CustomerName() string {
	if u == nil {
		return defaultCustomerName
	}
	if n := strings.TrimSpace(u.DisplayName); n != "" {
		return n
	}
	if local, _, _ := strings.Cut(u.Email, "@"); local != "" {
		return local
	}
	return defaultCustomerName
}

type ctxKey struct{}

// WithUser returns a context carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the user stored by WithUser, or nil.
func FromContext(ctx context.Context) *User {
	u, _ := ctx.Value(ctxKey{}).(*User)
	return u
}
