// Package identity carries the authenticated caller through a request as an
// explicit value on the context.
package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
)

type ctxKey struct{}

// Identity is who is making the request
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   enum.Role
}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored on ctx, if any
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// CanSeeAll reports whether the caller may read records created by others.
// Sellers only see their own.
func (i Identity) CanSeeAll() bool {
	return i.Role == enum.RoleAdmin || i.Role == enum.RoleKeeper
}

// HasRole reports whether the caller holds one of roles
func (i Identity) HasRole(roles ...enum.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
