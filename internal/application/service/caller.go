package service

import (
	"context"

	"github.com/sangkips/stockboard-api/internal/domain/identity"
	"github.com/sangkips/stockboard-api/pkg/apperror"
)

// caller returns the identity the auth middleware placed on ctx
func caller(ctx context.Context) (identity.Identity, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return identity.Identity{}, apperror.ErrUnauthorized
	}
	return id, nil
}
