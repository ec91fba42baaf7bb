package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIdentity_RoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id := Identity{UserID: uuid.New(), Email: "a@shop.test", Role: enum.RoleSeller}
	got, ok := FromContext(WithIdentity(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestIdentity_CanSeeAll(t *testing.T) {
	assert.True(t, Identity{Role: enum.RoleAdmin}.CanSeeAll())
	assert.True(t, Identity{Role: enum.RoleKeeper}.CanSeeAll())
	assert.False(t, Identity{Role: enum.RoleSeller}.CanSeeAll())
}

func TestIdentity_HasRole(t *testing.T) {
	id := Identity{Role: enum.RoleKeeper}
	assert.True(t, id.HasRole(enum.RoleAdmin, enum.RoleKeeper))
	assert.False(t, id.HasRole(enum.RoleSeller))
}
