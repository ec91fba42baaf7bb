package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/identity"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.CreateUser(asAdmin(), &CreateUserInput{
		FirstName: "Kojo", Email: "Kojo@Shop.test", Password: "password1", Role: enum.RoleSeller,
	})
	require.NoError(t, err)
	assert.Equal(t, "kojo@shop.test", user.Email)
	assert.True(t, user.Active)
	assert.True(t, utils.CheckPassword(user.Password, "password1"))

	_, err = svc.CreateUser(asAdmin(), &CreateUserInput{Email: "kojo@shop.test", Password: "x", Role: enum.RoleSeller})
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	_, err = svc.CreateUser(asAdmin(), &CreateUserInput{Email: "new@shop.test", Password: "x", Role: "owner"})
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestUserService_AdminCannotLockThemselvesOut(t *testing.T) {
	admin := entity.User{ID: uuid.New(), Email: "boss@shop.test", Role: enum.RoleAdmin, Active: true}
	svc := NewUserService(newFakeUserRepo(admin))
	ctx := identity.WithIdentity(context.Background(), identity.Identity{UserID: admin.ID, Role: enum.RoleAdmin})

	seller := enum.RoleSeller
	_, err := svc.UpdateUser(ctx, &UpdateUserInput{ID: admin.ID, Role: &seller})
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	inactive := false
	_, err = svc.UpdateUser(ctx, &UpdateUserInput{ID: admin.ID, Active: &inactive})
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	err = svc.DeleteUser(ctx, admin.ID)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestUserService_UpdateUser_ChangesRole(t *testing.T) {
	clerk := entity.User{ID: uuid.New(), Email: "clerk@shop.test", Role: enum.RoleSeller, Active: true}
	svc := NewUserService(newFakeUserRepo(clerk))

	keeper := enum.RoleKeeper
	updated, err := svc.UpdateUser(asAdmin(), &UpdateUserInput{ID: clerk.ID, Role: &keeper})
	require.NoError(t, err)
	assert.Equal(t, enum.RoleKeeper, updated.Role)
}
