package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/pagination"
	"github.com/sangkips/stockboard-api/pkg/utils"
)

// UserService manages staff accounts. Only admins reach it.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Password  string
	Role      enum.Role
}

// CreateUser provisions a staff account with a fixed role
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, apperror.NewFieldError("role", "must be one of admin, keeper, seller")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Phone:     input.Phone,
		Password:  hashedPassword,
		Role:      input.Role,
		Active:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists users, optionally filtered by role
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string, role *enum.Role) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search, role)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// UpdateUserInput represents the admin-side user update
type UpdateUserInput struct {
	ID     uuid.UUID
	Role   *enum.Role
	Active *bool
}

// UpdateUser changes a user's role or active flag. Admins cannot demote or
// disable themselves.
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperror.NewFieldError("role", "must be one of admin, keeper, seller")
		}
		if user.ID == me.UserID && *input.Role != enum.RoleAdmin {
			return nil, apperror.NewBadRequestError("You cannot change your own role")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		if user.ID == me.UserID && !*input.Active {
			return nil, apperror.NewBadRequestError("You cannot disable your own account")
		}
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user other than the caller
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	me, err := caller(ctx)
	if err != nil {
		return err
	}
	if id == me.UserID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
