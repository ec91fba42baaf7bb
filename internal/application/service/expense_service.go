package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/money"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// ExpenseService handles shop running costs
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Title    string
	Amount   float64
	Category string
	Date     time.Time
	Notes    *string
}

// CreateExpense records an expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, apperror.NewFieldError("amount", "must not be negative")
	}

	expense := &entity.Expense{
		UserID:   me.UserID,
		Title:    input.Title,
		Amount:   money.ToCents(input.Amount),
		Category: strings.TrimSpace(input.Category),
		Date:     input.Date,
		Notes:    input.Notes,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// UpdateExpenseInput represents the update expense input
type UpdateExpenseInput struct {
	ID       uuid.UUID
	Title    *string
	Amount   *float64
	Category *string
	Date     *time.Time
	Notes    *string
}

// UpdateExpense updates an expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, input *UpdateExpenseInput) (*entity.Expense, error) {
	expense, err := s.GetExpense(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		expense.Title = *input.Title
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, apperror.NewFieldError("amount", "must not be negative")
		}
		expense.Amount = money.ToCents(*input.Amount)
	}
	if input.Category != nil {
		expense.Category = strings.TrimSpace(*input.Category)
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Notes != nil {
		expense.Notes = input.Notes
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetExpense(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}
