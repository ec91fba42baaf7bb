package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/money"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// DebitService tracks what the shop owes its suppliers
type DebitService struct {
	debitRepo repository.DebitRepository
}

// NewDebitService creates a new debit service
func NewDebitService(debitRepo repository.DebitRepository) *DebitService {
	return &DebitService{debitRepo: debitRepo}
}

// withRemainingAmount fills the derived amount still owed
func withRemainingAmount(d *entity.Debit) *entity.Debit {
	d.RemainingAmount = metrics.Round2(metrics.RemainingAmount(money.FromCents(d.TotalAmount), money.FromCents(d.PaidAmount)))
	return d
}

// CreateDebitInput represents the create debit input
type CreateDebitInput struct {
	SupplierName string
	Description  string
	TotalAmount  float64
	PaidAmount   float64
	DueDate      *time.Time
}

// CreateDebit records an amount owed to a supplier
func (s *DebitService) CreateDebit(ctx context.Context, input *CreateDebitInput) (*entity.Debit, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if input.TotalAmount < 0 {
		return nil, apperror.NewFieldError("total_amount", "must not be negative")
	}
	if input.PaidAmount < 0 {
		return nil, apperror.NewFieldError("paid_amount", "must not be negative")
	}
	if input.PaidAmount > input.TotalAmount {
		return nil, apperror.NewFieldError("paid_amount", "must not exceed total_amount")
	}

	debit := &entity.Debit{
		UserID:       me.UserID,
		SupplierName: input.SupplierName,
		Description:  input.Description,
		TotalAmount:  money.ToCents(input.TotalAmount),
		PaidAmount:   money.ToCents(input.PaidAmount),
		DueDate:      input.DueDate,
		Status:       enum.SettlementOpen,
	}
	if debit.PaidAmount == debit.TotalAmount {
		debit.Status = enum.SettlementSettled
	}

	if err := s.debitRepo.Create(ctx, debit); err != nil {
		return nil, err
	}
	return withRemainingAmount(debit), nil
}

// GetDebit retrieves a debit by ID
func (s *DebitService) GetDebit(ctx context.Context, id uuid.UUID) (*entity.Debit, error) {
	debit, err := s.debitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if debit == nil {
		return nil, apperror.NewNotFoundError("Debit")
	}
	return withRemainingAmount(debit), nil
}

// ListDebits lists debits with filtering
func (s *DebitService) ListDebits(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.Debit], error) {
	debits, total, err := s.debitRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range debits {
		withRemainingAmount(&debits[i])
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(debits, pag), nil
}

// RecordDebitPayment adds a payment to the debit. The debit settles once
// nothing is owed.
func (s *DebitService) RecordDebitPayment(ctx context.Context, id uuid.UUID, amount float64) (*entity.Debit, error) {
	if amount <= 0 {
		return nil, apperror.NewFieldError("amount", "must be greater than zero")
	}

	if _, err := s.GetDebit(ctx, id); err != nil {
		return nil, err
	}

	ok, err := s.debitRepo.AddPayment(ctx, id, money.ToCents(amount))
	if err != nil {
		return nil, err
	}

	debit, err := s.GetDebit(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		if debit.Status == enum.SettlementSettled {
			return nil, apperror.NewBadRequestError("Debit is already settled")
		}
		return nil, apperror.NewFieldError("amount", "exceeds the remaining amount")
	}
	return debit, nil
}

// SettleDebit marks a debit settled whatever is still owed
func (s *DebitService) SettleDebit(ctx context.Context, id uuid.UUID) (*entity.Debit, error) {
	if _, err := s.GetDebit(ctx, id); err != nil {
		return nil, err
	}
	if err := s.debitRepo.Settle(ctx, id); err != nil {
		return nil, err
	}
	return s.GetDebit(ctx, id)
}

// DeleteDebit deletes a debit
func (s *DebitService) DeleteDebit(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDebit(ctx, id); err != nil {
		return err
	}
	return s.debitRepo.Delete(ctx, id)
}
